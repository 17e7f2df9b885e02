// Package cmd implements the logevents command, which inspects and edits saved log settings
// while the application is not running.
package cmd

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/logevents"
	"pkg.world.dev/world-engine/logevents/snapshot"
)

const flagFile = "file"

// NewRootCmd returns the logevents command with all its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logevents",
		Short: "Inspect and edit saved log settings",
		Long: `logevents reads and writes the settings file an application saves when it exits.
Edits are picked up the next time the application starts.`,
		SilenceUsage: true,
	}

	defaultPath := os.Getenv("LOGEVENTS_SETTINGS_PATH")
	if defaultPath == "" {
		defaultPath = logevents.DefaultSettingsPath
	}
	rootCmd.PersistentFlags().StringP(flagFile, "f", defaultPath, "settings file")

	rootCmd.AddCommand(
		newShowCmd(),
		newSetCmd(),
		newGlobalCmd(),
		newSchemaCmd(),
		newDiffCmd(),
	)
	return rootCmd
}

func fileStorage(cmd *cobra.Command) (*snapshot.FileStorage, error) {
	path, err := cmd.Flags().GetString(flagFile)
	if err != nil {
		return nil, err
	}
	return snapshot.NewFileStorage(path)
}

// load reads the settings file. A missing file yields an empty snapshot when allowMissing is set.
func load(ctx context.Context, storage snapshot.Storage, allowMissing bool) (*snapshot.Snapshot, error) {
	snap, err := storage.Load(ctx)
	if err != nil {
		if allowMissing && eris.Is(err, snapshot.ErrSnapshotNotFound) {
			return snapshot.New(), nil
		}
		return nil, err
	}
	return snap, nil
}
