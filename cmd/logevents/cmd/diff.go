package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/logevents/snapshot"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := snapshot.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return err
		},
	}
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [other-file]",
		Short: "Show what changes between the settings file and another one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := fileStorage(cmd)
			if err != nil {
				return err
			}
			before, err := load(cmd.Context(), storage, true)
			if err != nil {
				return err
			}

			other, err := snapshot.NewFileStorage(args[0])
			if err != nil {
				return err
			}
			after, err := load(cmd.Context(), other, true)
			if err != nil {
				return err
			}

			patch, err := snapshot.Diff(before, after)
			if err != nil {
				return err
			}
			if len(patch) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no differences")
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Op", "Path", "Value"})
			for _, op := range patch {
				value := ""
				if op.Value != nil {
					bz, err := json.Marshal(op.Value)
					if err != nil {
						return err
					}
					value = string(bz)
				}
				t.AppendRow(table.Row{op.Type, fmt.Sprint(op.Path), value})
			}
			t.Render()
			return nil
		},
	}
}
