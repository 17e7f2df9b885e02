package cmd

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/logevents/settings"
)

func newSetCmd() *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:     "set [type]",
		Short:   "Change the saved settings of a logged type",
		Example: "logevents set Foo --enabled=false --level=debug",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			flags := cmd.Flags()
			if !flags.Changed("enabled") && !flags.Changed("pretty") && !flags.Changed("level") {
				return eris.New("nothing to change: pass --enabled, --pretty or --level")
			}

			storage, err := fileStorage(cmd)
			if err != nil {
				return err
			}
			snap, err := load(cmd.Context(), storage, create)
			if err != nil {
				return err
			}

			s, ok := snap.EventsSettings[id]
			if !ok {
				if !create {
					return eris.Errorf("%s is not in %s, pass --create to add it", id, storage.Path())
				}
				s = settings.Default()
			}

			if flags.Changed("enabled") {
				if s.Enabled, err = flags.GetBool("enabled"); err != nil {
					return err
				}
			}
			if flags.Changed("pretty") {
				if s.Pretty, err = flags.GetBool("pretty"); err != nil {
					return err
				}
			}
			if flags.Changed("level") {
				raw, err := flags.GetString("level")
				if err != nil {
					return err
				}
				if s.Level, err = settings.ParseLevel(raw); err != nil {
					return err
				}
			}

			snap.EventsSettings[id] = s
			if err := storage.Store(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: enabled=%t pretty=%t level=%s\n", id, s.Enabled, s.Pretty, s.Level)
			return nil
		},
	}

	cmd.Flags().Bool("enabled", true, "log the type")
	cmd.Flags().Bool("pretty", true, "pretty print values")
	cmd.Flags().String("level", "", "level lines are written at")
	cmd.Flags().BoolVar(&create, "create", false, "add the type if it is not saved yet")
	return cmd
}

func newGlobalCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "global [on|off]",
		Short:     "Turn all logging on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch args[0] {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				parsed, err := strconv.ParseBool(args[0])
				if err != nil {
					return eris.Errorf("expected on or off, got %q", args[0])
				}
				enabled = parsed
			}

			storage, err := fileStorage(cmd)
			if err != nil {
				return err
			}
			snap, err := load(cmd.Context(), storage, true)
			if err != nil {
				return err
			}
			snap.PluginEnabled = enabled
			if err := storage.Store(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plugin enabled: %t\n", enabled)
			return nil
		},
	}
}
