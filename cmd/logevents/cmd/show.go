package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/logevents/panel"
)

func newShowCmd() *cobra.Command {
	var (
		name          string
		regex         bool
		caseSensitive bool
		enabled       string
		level         string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabledFilter, err := panel.ParseEnabledFilter(enabled)
			if err != nil {
				return err
			}
			levelFilter, err := panel.ParseLevelFilter(level)
			if err != nil {
				return err
			}
			match := panel.Filter{
				Name:          name,
				Regex:         regex,
				CaseSensitive: caseSensitive,
				Enabled:       enabledFilter,
				Level:         levelFilter,
			}.Matcher()

			storage, err := fileStorage(cmd)
			if err != nil {
				return err
			}
			snap, err := load(cmd.Context(), storage, false)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(snap.EventsSettings))
			for id := range snap.EventsSettings {
				ids = append(ids, id)
			}
			slices.Sort(ids)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Type", "Enabled", "Pretty", "Level"})
			shown := 0
			for _, id := range ids {
				s := snap.EventsSettings[id]
				if !match(id, s) {
					continue
				}
				t.AppendRow(table.Row{id, strconv.FormatBool(s.Enabled), strconv.FormatBool(s.Pretty), s.Level.String()})
				shown++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Settings:       %s\n", storage.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Plugin enabled: %t\n", snap.PluginEnabled)
			t.Render()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d shown\n", shown, len(ids))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "only types whose id contains this text")
	cmd.Flags().BoolVar(&regex, "regex", false, "treat --name as a regular expression")
	cmd.Flags().BoolVar(&caseSensitive, "case", false, "match --name with case")
	cmd.Flags().StringVar(&enabled, "enabled", "all", "all, enabled or disabled")
	cmd.Flags().StringVar(&level, "level", "all", "all or a level name")
	return cmd
}
