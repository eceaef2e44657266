package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/they4kman/sweepcore/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the difficulty presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := config.LoadPresets(presetsFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, key := range presets.Keys() {
			preset := presets[key]
			fmt.Fprintf(out, "%-14s %-14s %3dx%-3d %3d mines\n",
				key, preset.Name, preset.Grid.Width, preset.Grid.Height, preset.Grid.MineCount())
		}
		return nil
	},
}
