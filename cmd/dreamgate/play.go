package main

import (
	"dreamgate/internal/config"
	"dreamgate/internal/game"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <level.json>",
	Short: "Load a level and play it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		return game.New(cfg).Run(args[0])
	},
}
