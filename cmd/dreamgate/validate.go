package main

import (
	"fmt"

	"dreamgate/internal/level"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <level.json>",
	Short: "Check a level file's structure and objective graph without opening a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := level.LoadDescriptor(args[0])
		if err != nil {
			return err
		}

		mode := "linear"
		for _, o := range desc.Objectives {
			if len(o.DependsOn) > 0 {
				mode = "graph"
				break
			}
		}

		fmt.Printf("%s: ok\n", args[0])
		fmt.Printf("  decorations: %d\n", len(desc.Decorations))
		fmt.Printf("  props:       %d\n", len(desc.Props))
		fmt.Printf("  portals:     %d\n", len(desc.Portals))
		fmt.Printf("  objectives:  %d (%s mode)\n", len(desc.Objectives), mode)
		return nil
	},
}
