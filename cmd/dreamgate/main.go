// dreamgate is the runtime that turns generated level descriptors into a
// playable first-person scene.
//
// Usage:
//
//	dreamgate play <level.json>       - Load a level and play it
//	dreamgate validate <level.json>   - Check a level file without a window
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dreamgate",
	Short: "Runtime for generated immersive levels",
	Long: `dreamgate loads declarative level descriptors and runs them as a live,
playable scene: walk, jump, grab props, and work through the level's
objectives with mouse and keyboard.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a tuning config (YAML)")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
}
