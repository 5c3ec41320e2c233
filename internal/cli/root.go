// Package cli wires the crossforge commands. Every command builds its own
// collaborators; there is no shared mutable state beyond the root flag set.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossforge/crossforge/pkg/version"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "crossforge",
	Short: "crossforge: native IDE projects from one descriptor",
	Long: `crossforge generates native IDE build projects for forgekit games.

One YAML descriptor (crossforge.yml) names the game, its sources, assets,
and target platforms; crossforge emits ready-to-open Xcode, Visual Studio,
Android Studio, and CMake projects from the toolkit templates.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("crossforge %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}
