package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crossforge/crossforge/internal/config"
	"github.com/crossforge/crossforge/internal/generator"
	"github.com/crossforge/crossforge/internal/ident"
	"github.com/crossforge/crossforge/internal/ui"
)

// toolkitEnv names the environment variable giving the toolkit location
// when neither the flag nor the descriptor does.
const toolkitEnv = "CROSSFORGE_PATH"

var generateCmd = &cobra.Command{
	Use:   "generate [project-dir]",
	Short: "Generate the native IDE projects for a game",
	Long: `Generate the native IDE projects named by the descriptor.

The project directory defaults to the current directory and must hold a
crossforge.yml descriptor (or pass one with --config). Each requested
target is written under the build directory: build/apple, build/windows,
build/android, and build/cmake. Existing target output is replaced.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateGenerateFlags,
	RunE:    runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("build", "b", "", "build output directory (default: descriptor setting or <project>/build)")
	generateCmd.Flags().StringP("config", "c", "", "descriptor path (default: <project>/crossforge.yml)")
	generateCmd.Flags().StringP("target", "t", "", "generate one target: android, apple, macos, ios, windows, or cmake")
	generateCmd.Flags().String("toolkit", "", "toolkit directory (default: descriptor setting or $"+toolkitEnv+")")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// validateGenerateFlags rejects unknown platforms before any work happens.
func validateGenerateFlags(cmd *cobra.Command, _ []string) error {
	target := getStringFlag(cmd, "target")
	if target == "" {
		return nil
	}
	if _, ok := config.Platforms[strings.ToLower(target)]; !ok {
		return fmt.Errorf("invalid --target value %q: must be one of: android, apple, macos, ios, windows, cmake", target)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	project, err := config.Load(dir, getStringFlag(cmd, "config"))
	if err != nil {
		return err
	}

	ids := ident.NewService()
	if err := project.ApplySuffix(ids); err != nil {
		return err
	}

	toolkit := getStringFlag(cmd, "toolkit")
	if toolkit == "" && project.Toolkit == "" {
		toolkit = os.Getenv(toolkitEnv)
	}
	opts := config.Options{
		Build:   getStringFlag(cmd, "build"),
		Target:  getStringFlag(cmd, "target"),
		Toolkit: toolkit,
	}
	if err := project.Normalize(opts); err != nil {
		return err
	}
	if err := project.Validate(); err != nil {
		return err
	}
	if project.Toolkit == "" {
		return fmt.Errorf("no toolkit directory: set toolkit in the descriptor, pass --toolkit, or export $%s", toolkitEnv)
	}

	theme := ui.NewTheme(noColor)
	report := ui.NewReporter(theme, ui.NewHeadlessManager())
	return generator.New(project, ids, report).Run()
}
