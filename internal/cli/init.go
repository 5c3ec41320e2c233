package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crossforge/crossforge/internal/config"
	"github.com/crossforge/crossforge/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Create a starter descriptor",
	Long: `Create a crossforge.yml descriptor in the project directory.

With a terminal attached an interactive wizard collects the project name,
application id, orientation, and build targets; flags seed the form fields.
Without a terminal the flag values are used directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("name", "", "display name of the game")
	initCmd.Flags().String("appid", "", "application id in reverse-DNS form (e.g. edu.example.mygame)")
	initCmd.Flags().String("orientation", "", "screen orientation (default: landscape)")
	initCmd.Flags().StringSlice("targets", nil, "build targets (android, apple, macos, ios, windows, cmake)")
	initCmd.Flags().Bool("force", false, "overwrite an existing descriptor")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.DefaultConfigName)

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	targets, _ := cmd.Flags().GetStringSlice("targets")
	defaults := ui.ProjectAnswers{
		Name:        getStringFlag(cmd, "name"),
		AppID:       getStringFlag(cmd, "appid"),
		Orientation: getStringFlag(cmd, "orientation"),
		Targets:     targets,
	}

	theme := ui.NewTheme(noColor)
	wizard := ui.NewWizard(theme, ui.NewHeadlessManager())
	answers, err := wizard.Run(defaults)
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return errors.New("init cancelled")
		}
		return err
	}

	// Headless runs skip the form validation, so enforce the contract here.
	if answers.AppID == "" || !strings.Contains(answers.AppID, ".") {
		return errors.New("application id must contain at least one period (pass --appid)")
	}
	if _, ok := config.Orientations[answers.Orientation]; !ok {
		return fmt.Errorf("invalid orientation %q", answers.Orientation)
	}
	for _, target := range answers.Targets {
		if _, ok := config.Platforms[target]; !ok {
			return fmt.Errorf("invalid target %q", target)
		}
	}

	if err := os.MkdirAll(dir, 0o777); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(renderDescriptor(answers)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// renderDescriptor lays out a starter descriptor by hand. A marshaled map
// would scramble the field order; the starter file is meant to be read and
// edited, so the layout matters.
func renderDescriptor(a *ui.ProjectAnswers) string {
	var b strings.Builder
	name := a.Name
	if name == "" {
		name = "My Game"
	}

	fmt.Fprintf(&b, "name:        %q\n", name)
	fmt.Fprintf(&b, "version:     \"1.0\"\n")
	fmt.Fprintf(&b, "appid:       %s\n", a.AppID)
	fmt.Fprintf(&b, "orientation: %s\n", a.Orientation)

	b.WriteString("targets:\n")
	if len(a.Targets) == 0 {
		b.WriteString("  - apple\n")
	}
	for _, target := range a.Targets {
		fmt.Fprintf(&b, "  - %s\n", target)
	}

	b.WriteString("assets:  assets\n")
	b.WriteString("sources:\n  - source/*\n")
	b.WriteString("build:   build\n")
	return b.String()
}
