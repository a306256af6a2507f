package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/reach/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a reach configuration file",
		Long: `Generate a documented reach configuration file with sensible defaults.

By default, creates reach.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create reach.yaml in current directory
  reach init

  # Custom output path
  reach init --config custom.yaml

  # Overwrite existing file
  reach init --force

  # Generate smaller config with essential options only
  reach init --minimal

  # Interactive setup wizard
  reach init --interactive
  reach init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "reach.yaml",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	var projectType config.ProjectType = config.ProjectTypeGeneric

	if interactive {
		var err error
		var interactiveConfigPath string
		projectType, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(projectType)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'reach affected --tests <glob> --changed <file...>' to select affected tests.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.ProjectType, string, error) {
	fmt.Println()
	fmt.Println("reach Configuration Setup")
	fmt.Println("=========================")
	fmt.Println()

	projectTypes := []struct {
		Label string
		Value config.ProjectType
	}{
		{"Generic JavaScript/TypeScript", config.ProjectTypeGeneric},
		{"React/Next.js", config.ProjectTypeReact},
		{"Vue/Nuxt", config.ProjectTypeVue},
		{"Node.js Backend", config.ProjectTypeNode},
	}

	projectTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	projectPrompt := promptui.Select{
		Label:     "What type of project is this?",
		Items:     projectTypes,
		Templates: projectTemplates,
	}

	projectIdx, _, err := projectPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("project selection cancelled: %w", err)
	}
	selectedProject := projectTypes[projectIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedProject, outputPath, nil
}
