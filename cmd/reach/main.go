package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/reach/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reach",
		Short: "reach - affected-test selection for JavaScript/TypeScript",
		Long: `reach determines, given a set of candidate test files and a set of changed
source files, which tests are affected by those changes by reasoning over
the static import graph of the project.`,
		Version: Version,
	}

	// Add subcommands
	rootCmd.AddCommand(affectedCmd())
	rootCmd.AddCommand(graphCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("reach version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
