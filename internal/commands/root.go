package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendscope/spendscope/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "spendscope",
		Short:   "Spending analysis for bank transaction exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand(opts))
	rootCmd.AddCommand(newSubscriptionsCommand(opts))
	rootCmd.AddCommand(newAnomaliesCommand(opts))
	rootCmd.AddCommand(newTrendCommand(opts))
	rootCmd.AddCommand(newCategoriesCommand(opts))

	return rootCmd
}
