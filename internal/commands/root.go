package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Without a subcommand it runs serve.
func NewRootCommand(logger *logrus.Logger) *cobra.Command {
	serveCmd := newServeCommand(logger)

	rootCmd := &cobra.Command{
		Use:   "spend-analytics",
		Short: "Spending analytics over an uploaded batch of transactions",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	rootCmd.Flags().AddFlag(serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newAnalyzeCommand())

	return rootCmd
}
