// Package main provides the veritas command-line client. It runs the
// verification pipeline in-process against the configured providers.
package main

import (
	"fmt"
	"os"

	"github.com/Harshitk-cp/veritas/internal/buildconfig"
	"github.com/Harshitk-cp/veritas/internal/config"
	"github.com/spf13/cobra"
)

const appName = "veritas"

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Check the truthfulness of a claim",
		Long: `Veritas turns a claim into a search query, gathers evidence from
web search, Wikipedia, Google Fact Check, news and Snopes, and asks a
language model to grade the claim from 0 (not evaluated) to 5 (true).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(verifyCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s)\n", appName, buildconfig.Version(), buildconfig.Commit())
		},
	})

	return cmd
}
