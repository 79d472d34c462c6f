// Command cruisedesk is the cruise booking assistant: load the catalog,
// validate datasets, and chat with the multi-agent assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	// ignore missing .env, real deployments use the environment
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "cruisedesk",
		Short:         "Cruise booking assistant",
		Long:          "cruisedesk answers cruise questions with a team of specialist agents over a SQL catalog and a vector index.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./cruisedesk.yaml)")
	rootCmd.AddCommand(newChatCmd(), newLoadDataCmd(), newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
