package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pharmetrics/askdb/internal/cli"
	"github.com/pharmetrics/askdb/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "askdb",
		Short: "askdb CLI - Query your database in plain English",
		Long: `askdb CLI turns natural-language questions into SQL and answers.

Environment variables:
  ASKDB_API_URL   API base URL (default: http://localhost:5000)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.QueryCmd())
	rootCmd.AddCommand(client.SQLCmd())
	rootCmd.AddCommand(client.SchemaCmd())
	rootCmd.AddCommand(client.StatusCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
