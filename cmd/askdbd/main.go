package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pharmetrics/askdb/internal/cli"
	"github.com/pharmetrics/askdb/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "askdbd",
		Short: "askdb daemon",
		Long:  "askdb daemon for running the natural-language query API server",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
