package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// StatusCmd returns the status command: checks API and analytics database
// connectivity.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check API server and analytics database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			outputJSON, _ := cmd.Flags().GetBool("output")

			if _, err := apiClient.Get("/health"); err != nil {
				return fmt.Errorf("API server unreachable at %s: %w", apiClient.baseURL, err)
			}

			dbStatus := "connected"
			if _, err := apiClient.Get("/db/test"); err != nil {
				if apiErr, ok := err.(*APIError); ok {
					dbStatus = apiErr.Message
					if dbStatus == "" {
						dbStatus = apiErr.ErrorText
					}
				} else {
					return err
				}
			}

			if outputJSON {
				out, _ := json.MarshalIndent(map[string]string{
					"api_url":            apiClient.baseURL,
					"api":                "healthy",
					"analytics_database": dbStatus,
				}, "", "  ")
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("API server:         healthy (%s)\n", apiClient.baseURL)
			fmt.Printf("Analytics database: %s\n", dbStatus)
			return nil
		},
	}
}
