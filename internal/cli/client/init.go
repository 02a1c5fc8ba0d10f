package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// InitCmd returns the init command, which stores the server URL in the
// global config file.
func InitCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Configure the askdb client",
		Long:  "Stores the API server URL in the global config file so subsequent commands can find the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runInit(apiURL, outputJSON)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL (default: "+defaultAPIURL+")")

	return cmd
}

func runInit(apiURL string, outputJSON bool) error {
	if apiURL == "" {
		apiURL = os.Getenv("ASKDB_API_URL")
	}
	if apiURL == "" {
		fmt.Printf("Enter API URL [%s]: ", defaultAPIURL)
		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read API URL: %w", err)
		}
		apiURL = strings.TrimSpace(input)
		if apiURL == "" {
			apiURL = defaultAPIURL
		}
	}

	if err := SaveGlobalConfig(&GlobalConfig{APIURL: apiURL}); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if outputJSON {
		out, _ := json.MarshalIndent(map[string]string{
			"api_url":     apiURL,
			"config_path": configPath,
		}, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Saved API URL %s to %s\n", apiURL, configPath)
	return nil
}
