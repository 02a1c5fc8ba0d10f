package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// SchemaCmd returns the schema command group for managing stored schema
// chunks.
func SchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage schema chunks used for retrieval",
	}

	cmd.AddCommand(schemaListCmd())
	cmd.AddCommand(schemaUpdateCmd())
	cmd.AddCommand(schemaDeleteCmd())
	cmd.AddCommand(schemaClearCmd())

	return cmd
}

func schemaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored schema chunk IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			raw, err := apiClient.Get("/schema/list")
			if err != nil {
				return err
			}

			outputJSON, _ := cmd.Flags().GetBool("output")
			if outputJSON {
				fmt.Println(string(raw))
				return nil
			}

			var resp struct {
				SchemaChunks []string `json:"schema_chunks"`
				Count        int      `json:"count"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			if resp.Count == 0 {
				fmt.Println("No schema chunks stored.")
				return nil
			}

			for _, id := range resp.SchemaChunks {
				fmt.Println(id)
			}
			fmt.Printf("\n%d chunk(s)\n", resp.Count)
			return nil
		},
	}
}

func schemaUpdateCmd() *cobra.Command {
	var contentFile string

	cmd := &cobra.Command{
		Use:   "update <chunk-id> [content]",
		Short: "Create or replace a schema chunk",
		Long:  "Creates or replaces a schema chunk. Content is taken from the second argument, or from a file with --file.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunkID := args[0]

			var content string
			switch {
			case contentFile != "":
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("failed to read content file: %w", err)
				}
				content = string(data)
			case len(args) == 2:
				content = args[1]
			default:
				return fmt.Errorf("content required: pass it as an argument or with --file")
			}

			apiClient, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			raw, err := apiClient.Post("/schema/update", map[string]string{
				"chunk_id": chunkID,
				"content":  content,
			})
			if err != nil {
				return err
			}

			printMessage(cmd, raw)
			return nil
		},
	}

	cmd.Flags().StringVar(&contentFile, "file", "", "Read chunk content from a file")

	return cmd
}

func schemaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chunk-id>",
		Short: "Delete a schema chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			raw, err := apiClient.Post("/schema/delete", map[string]string{"chunk_id": args[0]})
			if err != nil {
				return err
			}

			printMessage(cmd, raw)
			return nil
		},
	}
}

func schemaClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all schema chunks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("This deletes every stored schema chunk. Continue? [y/N]: ")
				reader := bufio.NewReader(os.Stdin)
				input, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			apiClient, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			raw, err := apiClient.Post("/schema/clear", nil)
			if err != nil {
				return err
			}

			printMessage(cmd, raw)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}

func printMessage(cmd *cobra.Command, raw json.RawMessage) {
	outputJSON, _ := cmd.Flags().GetBool("output")
	if outputJSON {
		fmt.Println(string(raw))
		return
	}

	var resp struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &resp) == nil && resp.Message != "" {
		fmt.Println(resp.Message)
		return
	}
	fmt.Println(string(raw))
}
