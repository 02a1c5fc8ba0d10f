package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pharmetrics/askdb/internal/domain"
	"github.com/pharmetrics/askdb/internal/executor"
)

// QueryCmd returns the query command: ask a question, execute the generated
// SQL, and print the natural-language answer.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question against the analytics database",
		Long:  "Runs the full pipeline: generates SQL from the question, executes it, and prints a natural-language summary of the results.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runQuery(cmd, args[0], outputJSON)
		},
	}
	return cmd
}

func runQuery(cmd *cobra.Command, question string, outputJSON bool) error {
	apiClient, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	raw, err := apiClient.Post("/query", map[string]string{"query": question})
	if err != nil {
		return err
	}

	if outputJSON {
		fmt.Println(string(raw))
		return nil
	}

	var run domain.PipelineRun
	if err := json.Unmarshal(raw, &run); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if run.Status == domain.StatusError && run.FormattedResponse == "" {
		return fmt.Errorf("%s: %s", run.ErrorType, run.ErrorMessage)
	}

	fmt.Println(run.FormattedResponse)

	if run.TableData != nil && len(run.TableData.Rows) > 0 {
		fmt.Println()
		fmt.Println(executor.RenderTable(run.TableData.Columns, run.TableData.Rows))
		if run.TableData.HasMoreData {
			fmt.Printf("(%d rows total)\n", run.TableData.RowCount)
		}
	}

	if run.SQLQuery != "" {
		fmt.Printf("\nSQL: %s\n", run.SQLQuery)
	}

	return nil
}

// SQLCmd returns the sql command: translate a question to SQL without
// executing it.
func SQLCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "sql <question>",
		Short: "Translate a question to SQL without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSQL(cmd, args[0], detailed, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include all intermediate pipeline artifacts in the output")

	return cmd
}

func runSQL(cmd *cobra.Command, question string, detailed, outputJSON bool) error {
	apiClient, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := "/query-to-sql"
	if detailed {
		path = "/query-to-sql/detailed"
	}

	raw, err := apiClient.Post(path, map[string]string{"query": question})
	if err != nil {
		return err
	}

	if detailed || outputJSON {
		fmt.Println(string(raw))
		return nil
	}

	var resp struct {
		SQLQuery     string `json:"sql_query"`
		ErrorText    string `json:"error"`
		ErrorType    string `json:"error_type"`
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	// Unrelated-query rejections come back 200 with an error body.
	if resp.ErrorText != "" {
		return fmt.Errorf("%s: %s", resp.ErrorType, resp.ErrorMessage)
	}

	fmt.Println(resp.SQLQuery)
	return nil
}
