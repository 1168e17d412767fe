package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/taskd/internal/client"
	"github.com/dyluth/taskd/internal/printer"
	"github.com/spf13/cobra"
)

var getOutputFormat string

var getCmd = &cobra.Command{
	Use:   "get TASK_ID",
	Short: "Show a task",
	Long: `Show a task from a running taskd server.

Output Formats:
  default - Labelled fields
  json    - The task as returned by the server

Examples:
  taskd get t1
  taskd get t1 --output=json | jq .author`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOutputFormat, "output", "o", "default", "Output format: default or json")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if getOutputFormat != "default" && getOutputFormat != "json" {
		return printer.Error(
			"Invalid output format",
			fmt.Sprintf("Unknown format '%s'.", getOutputFormat),
			[]string{"Use --output=default or --output=json"},
		)
	}

	id := args[0]
	task, err := client.New(serverURL).Get(context.Background(), id)
	if err != nil {
		if client.IsNotFound(err) {
			return printer.Error(
				"Task not found",
				err.Error(),
				[]string{"Create it with 'taskd create --id " + id + "'"},
			)
		}
		return requestFailed(err)
	}

	if getOutputFormat == "json" {
		return printer.TaskJSON(task)
	}
	printer.Task(task)
	return nil
}
