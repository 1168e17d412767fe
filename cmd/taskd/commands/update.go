package commands

import (
	"context"

	"github.com/dyluth/taskd/internal/client"
	"github.com/dyluth/taskd/internal/printer"
	"github.com/dyluth/taskd/pkg/taskstore"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateAuthor      string
	updateDescription string
)

var updateCmd = &cobra.Command{
	Use:   "update TASK_ID",
	Short: "Update fields of a task",
	Long: `Update fields of an existing task on a running taskd server.

Only non-empty flags are applied; other fields keep their stored values.
A field cannot be cleared to an empty string through update.

Examples:
  taskd update t1 --author zoe
  taskd update t1 --title "New title" --description "More detail"`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateAuthor, "author", "", "New author")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]
	task := &taskstore.Task{
		ID:          id,
		Title:       updateTitle,
		Author:      updateAuthor,
		Description: updateDescription,
	}

	if err := client.New(serverURL).Update(context.Background(), id, task); err != nil {
		if client.IsNotFound(err) {
			return printer.Error(
				"Task not found",
				err.Error(),
				[]string{"Create it with 'taskd create --id " + id + "'"},
			)
		}
		return requestFailed(err)
	}

	if len(taskstore.UpdateFields(task)) == 0 {
		printer.Step("No fields given; task %s left unchanged", id)
		return nil
	}
	printer.Success("Updated task %s", id)
	return nil
}
