package commands

import (
	"context"

	"github.com/dyluth/taskd/internal/client"
	"github.com/dyluth/taskd/internal/printer"
	"github.com/dyluth/taskd/pkg/taskstore"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	createID          string
	createTitle       string
	createAuthor      string
	createDescription string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Long: `Create a task on a running taskd server.

A random UUID is used when --id is omitted. Fields left unset are stored as
empty strings.

Examples:
  taskd create --id t1 --title "Write docs" --author ana --description "README"
  taskd create --title "Untitled"`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createID, "id", "", "Task id (random UUID if omitted)")
	createCmd.Flags().StringVar(&createTitle, "title", "", "Task title")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Task author")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Task description")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	id := createID
	if id == "" {
		id = uuid.New().String()
	}

	task := &taskstore.Task{
		ID:          id,
		Title:       createTitle,
		Author:      createAuthor,
		Description: createDescription,
	}

	if err := client.New(serverURL).Create(context.Background(), task); err != nil {
		if client.IsConflict(err) {
			return printer.Error(
				"Task already exists",
				err.Error(),
				[]string{
					"Change it with 'taskd update " + id + "'",
					"Choose a different --id",
				},
			)
		}
		return requestFailed(err)
	}

	printer.Success("Created task %s", id)
	return nil
}

// requestFailed formats errors that have no command-specific advice
func requestFailed(err error) error {
	return printer.Error(
		"Request failed",
		err.Error(),
		[]string{"Check that 'taskd serve' is running at " + serverURL},
	)
}
