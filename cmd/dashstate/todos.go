package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/dashstate/pkg/remote"
)

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Show and toggle a user's todos",
}

var todosListCmd = &cobra.Command{
	Use:   "list <userId>",
	Short: "List todos with local overrides applied",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := parseID(args[0])
		ctx := context.Background()

		app := openApp()
		defer app.Close()

		list, err := app.Remote.FetchTodosByUser(ctx, userID)
		if err != nil {
			fatal("Failed to fetch todos", err)
		}
		renderTodos(cmd.OutOrStdout(), app.Todos(ctx, userID).Merge(list))
	},
}

var todosToggleCmd = &cobra.Command{
	Use:   "toggle <userId> <todoId>",
	Short: "Flip the completion of a todo locally",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		userID, todoID := parseID(args[0]), parseID(args[1])
		ctx := context.Background()

		app := openApp()
		defer app.Close()

		list, err := app.Remote.FetchTodosByUser(ctx, userID)
		if err != nil {
			fatal("Failed to fetch todos", err)
		}

		todo, ok := findTodo(list, todoID)
		if !ok {
			fatal("Unknown todo", fmt.Errorf("user %d has no todo %d", userID, todoID))
		}

		board := app.Todos(ctx, userID)
		done := board.Toggle(ctx, todo)
		fmt.Printf("%s %d %s (%d/%d completed)\n", mark(done), todo.ID, todo.Title, board.CompletedCount(list), len(list))
	},
}

func findTodo(list []remote.Todo, id int) (remote.Todo, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return remote.Todo{}, false
}

func parseID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		fatal("Invalid id", err)
	}
	return id
}

func init() {
	rootCmd.AddCommand(todosCmd)
	todosCmd.AddCommand(todosListCmd, todosToggleCmd)
}
