package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dashstate/pkg/notes"
)

var (
	notePriority string
	notesJSON    bool
	notesFilter  string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage prioritized notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := notes.ParsePriority(notePriority)
		if err != nil {
			fatal("Invalid priority", err)
		}

		app := openApp()
		defer app.Close()

		n, ok := app.Notes.Add(context.Background(), strings.Join(args, " "), p)
		if !ok {
			fmt.Fprintln(os.Stderr, "Note text is empty")
			os.Exit(1)
		}
		fmt.Println(n.ID)
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		list := app.Notes.Notes()
		if notesFilter != "" {
			var err error
			if list, err = notes.Query(list, notesFilter); err != nil {
				fatal("Invalid filter", err)
			}
		}

		if notesJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(list); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		renderNotes(os.Stdout, list)
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		if !app.Notes.Remove(context.Background(), args[0]) {
			fmt.Fprintf(os.Stderr, "No note with id %s\n", args[0])
		}
	},
}

var notesPrioCmd = &cobra.Command{
	Use:   "prio <id> <important|normal|delayed>",
	Short: "Change the priority of a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := notes.ParsePriority(args[1])
		if err != nil {
			fatal("Invalid priority", err)
		}

		app := openApp()
		defer app.Close()

		if !app.Notes.ChangePriority(context.Background(), args[0], p) {
			fmt.Fprintf(os.Stderr, "No note with id %s\n", args[0])
		}
	},
}

var notesBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show notes grouped by priority",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		renderBoard(os.Stdout, app.Notes.Groups())
	},
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesRmCmd, notesPrioCmd, notesBoardCmd)

	notesAddCmd.Flags().StringVarP(&notePriority, "priority", "p", "normal", "Priority: important, normal or delayed")
	notesListCmd.Flags().BoolVar(&notesJSON, "json", false, "Output in JSON format")
	notesListCmd.Flags().StringVar(&notesFilter, "filter", "", `Filter expression, e.g. 'priority == "important"'`)
}
