package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var kvCmd = &cobra.Command{
	Use:   "kv",
	Short: "Inspect and edit raw stored keys",
}

var kvGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the stored JSON for a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		data, ok := app.Store.GetRaw(context.Background(), args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Key not found: %s\n", args[0])
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var kvSetCmd = &cobra.Command{
	Use:   "set <key> <json>",
	Short: "Store a JSON value under a key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !json.Valid([]byte(args[1])) {
			fatal("Invalid value", fmt.Errorf("not valid JSON: %s", args[1]))
		}

		app := openApp()
		defer app.Close()

		if !app.Store.SetRaw(context.Background(), args[0], []byte(args[1])) {
			fmt.Fprintf(os.Stderr, "Failed to write %s\n", args[0])
			os.Exit(1)
		}
	},
}

var kvRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Remove a key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		if !app.Store.Remove(context.Background(), args[0]) {
			fmt.Fprintf(os.Stderr, "Failed to remove %s\n", args[0])
			os.Exit(1)
		}
	},
}

var kvKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		for _, k := range app.Store.Keys(context.Background()) {
			fmt.Println(k)
		}
	},
}

func init() {
	rootCmd.AddCommand(kvCmd)
	kvCmd.AddCommand(kvGetCmd, kvSetCmd, kvRmCmd, kvKeysCmd)
}
