package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the runtime state of the store and its backend",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		out := map[string]any{
			app.Store.ComponentType(): app.Store.State(),
		}
		backend := app.Store.Backend()
		comp, isComp := backend.(introspection.Component)
		intro, isIntro := backend.(introspection.Introspectable)
		if isComp && isIntro {
			out[comp.ComponentType()] = intro.State()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
