package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dashstate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dashstate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dashstate version %s\n", strings.TrimSpace(dashstate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
