package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/dashstate"
	storelc "github.com/aretw0/dashstate/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print store changes as they happen, including writes from other processes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app := openApp(dashstate.WithWatcher(true))
		defer app.Close()

		src := storelc.NewSource(app.Store, pattern)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to watch", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %q (Ctrl+C to stop)\n", pattern)
		for e := range src.Events() {
			fmt.Println(e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
