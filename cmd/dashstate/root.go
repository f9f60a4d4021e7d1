package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/dashstate"
	"github.com/aretw0/dashstate/internal/platform"
)

var (
	verbose       bool
	statePath     string
	adapter       string
	configPath    string
	legacySession bool
	readOnly      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dashstate",
	Short: "Persistent client state for the user/post/todo dashboard",
	Long: `dashstate keeps the dashboard's session, notes and todo overrides in a
durable keyed store, and reads users, posts, todos and weather from the remote APIs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&statePath, "path", "", "State location (directory for fs, file for sqlite/bolt)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite, bolt or memory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: dashstate.yaml at the project root)")
	rootCmd.PersistentFlags().BoolVar(&legacySession, "legacy-session", false, "Store the session under myapp_auth/myapp_user")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Never write to the store")
}

// openApp resolves the config and state path and opens the App.
// Flags override the config file.
func openApp(extra ...dashstate.Option) *dashstate.App {
	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}

	root, err := dashstate.FindRoot(cwd)
	if err != nil {
		root = cwd
	}

	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = filepath.Join(root, platform.ConfigFileName)
	}
	cfg, err := dashstate.LoadConfig(cfgFile)
	if err != nil {
		fatal("Failed to load config", err)
	}

	path := statePath
	if path == "" {
		path = cfg.Path
	}
	if path == "" {
		path = filepath.Join(root, platform.StateDirName)
	}

	opts := append(cfg.Options(), dashstate.WithLogger(slog.Default()))
	if adapter != "" {
		opts = append(opts, dashstate.WithAdapter(adapter))
	}
	if legacySession {
		opts = append(opts, dashstate.WithLegacySession(true))
	}
	if readOnly {
		opts = append(opts, dashstate.WithReadOnly(true))
	}
	opts = append(opts, extra...)

	app, err := dashstate.New(path, opts...)
	if err != nil {
		fatal("Failed to open state", err)
	}
	return app
}
