package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/dashstate/pkg/analytics"
	"github.com/aretw0/dashstate/pkg/remote"
)

var (
	weatherCity string
	weatherLat  float64
	weatherLon  float64
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List remote users",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		users, err := app.Remote.FetchUsers(context.Background())
		if err != nil {
			fatal("Failed to fetch users", err)
		}
		renderUsers(os.Stdout, users)
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show per-user post and todo activity",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		summary, err := analytics.Load(context.Background(), app.Remote)
		if err != nil {
			fatal("Failed to load analytics", err)
		}
		renderAnalytics(os.Stdout, summary)
	},
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show the current weather for a city or a coordinate",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		ctx := context.Background()
		var (
			wx  remote.Weather
			err error
		)
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			wx, err = app.Weather.ByCoords(ctx, weatherLat, weatherLon)
		} else {
			wx, err = app.Weather.ByCity(ctx, weatherCity)
		}
		if err != nil {
			fatal("Failed to fetch weather", err)
		}
		renderWeather(os.Stdout, wx)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd, analyticsCmd, weatherCmd)

	weatherCmd.Flags().StringVar(&weatherCity, "city", "", "City name")
	weatherCmd.Flags().Float64Var(&weatherLat, "lat", 0, "Latitude")
	weatherCmd.Flags().Float64Var(&weatherLon, "lon", 0, "Longitude")
}
