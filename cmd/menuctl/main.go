package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"DiningAPI/internal/app"
	"DiningAPI/internal/env"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:          "menuctl",
	Short:        "menuctl inspects and refreshes the dining menu data",
	Long:         "menuctl converts legacy menu files, resolves hall meal periods and runs menu refreshes against the dining database.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default $DATABASE_PATH)")
}

func loadConfig() app.Config {
	logger := app.NewLogger(env.GetEnv(env.EnvLogLevel, "warn"))
	cfg := app.Load(logger)
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	return cfg
}
