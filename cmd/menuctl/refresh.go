package main

import (
	"fmt"

	"DiningAPI/internal/app"
	"DiningAPI/internal/databases"
	"DiningAPI/internal/menu"
	"DiningAPI/internal/refresh"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run one scrape and enrichment pass and publish the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		logger := app.NewLogger("info")

		db, err := databases.OpenAndMigrate(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := menu.NewRepository(db)
		orchestrator := refresh.NewOrchestrator(app.NewPipeline(cfg, repo, logger), logger)
		if err := orchestrator.RunNow(cmd.Context()); err != nil {
			return err
		}

		doc, err := repo.Latest(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range refresh.Summarize(doc) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\topen=%d\tclosed=%d\terrors=%d\titems=%d\n",
				s.University, s.Open, s.Closed, s.Errors, s.Items)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
