package main

import (
	"fmt"
	"strings"
	"time"

	"DiningAPI/internal/databases"
	"DiningAPI/internal/menu"
	"DiningAPI/internal/period"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	periodUniversity string
	periodAt         string
	periodFile       string
)

var periodCmd = &cobra.Command{
	Use:   "period <hall name>",
	Short: "Resolve the meal period a hall is serving",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		now := time.Now().In(cfg.Location)
		if periodAt != "" {
			parsed, err := time.ParseInLocation("2006-01-02T15:04", periodAt, cfg.Location)
			if err != nil {
				return errors.Errorf("invalid --at %q (expected YYYY-MM-DDTHH:MM)", periodAt)
			}
			now = parsed
		}

		doc, err := loadDocument(cmd, cfg.DatabasePath)
		if err != nil {
			return err
		}

		resolver := period.NewResolver(cfg.Location)
		hall := cfg.Aliases.FindHall(doc, args[0], periodUniversity)
		out := cmd.OutOrStdout()
		if hall == nil {
			fmt.Fprintf(out, "Hall %q not found, default period\n", args[0])
			fmt.Fprintf(out, "%s\t%s\n", resolver.Default(now), resolver.Date(now))
			return nil
		}

		fmt.Fprintf(out, "%s (%s)\n", hall.Name, hall.Source)
		for _, meal := range hall.Meals {
			fmt.Fprintf(out, "  %-12s %s\n", period.NormalizeMealType(meal.MealType), strings.TrimSpace(meal.Time))
		}
		fmt.Fprintf(out, "%s\t%s\n", resolver.Resolve(*hall, now), resolver.Date(now))
		return nil
	},
}

func loadDocument(cmd *cobra.Command, databasePath string) (menu.Document, error) {
	if periodFile != "" {
		data, err := readInput(cmd, periodFile)
		if err != nil {
			return nil, err
		}
		return menu.DecodeDocument(data, time.Now())
	}

	db, err := databases.OpenAndMigrate(databasePath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return menu.NewRepository(db).Latest(cmd.Context())
}

func init() {
	periodCmd.Flags().StringVar(&periodUniversity, "university", "", "University tag the hall belongs to")
	periodCmd.Flags().StringVar(&periodAt, "at", "", "Instant in the reference zone, YYYY-MM-DDTHH:MM (default now)")
	periodCmd.Flags().StringVar(&periodFile, "file", "", "Read halls from a menu JSON file instead of the database")
	rootCmd.AddCommand(periodCmd)
}
