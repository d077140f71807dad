package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"DiningAPI/internal/app"
	"DiningAPI/internal/common"
	"DiningAPI/internal/databases"
	"DiningAPI/internal/env"
	"DiningAPI/internal/menu"
	"DiningAPI/internal/nutrition"
	"DiningAPI/internal/period"
	"DiningAPI/internal/ratings"
	"DiningAPI/internal/refresh"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	logger := app.NewLogger(env.GetEnv(env.EnvLogLevel, "info"))
	cfg := app.Load(logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dining database (menu snapshots + ratings)
	db, err := databases.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	menuRepo := menu.NewRepository(db)
	if seeded, err := menuRepo.SeedFromFile(ctx, cfg.MenuSeedFile, time.Now()); err != nil {
		logger.Warn("menu seed import failed", "file", cfg.MenuSeedFile, "error", err)
	} else if seeded {
		logger.Info("menu document seeded", "file", cfg.MenuSeedFile)
	}

	// Refresh components
	pipeline := app.NewPipeline(cfg, menuRepo, logger)
	orchestrator := refresh.NewOrchestrator(pipeline, logger.With("component", "refresh"))
	scheduler := refresh.NewScheduler(cfg.PollInterval, logger.With("component", "scheduler"))
	scheduler.Add("daily-menu-refresh", refresh.DailyAt(cfg.RefreshHour, cfg.RefreshMinute, cfg.Location), func() {
		orchestrator.Trigger()
	})
	scheduler.Start(ctx)

	if cfg.AutoRefreshOnStart {
		orchestrator.Trigger()
	} else {
		logger.Info("auto refresh on start disabled, serving stored menu data")
	}

	// Rating components
	resolver := period.NewResolver(cfg.Location)
	ratingService := ratings.NewService(ratings.NewRepository(db), menuRepo, resolver, cfg.Aliases, logger.With("component", "ratings"))
	ratingHandler := ratings.NewHandler(ratingService, logger.With("component", "ratings"))
	limiter := ratings.NewRateLimiter(cfg.RatingsRPS, cfg.RatingsBurst)
	limiter.Start(ctx)

	menuHandler := menu.NewHandler(menuRepo, orchestrator, cfg.MenuWaitTimeout, logger.With("component", "menu"))
	nutritionHandler := nutrition.NewHandler(app.NutritionSearcher(cfg), logger.With("component", "nutrition"))

	router := gin.Default()
	router.Use(common.RequestID())
	router.GET("/", common.Home)

	// Global routes
	api := router.Group("/api")
	common.RegisterRoutes(api)
	menu.RegisterRoutes(api, menuHandler)
	ratings.RegisterRoutes(api, ratingHandler, limiter)
	nutrition.RegisterRoutes(api, nutritionHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown handling
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("Shutting down...")
		cancel()
		scheduler.Stop()
		limiter.Stop()

		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "timezone", cfg.Location.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	// A refresh in flight finishes before the database closes
	orchestrator.Wait()
}

/*
This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
