package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zachariahbioto-bot/Nutrition/config"
	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/repository"
	"github.com/zachariahbioto-bot/Nutrition/services"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	autoMigrate   bool
	recomputeUser uint
	recomputeDate string
	recomputeDays int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.InitDB(settings.Database)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		logger.Info("schema migrated")
		return nil
	},
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild stored daily stats for a user",
	RunE:  runRecompute,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Run schema migration before serving")

	recomputeCmd.Flags().UintVar(&recomputeUser, "user", 0, "User id")
	recomputeCmd.Flags().StringVar(&recomputeDate, "date", "", "First day, YYYY-MM-DD (default today)")
	recomputeCmd.Flags().IntVar(&recomputeDays, "days", 1, "Number of consecutive days")
	_ = recomputeCmd.MarkFlagRequired("user")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(settings.Database)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	aws, err := loadAWS(ctx, settings)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           buildRouter(settings, db, aws),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", settings.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runRecompute(cmd *cobra.Command, args []string) error {
	from := time.Now()
	if recomputeDate != "" {
		d, err := time.Parse("2006-01-02", recomputeDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		from = d
	}
	if recomputeDays < 1 {
		return errors.New("--days must be at least 1")
	}

	db, err := config.InitDB(settings.Database)
	if err != nil {
		return err
	}
	statsSvc := services.NewDailyStatsService(
		repository.NewProfileRepository(db),
		repository.NewMealLogRepository(db),
		repository.NewDailyStatsRepository(db),
		services.NewAlertBus(repository.NewAlertRepository(db), nil, nil),
	)

	rows, err := statsSvc.RecomputeRange(cmd.Context(), recomputeUser, from, recomputeDays)
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %.1f / %.1f kcal  (%d meals)\n",
			r.Date.Format("2006-01-02"), r.TotalCalories, r.TargetCalories, r.MealsLogged)
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "user has no profile, nothing recomputed")
	}
	return nil
}
