package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zachariahbioto-bot/Nutrition/config"
	"github.com/zachariahbioto-bot/Nutrition/logger"
)

var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Nutrition tracking API",
	Long: `Nutrition tracking backend: profiles and energy targets, food search,
meal logging, daily stats, recipe suggestions and realtime alerts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Init(s.Env); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		settings = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(recomputeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
