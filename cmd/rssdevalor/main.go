package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rssdevalor/internal/app"
	"rssdevalor/internal/config"
	"rssdevalor/internal/logging"
)

var configPath string

func buildApp() (*app.Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logging.New(cfg.Logging.Level))
}

var rootCmd = &cobra.Command{
	Use:   "rssdevalor",
	Short: "Generate RSS feeds for news sites and columnists without them",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch every configured source and regenerate all feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := buildApp()
		if err != nil {
			return err
		}
		return application.Run(context.Background())
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Regenerate only the OPML subscription list and HTML index",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := buildApp()
		if err != nil {
			return err
		}
		return application.EmitCatalog()
	},
}

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the sources configuration file")
	rootCmd.AddCommand(runCmd, catalogCmd)
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
