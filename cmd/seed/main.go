package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"shop-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), os.Getenv("LOG_LEVEL"))

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Database bootstrap and seed tools for shop-backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSchemaCmd(),
		newLocationsCmd(),
		newTokenCmd(),
	)
	return root
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
