package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-analyzer/internal/api"
	"github.com/insightdelivered/statement-analyzer/internal/config"
)

func newServeCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the statement analyzer HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := serverLogger(cfg, *logLevel)

			app := api.NewServer(cfg, log)

			// Shut down cleanly on SIGINT/SIGTERM so in-flight
			// analyses finish.
			done := make(chan os.Signal, 1)
			signal.Notify(done, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-done
				log.Info().Msg("shutting down")
				if err := app.ShutdownWithTimeout(cfg.HTTPShutdownTimeout); err != nil {
					log.Error().Err(err).Msg("shutdown failed")
				}
			}()

			log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
			if err := app.Listen(":" + cfg.HTTPPort); err != nil {
				return err
			}

			log.Info().Msg("server stopped")
			return nil
		},
	}
}

// serverLogger prefers JSON output for the server unless configured
// otherwise; the CLI flag still controls the level.
func serverLogger(cfg *config.Config, level string) zerolog.Logger {
	if level == "info" && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	if cfg.LogFormat == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}
