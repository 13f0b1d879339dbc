package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ConsultationService/internal/cli"
	"github.com/m04kA/SMC-ConsultationService/internal/config"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/gateway"
	"github.com/m04kA/SMC-ConsultationService/internal/service/calendarfile"
	"github.com/m04kA/SMC-ConsultationService/internal/service/session"
	"github.com/m04kA/SMC-ConsultationService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

var (
	configPath string
	gatewayURL string
	outDir     string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "consult",
		Short:         "Prise de rendez-vous de consultation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "Gateway API prefix, overrides gateway.url")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", ".", "Directory for the .ics invitation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write client logs")

	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(settingsCmd())

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cli.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// environment общие зависимости команд
type environment struct {
	cfg    *config.Config
	log    *logger.Logger
	client *gateway.Client
}

func setup() (*environment, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if gatewayURL != "" {
		cfg.Gateway.URL = gatewayURL
	}

	log := logger.NewNop()
	if verbose {
		log, err = logger.New(cfg.Logs.File, "debug")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	timeout := time.Duration(cfg.Gateway.Timeout) * time.Second
	return &environment{
		cfg:    cfg,
		log:    log,
		client: gateway.NewClient(cfg.Gateway.URL, timeout, log),
	}, nil
}

func bookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Réserver un créneau",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.log.Close()

			loc, err := env.cfg.Booking.Location()
			if err != nil {
				return fmt.Errorf("invalid booking timezone: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outDir, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := session.New(
				env.client,
				submit_booking.NewUseCase(env.client, env.log),
				session.RealTimeProvider{},
				env.log,
				session.WithLocation(loc),
				session.WithCalendarOptions(calendarfile.Options{
					TZID:            loc.String(),
					ReminderMinutes: 15,
				}),
			)

			prompter, err := cli.NewReadlinePrompter(os.Stdin, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer prompter.Close()

			return cli.NewWizard(s, prompter, cmd.OutOrStdout(), outDir, env.log).Run(ctx)
		},
	}
}

func settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Afficher les paramètres de réservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.log.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			settings, err := env.client.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to get settings: %w", err)
			}
			cli.RenderSettings(cmd.OutOrStdout(), *settings)
			return nil
		},
	}
}
