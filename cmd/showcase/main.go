package main

import (
	"fmt"
	"os"

	"github.com/draftea/feature-showcase/shared/logging"
	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	app := newApp()
	if err := app.root.Execute(); err != nil {
		if app.logger != nil {
			app.logger.Fatal("showcase failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

type app struct {
	root   *cobra.Command
	logger *zap.Logger

	flagLogLevel string
	flagBaseURL  string
	flagDelay    int
}

func newApp() *app {
	a := &app{}

	a.root = &cobra.Command{
		Use:           "showcase",
		Short:         "Walks through sum types, polymorphism, async calls and map construction",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ReadConfig()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			a.applyConfig(cfg, cmd.Flags().Changed)

			logger, err := logging.NewLogger(a.flagLogLevel, false)
			if err != nil {
				return err
			}
			a.logger = logger
			cmd.SetContext(telemetry.WithTelemetry(cmd.Context(), telemetry.NewTelemetry(telemetry.ShowcaseCLIConfig)))
			return nil
		},
	}
	a.root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "log level: debug|info|warn|error (default log.level)")
	a.root.PersistentFlags().StringVar(&a.flagBaseURL, "base-url", "", "base URL of the delay endpoint (default delay.base_url)")
	a.root.PersistentFlags().IntVar(&a.flagDelay, "delay", 0, "seconds the delay endpoint waits before answering (default delay.seconds)")

	a.root.AddCommand(
		a.simpleCommand("max", "Print the largest number of a fixed list", runMax),
		a.simpleCommand("staff", "Describe employees of a small team", runStaff),
		a.simpleCommand("payments", "Describe a card and a check payment", runPayments),
		a.simpleCommand("shapes", "Compute areas through static and dynamic dispatch", runShapes),
		&cobra.Command{
			Use:   "fetch",
			Short: "Call the delay endpoint once and print the response",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runFetch(cmd)
			},
		},
		a.simpleCommand("maps", "Build maps with and without the helpers", runMaps),
		&cobra.Command{
			Use:   "all",
			Short: "Run every section in order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runAll(cmd)
			},
		},
	)

	return a
}

// applyConfig fills every flag the user did not set from cfg
func (a *app) applyConfig(cfg *config.Config, changed func(name string) bool) {
	if !changed("log-level") {
		a.flagLogLevel = cfg.Log.Level
	}
	if !changed("base-url") {
		a.flagBaseURL = cfg.Delay.BaseURL
	}
	if !changed("delay") {
		a.flagDelay = cfg.Delay.Seconds
	}
}

func (a *app) simpleCommand(use, short string, run func(cmd *cobra.Command)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run(cmd)
		},
	}
}
