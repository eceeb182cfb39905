// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/puck-savant/internal/app"
	"github.com/yourusername/puck-savant/internal/backtest"
	"github.com/yourusername/puck-savant/internal/config"
	"github.com/yourusername/puck-savant/internal/datasource"
	"github.com/yourusername/puck-savant/internal/health"
	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/models"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const interruptedExitCode = 130

var (
	configFile string
	dataPath   string
	startDate  string
	endDate    string
	outputPath string
	compare    bool
	withGoalie bool
	workers    int
	bootstrap  int

	log *logrus.Logger
	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&dataPath, "data", "", "Override dataset path")
	rootCmd.Flags().StringVar(&startDate, "start-date", "", "First game date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "end-date", "", "Last game date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the JSON report to this path")
	rootCmd.Flags().BoolVar(&compare, "compare", false, "Run with and without the goalie adjustment and compare")
	rootCmd.Flags().BoolVar(&withGoalie, "goalie", true, "Apply the goalie adjustment")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers (0 keeps the configured value)")
	rootCmd.Flags().IntVar(&bootstrap, "bootstrap", -1, "Bootstrap iterations for the Brier interval (-1 keeps the configured value)")
}

var rootCmd = &cobra.Command{
	Use:     "backtest",
	Short:   "Replay historical games through the model",
	Long:    `Replays completed games through the stat engine and reports Brier score, calibration, accuracy, goal error and bias.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = app.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLoggerForEnvironment(cfg.App.LogLevel, cfg.App.Environment)
		return applyOverrides(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, cmd)
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if backtest.IsInterrupted(err) {
			os.Exit(interruptedExitCode)
		}
		os.Exit(1)
	}
}

func applyOverrides(cmd *cobra.Command) error {
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if cmd.Flags().Changed("goalie") {
		cfg.Backtest.WithGoalie = withGoalie
	}
	if workers > 0 {
		cfg.Backtest.Workers = workers
	}
	if bootstrap >= 0 {
		cfg.Backtest.BootstrapIterations = bootstrap
	}
	return config.Validate(cfg)
}

func run(ctx context.Context, cmd *cobra.Command) error {
	start, err := parseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	var server *health.Server
	if cfg.Metrics.Enabled {
		server = health.NewServer(health.Config{
			ServiceName: "backtest",
			Version:     Version,
			Commit:      GitCommit,
			Address:     cfg.Metrics.Address,
			Logger:      log,
		})
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer server.Shutdown()
	}

	src, err := datasource.NewFactory(log).NewSource(cfg.Data)
	if err != nil {
		return err
	}
	components, err := app.Build(ctx, cfg, src, log)
	if err != nil {
		return err
	}
	engine, err := components.Backtest()
	if err != nil {
		return err
	}
	if server != nil {
		server.AddCheck("models", components)
		server.SetReady(true)
	}

	games, err := src.Games(ctx, start, end)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return fmt.Errorf("%w between %s and %s", models.ErrNoGames, orOpen(startDate), orOpen(endDate))
	}

	log.WithFields(logrus.Fields{
		"games":   len(games),
		"compare": compare,
		"workers": engine.Config().Workers,
	}).Info("Starting backtest")

	out := cmd.OutOrStdout()
	if compare {
		comparison, err := engine.Compare(ctx, games)
		if err != nil {
			return interrupted(err)
		}
		fmt.Fprintln(out, backtest.GenerateComparisonReport(comparison))
		return writeReport(comparison.WithGoalie)
	}

	report, err := engine.Run(ctx, games)
	if err != nil {
		return interrupted(err)
	}
	fmt.Fprintln(out, backtest.GenerateConsoleReport(report))
	return writeReport(report)
}

func writeReport(report *backtest.Report) error {
	if outputPath == "" || report == nil {
		return nil
	}
	if err := backtest.WriteJSONReport(report, outputPath); err != nil {
		return err
	}
	log.WithField("path", outputPath).Info("Report written")
	return nil
}

func interrupted(err error) error {
	if backtest.IsInterrupted(err) {
		log.Warn("Backtest interrupted")
	}
	return err
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func orOpen(s string) string {
	if s == "" {
		return "open"
	}
	return s
}
