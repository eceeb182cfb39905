// Package main provides the entry point for the slate evaluation CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/puck-savant/internal/app"
	"github.com/yourusername/puck-savant/internal/config"
	"github.com/yourusername/puck-savant/internal/datasource"
	"github.com/yourusername/puck-savant/internal/health"
	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	dataPath   string
	slateDate  string
	top        int
	asJSON     bool
	regression float64
	goalieTop  int

	logr *logrus.Logger
	cfg  *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&dataPath, "data", "", "Override dataset path")
	rootCmd.Flags().StringVarP(&slateDate, "date", "d", "", "Slate date (YYYY-MM-DD); empty evaluates every priced game")
	rootCmd.Flags().IntVarP(&top, "top", "n", 0, "Show only the best n opportunities (0 shows all)")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the slate report as JSON")
	rootCmd.Flags().Float64Var(&regression, "regression", 0, "List teams whose regression score is at least this far from zero (0 disables)")
	rootCmd.Flags().IntVar(&goalieTop, "goalies", 0, "List the top n goaltenders by GSAE (0 disables)")
}

// edgesReport is the JSON form of one run.
type edgesReport struct {
	service.SlateReport
	Regression []models.TeamSituationalStat `json:"regression,omitempty"`
	Goalies    []models.GoalieProfile       `json:"goalies,omitempty"`
}

var rootCmd = &cobra.Command{
	Use:     "edges",
	Short:   "Grade a slate of priced games",
	Long:    `Predicts every priced game on a slate and prints the graded, sized betting opportunities, best first.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = app.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dataPath != "" {
			cfg.Data.Path = dataPath
		}
		logr = logger.NewLoggerForEnvironment(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, cmd.OutOrStdout())
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, out io.Writer) error {
	var date time.Time
	if slateDate != "" {
		parsed, err := time.Parse("2006-01-02", slateDate)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		date = parsed
	}

	var server *health.Server
	if cfg.Metrics.Enabled {
		server = health.NewServer(health.Config{
			ServiceName: "edges",
			Version:     Version,
			Commit:      GitCommit,
			Address:     cfg.Metrics.Address,
			Logger:      logr,
		})
		if err := server.Start(ctx); err != nil {
			return err
		}
		defer server.Shutdown()
	}

	src, err := datasource.NewFactory(logr).NewSource(cfg.Data)
	if err != nil {
		return err
	}
	components, err := app.Build(ctx, cfg, src, logr)
	if err != nil {
		return err
	}
	predictor, err := components.Predictor()
	if err != nil {
		return err
	}
	if server != nil {
		server.AddCheck("models", components)
		server.SetReady(true)
	}

	slate, err := src.Slate(ctx, date)
	if err != nil {
		return err
	}

	report := edgesReport{SlateReport: predictor.ReportSlate(slate)}
	if top > 0 && len(report.Opportunities) > top {
		report.Opportunities = report.Opportunities[:top]
	}
	if regression > 0 {
		report.Regression = components.Engine.RegressionCandidates(regression)
	}
	if goalieTop > 0 {
		report.Goalies = components.Goalies.Rankings()
		if len(report.Goalies) > goalieTop {
			report.Goalies = report.Goalies[:goalieTop]
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if len(slate) == 0 {
		fmt.Fprintln(out, "No priced games on the slate.")
	} else {
		printOpportunities(out, len(slate), report.Opportunities)
		printMatchups(out, report.Matchups)
		printTotals(out, report.Totals)
	}
	printRegression(out, report.Regression)
	printGoalies(out, report.Goalies)
	return nil
}

func printOpportunities(out io.Writer, games int, opps []models.Opportunity) {
	fmt.Fprintf(out, "Slate: %d games, %d opportunities\n", games, len(opps))
	fmt.Fprintln(out, strings.Repeat("=", 95))
	fmt.Fprintf(out, "%-5s %-14s %-10s %6s %8s %8s %8s %8s %9s %s\n",
		"Grade", "Pick", "Market", "Odds", "Model", "Fair", "Blended", "EV%", "Stake", "Confidence")
	for _, o := range opps {
		confidence := string(o.Confidence)
		if confidence == "" {
			confidence = "-"
		}
		fair := "-"
		if o.FairProb > 0 {
			fair = fmt.Sprintf("%.1f%%", o.FairProb*100)
		}
		fmt.Fprintf(out, "%-5s %-14s %-10s %+6d %7.1f%% %8s %7.1f%% %+7.1f%% %9s %s\n",
			o.Grade, o.Candidate.Pick, o.Candidate.Market, o.Candidate.Odds,
			o.Candidate.ModelProb*100, fair, o.BlendedProb*100, o.EVPercent, o.Stake.StringFixed(2), confidence)
	}
}

func printMatchups(out io.Writer, matchups []service.Matchup) {
	if len(matchups) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Matchups")
	fmt.Fprintln(out, strings.Repeat("-", 95))
	for _, m := range matchups {
		fmt.Fprintf(out, "%s @ %s  goalies: %s / %s  rest: %s / %s\n",
			m.Away, m.Home, orDash(m.AwayStarter), orDash(m.HomeStarter), restLabel(m.AwayRest), restLabel(m.HomeRest))
	}
}

func printTotals(out io.Writer, totals []service.TotalAnalysis) {
	if len(totals) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Totals")
	fmt.Fprintln(out, strings.Repeat("-", 95))
	for _, t := range totals {
		fmt.Fprintf(out, "%s @ %s  line %.1f  model %.2f  over %.1f%% (poisson %.1f%%)  %s\n",
			t.Game.Away, t.Game.Home, t.Line, t.Game.Total,
			t.Combination.Probability*100, t.PoissonOver*100, t.Lean)
	}
}

func printRegression(out io.Writer, rows []models.TeamSituationalStat) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Regression candidates (5v5)")
	fmt.Fprintln(out, strings.Repeat("-", 95))
	for _, r := range rows {
		fmt.Fprintf(out, "%-4s GP %3d  PDO %6.1f  score %+6.2f\n", r.Team, r.GamesPlayed, r.PDO, r.RegressionScore)
	}
}

func printGoalies(out io.Writer, profiles []models.GoalieProfile) {
	if len(profiles) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Goaltenders by GSAE")
	fmt.Fprintln(out, strings.Repeat("-", 95))
	for _, p := range profiles {
		fmt.Fprintf(out, "%-24s %-4s GP %3d  GSAE %+6.1f  SV%% %.3f  %s %s\n",
			p.Name, p.Team, p.GamesPlayed, p.GSAE, p.SavePct, p.Tier, p.Form)
	}
}

func restLabel(r *models.RestInfo) string {
	if r == nil {
		return "-"
	}
	return r.Description
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
