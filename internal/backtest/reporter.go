package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a report for terminal output
func GenerateConsoleReport(r *Report) string {
	m := r.Metrics

	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Run: %s (goalie adjustment %s)\n", r.RunID, onOff(r.WithGoalie)))
	if r.Processed > 0 {
		builder.WriteString(fmt.Sprintf("Dates: %s to %s\n", r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02")))
	}
	builder.WriteString(fmt.Sprintf("Games: %d processed, %d skipped, %d errors (%.2f%%)\n",
		r.Processed, r.Skipped, r.Errored, r.ErrorRate*100))

	builder.WriteString("\nWin probability\n")
	builder.WriteString(fmt.Sprintf("  Brier Score: %.4f (coin flip %.4f, %+.1f%%)\n",
		m.BrierScore, m.Baseline.CoinFlipBrier, m.Baseline.BrierImprovement))
	if r.BrierInterval != nil {
		builder.WriteString(fmt.Sprintf("  Bootstrap: %s, beats coin flip in %.1f%% of resamples\n",
			r.BrierInterval.String(), r.BrierInterval.ProbabilityBeatsCoin*100))
	}
	builder.WriteString(fmt.Sprintf("  Accuracy: %d/%d (%.2f%%)\n", m.Accuracy.Correct, m.Accuracy.Total, m.Accuracy.Rate*100))
	for _, bin := range m.Calibration {
		builder.WriteString(fmt.Sprintf("  %-8s n=%-4d predicted %5.1f%%  actual %5.1f%%\n",
			bin.Range, bin.Count, bin.AvgPredicted*100, bin.AvgActual*100))
	}

	builder.WriteString("\nTotal goals\n")
	builder.WriteString(fmt.Sprintf("  RMSE: %.3f (constant %.1f: %.3f, %+.1f%%)\n",
		m.RMSE, m.Baseline.ConstantTotal, m.Baseline.ConstantRMSE, m.Baseline.RMSEImprovement))
	builder.WriteString(fmt.Sprintf("  MAE: %.3f\n", m.MAE))
	builder.WriteString(fmt.Sprintf("  Average Error: %+.3f\n", m.AvgError))
	for _, rs := range m.ByRange {
		builder.WriteString(fmt.Sprintf("  %-10s games=%-4d actual %.2f predicted %.2f rmse %.2f\n",
			rs.Name, rs.Games, rs.AvgActual, rs.AvgPredicted, rs.RMSE))
	}

	if len(m.ByMonth) > 0 {
		builder.WriteString("\nBy month\n")
		for _, ms := range m.ByMonth {
			builder.WriteString(fmt.Sprintf("  %s games=%-4d rmse %.3f brier %.4f\n", ms.Month, ms.Games, ms.RMSE, ms.BrierScore))
		}
	}

	if len(m.ByTeam) > 0 {
		builder.WriteString("\nBy team (best to worst RMSE)\n")
		for _, ts := range m.ByTeam {
			builder.WriteString(fmt.Sprintf("  %-4s games=%-4d avg %+.3f rmse %.3f brier %.4f\n",
				ts.Team, ts.Games, ts.AvgError, ts.RMSE, ts.BrierScore))
		}
	}

	builder.WriteString("\nBias\n")
	if r.Bias.OK() {
		builder.WriteString("  No systematic bias detected\n")
	}
	for _, w := range r.Bias.Warnings {
		builder.WriteString(fmt.Sprintf("  WARNING: %s\n", w))
	}
	return builder.String()
}

// ToJSON encodes the report, records included.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteJSONReport writes the report to outputPath, creating parent directories.
func WriteJSONReport(r *Report, outputPath string) error {
	data, err := r.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
