package backtest

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func skilledRecords(n int) []Record {
	date := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	recs := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		// favourite at 65% wins two of every three
		homeScore := 3
		if i%3 == 2 {
			homeScore = 1
		}
		recs = append(recs, record(date, "BBB", "AAA", 2.4, 3.1, 0.65, 2, homeScore))
	}
	return recs
}

func TestBootstrapBrierDeterministic(t *testing.T) {
	recs := skilledRecords(150)
	cfg := BootstrapConfig{Iterations: 500, ConfidenceLevel: 0.9, Seed: 7}

	first, err := BootstrapBrier(context.Background(), recs, cfg)
	if err != nil {
		t.Fatalf("BootstrapBrier failed: %v", err)
	}
	second, err := BootstrapBrier(context.Background(), recs, cfg)
	if err != nil {
		t.Fatalf("BootstrapBrier failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical intervals for the same seed")
	}
	if first.Iterations != 500 || first.Level != 0.9 {
		t.Fatalf("unexpected config echo %+v", first)
	}
	if first.Lower > first.Upper {
		t.Fatalf("lower bound %.4f above upper %.4f", first.Lower, first.Upper)
	}
	point := BrierScore(recs)
	if point < first.Lower || point > first.Upper {
		t.Fatalf("point estimate %.4f outside interval %s", point, first.String())
	}
	if first.ProbabilityBeatsCoin < 0.9 {
		t.Fatalf("expected skilled model to beat coin flip in most resamples, got %.2f", first.ProbabilityBeatsCoin)
	}
	if !strings.HasPrefix(first.String(), "90% CI [") {
		t.Fatalf("unexpected interval format %q", first.String())
	}
}

func TestBootstrapBrierDefaults(t *testing.T) {
	ci, err := BootstrapBrier(context.Background(), skilledRecords(10), BootstrapConfig{Seed: 1})
	if err != nil {
		t.Fatalf("BootstrapBrier failed: %v", err)
	}
	if ci.Iterations != 1000 || ci.Level != 0.95 {
		t.Fatalf("expected defaults, got %+v", ci)
	}

	if _, err := BootstrapBrier(context.Background(), nil, BootstrapConfig{}); err == nil {
		t.Fatalf("expected error for empty records")
	}
}

func TestBootstrapBrierCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BootstrapBrier(ctx, skilledRecords(10), BootstrapConfig{Iterations: 10}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestConsoleReportAndJSON(t *testing.T) {
	recs := skilledRecords(9)
	report := &Report{
		RunID:      "run-1",
		WithGoalie: true,
		StartDate:  recs[0].Date,
		EndDate:    recs[0].Date,
		TotalGames: 10,
		Processed:  9,
		Errored:    1,
		ErrorRate:  0.1,
		Metrics:    CalculateMetrics(recs, 6.0),
		Bias:       ValidateBias(recs),
		Records:    recs,
		Errors:     []GameError{{Game: "2025-01-05 CCC@DDD", Error: "boom"}},
	}

	out := GenerateConsoleReport(report)
	for _, want := range []string{"Backtest Report", "goalie adjustment on", "Brier Score:", "65-70%", "RMSE:", "By team", "10.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("console report missing %q:\n%s", want, out)
		}
	}

	data, err := report.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["run_id"] != "run-1" {
		t.Fatalf("expected run_id in JSON")
	}
	if _, ok := decoded["metrics"].(map[string]any)["brier_score"]; !ok {
		t.Fatalf("expected metrics.brier_score in JSON")
	}
}

func TestGenerateRecommendation(t *testing.T) {
	tests := []struct {
		brier, rmse float64
		prefix      string
	}{
		{-0.01, -0.1, "KEEP"},
		{-0.01, 0.1, "KEEP"},
		{0, 0, "NEUTRAL"},
		{0.01, -0.1, "REVIEW"},
		{0.01, 0.1, "DROP"},
	}
	for _, tt := range tests {
		if got := GenerateRecommendation(tt.brier, tt.rmse); !strings.HasPrefix(got, tt.prefix) {
			t.Fatalf("GenerateRecommendation(%v, %v) = %q, want prefix %s", tt.brier, tt.rmse, got, tt.prefix)
		}
	}
}
