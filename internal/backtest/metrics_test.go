package backtest

import (
	"math"
	"strings"
	"testing"
	"time"
)

func record(date time.Time, away, home string, predAway, predHome, homeProb float64, actualAway, actualHome int) Record {
	return Record{
		Date:           date,
		Away:           away,
		Home:           home,
		PredictedAway:  predAway,
		PredictedHome:  predHome,
		PredictedTotal: predAway + predHome,
		HomeWinProb:    homeProb,
		AwayWinProb:    1 - homeProb,
		ActualAway:     actualAway,
		ActualHome:     actualHome,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleRecords() []Record {
	oct := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)
	nov := time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC)
	return []Record{
		record(oct, "BBB", "AAA", 2.5, 3.5, 0.62, 2, 4), // total 6 vs 6, home win
		record(oct, "CCC", "AAA", 2.0, 3.0, 0.70, 3, 1), // total 5 vs 4, home loss
		record(nov, "AAA", "BBB", 3.0, 2.0, 0.40, 4, 4), // total 5 vs 8, tie counts as no home win
		record(nov, "AAA", "CCC", 3.0, 3.0, 0.96, 1, 2), // lands in the top bin
	}
}

func TestBrierScore(t *testing.T) {
	recs := sampleRecords()
	want := (math.Pow(0.62-1, 2) + math.Pow(0.70, 2) + math.Pow(0.40, 2) + math.Pow(0.96-1, 2)) / 4
	if got := BrierScore(recs); !approx(got, want) {
		t.Fatalf("expected Brier %.6f, got %.6f", want, got)
	}
	if BrierScore(nil) != 0 {
		t.Fatalf("expected zero Brier for no records")
	}
}

func TestCalibrationCurve(t *testing.T) {
	bins := CalibrationCurve(sampleRecords())
	// 0.40 -> 40-45, 0.62 -> 60-65, 0.70 -> 70-75, 0.96 -> 95-100.
	if len(bins) != 4 {
		t.Fatalf("expected 4 populated bins, got %d", len(bins))
	}
	if bins[0].Range != "40-45%" || bins[0].Count != 1 || bins[0].AvgActual != 0 {
		t.Fatalf("unexpected first bin %+v", bins[0])
	}
	if bins[2].Range != "70-75%" || !approx(bins[2].Error, 0.70) {
		t.Fatalf("unexpected 70-75 bin %+v", bins[2])
	}
	if bins[3].Range != "95-100%" {
		t.Fatalf("expected top bin 95-100%%, got %s", bins[3].Range)
	}

	low := CalibrationCurve([]Record{record(time.Now(), "A", "B", 3, 2, 0.30, 3, 2)})
	if len(low) != 0 {
		t.Fatalf("probabilities below 40%% are not binned")
	}
}

func TestWinAccuracy(t *testing.T) {
	acc := WinAccuracy(sampleRecords())
	// Correct: game 1 (fav home wins), game 3 (away favoured, no home win), game 4.
	if acc.Correct != 3 || acc.Total != 4 || !approx(acc.Rate, 0.75) {
		t.Fatalf("unexpected accuracy %+v", acc)
	}
}

func TestCalculateMetricsTotals(t *testing.T) {
	m := CalculateMetrics(sampleRecords(), 6.0)
	// predicted totals 6,5,5,6 vs actual 6,4,8,3: errors 0,1,-3,3.
	if !approx(m.RMSE, math.Sqrt(19.0/4)) {
		t.Fatalf("unexpected RMSE %.4f", m.RMSE)
	}
	if !approx(m.MAE, 7.0/4) {
		t.Fatalf("unexpected MAE %.4f", m.MAE)
	}
	if !approx(m.AvgError, 1.0/4) {
		t.Fatalf("unexpected average error %.4f", m.AvgError)
	}

	// constant 6 misses by 0,2,2,3.
	if !approx(m.Baseline.ConstantRMSE, math.Sqrt(17.0/4)) {
		t.Fatalf("unexpected baseline RMSE %.4f", m.Baseline.ConstantRMSE)
	}
	wantImprovement := (math.Sqrt(17.0/4) - math.Sqrt(19.0/4)) / math.Sqrt(17.0/4) * 100
	if !approx(m.Baseline.RMSEImprovement, wantImprovement) {
		t.Fatalf("unexpected RMSE improvement %.4f", m.Baseline.RMSEImprovement)
	}
	if !approx(m.Baseline.BrierImprovement, (NoSkillBrier-m.BrierScore)/NoSkillBrier*100) {
		t.Fatalf("unexpected Brier improvement %.4f", m.Baseline.BrierImprovement)
	}
}

func TestErrorByRange(t *testing.T) {
	m := CalculateMetrics(sampleRecords(), 6.0)
	names := make([]string, 0, len(m.ByRange))
	for _, r := range m.ByRange {
		names = append(names, r.Name)
	}
	// actual totals 6,4,8,3: nothing lands in 5-6.
	if strings.Join(names, ",") != "0-5 goals,6-7 goals,7+ goals" {
		t.Fatalf("unexpected ranges %v", names)
	}
	if m.ByRange[0].Games != 2 || !approx(m.ByRange[0].AvgActual, 3.5) {
		t.Fatalf("unexpected 0-5 bucket %+v", m.ByRange[0])
	}
}

func TestByTeamAndMonth(t *testing.T) {
	m := CalculateMetrics(sampleRecords(), 6.0)
	if len(m.ByTeam) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(m.ByTeam))
	}
	for i := 1; i < len(m.ByTeam); i++ {
		if m.ByTeam[i].RMSE < m.ByTeam[i-1].RMSE {
			t.Fatalf("teams not sorted by RMSE")
		}
	}
	for _, ts := range m.ByTeam {
		if ts.Team == "AAA" && ts.Games != 4 {
			t.Fatalf("expected AAA in 4 games, got %d", ts.Games)
		}
	}

	if len(m.ByMonth) != 2 || m.ByMonth[0].Month != "2024-10" || m.ByMonth[1].Month != "2024-11" {
		t.Fatalf("unexpected months %+v", m.ByMonth)
	}
	if m.ByMonth[0].Games != 2 {
		t.Fatalf("expected 2 October games")
	}
}

func TestCalculateMetricsEmpty(t *testing.T) {
	m := CalculateMetrics(nil, 6.0)
	if m.Games != 0 || m.BrierScore != 0 || m.RMSE != 0 {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
	if m.Baseline.CoinFlipBrier != NoSkillBrier || m.Baseline.ConstantTotal != 6.0 {
		t.Fatalf("expected baselines to be reported")
	}
}

func TestValidateBias(t *testing.T) {
	date := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)
	var over []Record
	for i := 0; i < 10; i++ {
		over = append(over, record(date, "AAA", "BBB", 3.5, 3.5, 0.5, 2, 3))
	}
	b := ValidateBias(over)
	if b.OK() {
		t.Fatalf("expected warnings for consistent over-prediction")
	}
	if !approx(b.SystematicBias, 2) || !approx(b.OverShare, 1) {
		t.Fatalf("unexpected bias %+v", b)
	}

	balanced := []Record{
		record(date, "AAA", "BBB", 3, 3, 0.5, 3, 3),
		record(date, "AAA", "BBB", 3, 3, 0.5, 2, 4),
	}
	b = ValidateBias(balanced)
	// one home win in two at 50% each: no bias.
	if !b.OK() {
		t.Fatalf("expected no warnings, got %v", b.Warnings)
	}
	if ValidateBias(nil).Games != 0 {
		t.Fatalf("expected empty report")
	}
}
