package backtest

import (
	"fmt"
	"math"
	"sort"
)

// NoSkillBrier is the Brier score of always predicting 50%.
const NoSkillBrier = 0.25

// Metrics represents backtest accuracy metrics
type Metrics struct {
	Games       int                `json:"games"`
	BrierScore  float64            `json:"brier_score"`
	Calibration []CalibrationBin   `json:"calibration"`
	Accuracy    Accuracy           `json:"accuracy"`
	RMSE        float64            `json:"rmse"`
	MAE         float64            `json:"mae"`
	AvgError    float64            `json:"avg_error"`
	ByRange     []RangeStat        `json:"by_range"`
	ByTeam      []TeamStat         `json:"by_team"`
	ByMonth     []MonthStat        `json:"by_month"`
	Baseline    BaselineComparison `json:"baseline"`
}

// CalibrationBin compares predicted and realised home win rates in one 5% band.
type CalibrationBin struct {
	Range        string  `json:"range"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Count        int     `json:"count"`
	AvgPredicted float64 `json:"avg_predicted"`
	AvgActual    float64 `json:"avg_actual"`
	Error        float64 `json:"error"`
}

// Accuracy counts games where the favourite won.
type Accuracy struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// RangeStat is total-goals error for games in one actual-total bucket.
type RangeStat struct {
	Name         string  `json:"name"`
	Games        int     `json:"games"`
	AvgActual    float64 `json:"avg_actual"`
	AvgPredicted float64 `json:"avg_predicted"`
	RMSE         float64 `json:"rmse"`
}

// TeamStat is per-team score error and Brier score.
type TeamStat struct {
	Team       string  `json:"team"`
	Games      int     `json:"games"`
	AvgError   float64 `json:"avg_error"`
	RMSE       float64 `json:"rmse"`
	BrierScore float64 `json:"brier_score"`
}

// MonthStat is total-goals RMSE and Brier score for one calendar month.
type MonthStat struct {
	Month      string  `json:"month"`
	Games      int     `json:"games"`
	RMSE       float64 `json:"rmse"`
	BrierScore float64 `json:"brier_score"`
}

// BaselineComparison measures the model against a constant total and a coin flip.
type BaselineComparison struct {
	ConstantTotal    float64 `json:"constant_total"`
	ConstantRMSE     float64 `json:"constant_rmse"`
	RMSEImprovement  float64 `json:"rmse_improvement_pct"`
	CoinFlipBrier    float64 `json:"coin_flip_brier"`
	BrierImprovement float64 `json:"brier_improvement_pct"`
}

var goalRanges = []struct {
	name     string
	min, max int
}{
	{"0-5 goals", 0, 5},
	{"5-6 goals", 5, 6},
	{"6-7 goals", 6, 7},
	{"7+ goals", 7, math.MaxInt},
}

// CalculateMetrics computes all accuracy metrics for the processed games.
func CalculateMetrics(records []Record, baselineTotal float64) Metrics {
	m := Metrics{Games: len(records)}
	if len(records) == 0 {
		m.Baseline = BaselineComparison{ConstantTotal: baselineTotal, CoinFlipBrier: NoSkillBrier}
		return m
	}

	m.BrierScore = BrierScore(records)
	m.Calibration = CalibrationCurve(records)
	m.Accuracy = WinAccuracy(records)

	var sq, abs, signed float64
	for _, r := range records {
		diff := r.PredictedTotal - float64(r.ActualTotal())
		sq += diff * diff
		abs += math.Abs(diff)
		signed += diff
	}
	n := float64(len(records))
	m.RMSE = math.Sqrt(sq / n)
	m.MAE = abs / n
	m.AvgError = signed / n

	m.ByRange = errorByRange(records)
	m.ByTeam = byTeam(records)
	m.ByMonth = byMonth(records)
	m.Baseline = compareToBaseline(records, m.RMSE, m.BrierScore, baselineTotal)
	return m
}

// BrierScore is the mean squared error of the home win probability.
func BrierScore(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		d := r.HomeWinProb - boolToFloat(r.HomeWon())
		sum += d * d
	}
	return sum / float64(len(records))
}

// CalibrationCurve bins home win probabilities into 5% bands from 40% to 100%.
// Empty bands are omitted.
func CalibrationCurve(records []Record) []CalibrationBin {
	type acc struct {
		predicted, actual float64
		count             int
	}
	bins := make([]acc, 12)

	for _, r := range records {
		for i := range bins {
			lo := float64(40+5*i) / 100
			hi := float64(45+5*i) / 100
			if r.HomeWinProb >= lo && r.HomeWinProb < hi {
				bins[i].predicted += r.HomeWinProb
				bins[i].actual += boolToFloat(r.HomeWon())
				bins[i].count++
				break
			}
		}
	}

	var out []CalibrationBin
	for i, b := range bins {
		if b.count == 0 {
			continue
		}
		lo, hi := 40+5*i, 45+5*i
		pred := b.predicted / float64(b.count)
		act := b.actual / float64(b.count)
		out = append(out, CalibrationBin{
			Range:        fmt.Sprintf("%d-%d%%", lo, hi),
			Min:          float64(lo) / 100,
			Max:          float64(hi) / 100,
			Count:        b.count,
			AvgPredicted: pred,
			AvgActual:    act,
			Error:        math.Abs(pred - act),
		})
	}
	return out
}

// WinAccuracy counts games where a home probability above 0.5 matched a home win.
func WinAccuracy(records []Record) Accuracy {
	a := Accuracy{Total: len(records)}
	for _, r := range records {
		if (r.HomeWinProb > 0.5) == r.HomeWon() {
			a.Correct++
		}
	}
	if a.Total > 0 {
		a.Rate = float64(a.Correct) / float64(a.Total)
	}
	return a
}

func errorByRange(records []Record) []RangeStat {
	stats := make([]RangeStat, len(goalRanges))
	sq := make([]float64, len(goalRanges))
	for i, gr := range goalRanges {
		stats[i].Name = gr.name
	}

	for _, r := range records {
		actual := r.ActualTotal()
		idx := len(goalRanges) - 1
		for i, gr := range goalRanges {
			if actual >= gr.min && actual < gr.max {
				idx = i
				break
			}
		}
		stats[idx].Games++
		stats[idx].AvgActual += float64(actual)
		stats[idx].AvgPredicted += r.PredictedTotal
		d := r.PredictedTotal - float64(actual)
		sq[idx] += d * d
	}

	var out []RangeStat
	for i, s := range stats {
		if s.Games == 0 {
			continue
		}
		n := float64(s.Games)
		s.AvgActual /= n
		s.AvgPredicted /= n
		s.RMSE = math.Sqrt(sq[i] / n)
		out = append(out, s)
	}
	return out
}

type teamAcc struct {
	games    int
	errSum   float64
	sqSum    float64
	brierSum float64
}

func byTeam(records []Record) []TeamStat {
	acc := map[string]*teamAcc{}
	add := func(team string, predicted float64, actual int, prob float64, won bool) {
		a, ok := acc[team]
		if !ok {
			a = &teamAcc{}
			acc[team] = a
		}
		d := predicted - float64(actual)
		a.games++
		a.errSum += d
		a.sqSum += d * d
		p := prob - boolToFloat(won)
		a.brierSum += p * p
	}

	for _, r := range records {
		add(r.Home, r.PredictedHome, r.ActualHome, r.HomeWinProb, r.HomeWon())
		add(r.Away, r.PredictedAway, r.ActualAway, r.AwayWinProb, r.AwayWon())
	}

	out := make([]TeamStat, 0, len(acc))
	for team, a := range acc {
		n := float64(a.games)
		out = append(out, TeamStat{
			Team:       team,
			Games:      a.games,
			AvgError:   a.errSum / n,
			RMSE:       math.Sqrt(a.sqSum / n),
			BrierScore: a.brierSum / n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RMSE != out[j].RMSE {
			return out[i].RMSE < out[j].RMSE
		}
		return out[i].Team < out[j].Team
	})
	return out
}

func byMonth(records []Record) []MonthStat {
	type monthAcc struct {
		games    int
		sqSum    float64
		brierSum float64
	}
	acc := map[string]*monthAcc{}
	for _, r := range records {
		key := r.Date.Format("2006-01")
		a, ok := acc[key]
		if !ok {
			a = &monthAcc{}
			acc[key] = a
		}
		d := r.PredictedTotal - float64(r.ActualTotal())
		p := r.HomeWinProb - boolToFloat(r.HomeWon())
		a.games++
		a.sqSum += d * d
		a.brierSum += p * p
	}

	out := make([]MonthStat, 0, len(acc))
	for month, a := range acc {
		n := float64(a.games)
		out = append(out, MonthStat{
			Month:      month,
			Games:      a.games,
			RMSE:       math.Sqrt(a.sqSum / n),
			BrierScore: a.brierSum / n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func compareToBaseline(records []Record, rmse, brier, baselineTotal float64) BaselineComparison {
	var sq float64
	for _, r := range records {
		d := baselineTotal - float64(r.ActualTotal())
		sq += d * d
	}
	constRMSE := math.Sqrt(sq / float64(len(records)))

	b := BaselineComparison{
		ConstantTotal:    baselineTotal,
		ConstantRMSE:     constRMSE,
		CoinFlipBrier:    NoSkillBrier,
		BrierImprovement: (NoSkillBrier - brier) / NoSkillBrier * 100,
	}
	if constRMSE > 0 {
		b.RMSEImprovement = (constRMSE - rmse) / constRMSE * 100
	}
	return b
}
