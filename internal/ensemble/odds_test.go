package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puck-savant/internal/models"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		odds float64
		want float64
	}{
		{150, 0.4},
		{100, 0.5},
		{-100, 0.5},
		{-150, 0.6},
		{-200, 2.0 / 3},
		{300, 0.25},
	}
	for _, tt := range tests {
		got, err := ImpliedProbability(tt.odds)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "odds %v", tt.odds)
	}

	for _, bad := range []float64{0, 50, -99} {
		_, err := ImpliedProbability(bad)
		assert.ErrorIs(t, err, models.ErrInvalidOdds)
	}
}

func TestDecimalOdds(t *testing.T) {
	d, err := DecimalOdds(150)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, d, 1e-12)

	d, err = DecimalOdds(-200)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, d, 1e-12)

	_, err = DecimalOdds(10)
	assert.Error(t, err)
}

func TestProbabilityAmericanRoundTrip(t *testing.T) {
	for p := 0.01; p < 1; p += 0.01 {
		american, err := ProbabilityToAmerican(p)
		require.NoError(t, err)

		back, err := ImpliedProbability(american)
		require.NoError(t, err, "p %v odds %v", p, american)
		assert.InDelta(t, p, back, 1e-9)
	}

	for _, bad := range []float64{0, 1, -0.2, 1.5} {
		_, err := ProbabilityToAmerican(bad)
		assert.ErrorIs(t, err, models.ErrInvalidProbability)
	}
}

func TestRemoveVig(t *testing.T) {
	home, _ := ImpliedProbability(-120)
	away, _ := ImpliedProbability(100)

	fairHome, fairAway := RemoveVig(home, away)
	assert.InDelta(t, 1.0, fairHome+fairAway, 1e-12)
	assert.Less(t, fairHome, home)
	assert.InDelta(t, home+away-1, Overround(home, away), 1e-12)

	a, b := RemoveVig(0, 0)
	assert.Equal(t, 0.5, a)
	assert.Equal(t, 0.5, b)
}
