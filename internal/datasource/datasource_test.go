package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puck-savant/internal/config"
	"github.com/yourusername/puck-savant/internal/models"
)

const datasetPath = "testdata/dataset.json"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestFileSourceLoad(t *testing.T) {
	src, err := NewFileSource(datasetPath, quietLogger())
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, FileSourceName, src.Name())
	assert.Equal(t, datasetPath, src.Path())

	teams, err := src.TeamStats(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, models.Situation5v5, teams[0].Situation)
	assert.Equal(t, models.SituationPowerPlay, teams[2].Situation)
	assert.Equal(t, 120.0, teams[0].XGoalsFor)

	goalies, err := src.GoalieStats(ctx)
	require.NoError(t, err)
	require.Len(t, goalies, 2)
	assert.Equal(t, models.Situation5v5, goalies[0].Situation)

	rows, err := src.Schedule(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].HomeGoals)
	assert.Equal(t, 4, *rows[0].HomeGoals)
	assert.Nil(t, rows[1].HomeGoals)
}

func TestFileSourceReturnsCopies(t *testing.T) {
	src, err := NewFileSource(datasetPath, quietLogger())
	require.NoError(t, err)

	teams, err := src.TeamStats(context.Background())
	require.NoError(t, err)
	teams[0].Team = "XXX"

	again, err := src.TeamStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NYR", again[0].Team)
}

func TestFileSourceGames(t *testing.T) {
	src, err := NewFileSource(datasetPath, quietLogger())
	require.NoError(t, err)
	ctx := context.Background()

	all, err := src.Games(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.False(t, all[2].Complete())

	window, err := src.Games(ctx, day(3), day(5))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "Igor Shesterkin", window[0].HomeGoalie)

	from, err := src.Games(ctx, day(4), time.Time{})
	require.NoError(t, err)
	assert.Len(t, from, 2)
}

func TestFileSourceSlate(t *testing.T) {
	src, err := NewFileSource(datasetPath, quietLogger())
	require.NoError(t, err)
	ctx := context.Background()

	all, err := src.Slate(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	games, err := src.Slate(ctx, time.Date(2025, time.January, 8, 19, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "NJD", g.Away)
	assert.True(t, g.WithGoalie)
	assert.Equal(t, -150, g.HomeMoneyline)
	require.NotNil(t, g.ExternalHomeProb)
	assert.Equal(t, 0.6, *g.ExternalHomeProb)
	assert.Zero(t, g.HomePuckLine)
	assert.Equal(t, 5.5, g.TotalLine)

	none, err := src.Slate(ctx, day(20))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFileSourceCancelled(t *testing.T) {
	src, err := NewFileSource(datasetPath, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.TeamStats(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	var srcErr SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, ErrCodeCancelled, srcErr.Code)
}

func TestFileSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
		code string
	}{
		{"empty path", "", ErrInvalidData, ErrCodeInvalidData},
		{"missing file", "testdata/missing.json", ErrNotFound, ErrCodeNotFound},
		{"malformed json", "testdata/malformed.json", ErrInvalidData, ErrCodeInvalidData},
		{"unknown situation", "testdata/bad_situation.json", ErrInvalidData, ErrCodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(tt.path, quietLogger())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var srcErr SourceError
			require.True(t, errors.As(err, &srcErr))
			assert.Equal(t, tt.code, srcErr.Code)
		})
	}

	_, err := NewFileSource("testdata/bad_situation.json", quietLogger())
	assert.ErrorIs(t, err, models.ErrUnknownSituation)
}

func TestFactory(t *testing.T) {
	f := NewFactory(quietLogger())
	assert.Equal(t, []SourceType{FileSourceType}, f.ListAvailableSources())

	src, err := f.NewSource(config.DataConfig{Path: datasetPath})
	require.NoError(t, err)
	assert.Equal(t, FileSourceName, src.Name())

	_, err = f.NewSource(config.DataConfig{Source: "postgres", Path: datasetPath})
	assert.Error(t, err)

	_, err = f.NewSource(config.DataConfig{Source: "file", Path: "testdata/missing.json"})
	assert.ErrorIs(t, err, ErrNotFound)
}
