package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puck-savant/internal/config"
)

func setupRun(t *testing.T) {
	t.Helper()
	cfg = config.Default()
	cfg.Data.Path = "../../data/dataset.json"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Address = "127.0.0.1:0"

	logr = logrus.New()
	logr.SetLevel(logrus.ErrorLevel)

	slateDate, top, asJSON, regression, goalieTop = "", 0, false, 0, 0
	t.Cleanup(func() {
		cfg, logr = nil, nil
		slateDate, top, asJSON, regression, goalieTop = "", 0, false, 0, 0
	})
}

func TestRunPrintsSlateReport(t *testing.T) {
	setupRun(t)
	goalieTop = 1

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out))

	text := out.String()
	assert.Contains(t, text, "Slate: 2 games")
	assert.Contains(t, text, "Matchups")
	assert.Contains(t, text, "NJD @ NYR  goalies: Jake Allen / Igor Shesterkin")
	assert.Contains(t, text, "Totals")
	assert.Contains(t, text, "line 5.5")
	assert.Contains(t, text, "Goaltenders by GSAE")
	assert.Contains(t, text, "Igor Shesterkin")
	assert.NotContains(t, text, "Regression candidates")
}

func TestRunJSONReport(t *testing.T) {
	setupRun(t)
	asJSON = true
	goalieTop = 5

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out))

	var report edgesReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Len(t, report.Matchups, 2)
	require.Len(t, report.Totals, 2)
	assert.Equal(t, 6.5, report.Totals[1].Line)
	require.Len(t, report.Goalies, 2)
	assert.Equal(t, "Igor Shesterkin", report.Goalies[0].Name)
	for _, o := range report.Opportunities {
		assert.Greater(t, o.FairProb, 0.0)
	}
}

func TestRunSingleDay(t *testing.T) {
	setupRun(t)
	slateDate = "2025-01-09"
	asJSON = true

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out))

	var report edgesReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Matchups, 1)
	assert.Equal(t, "NYR", report.Matchups[0].Away)
}
