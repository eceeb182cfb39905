package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/service"
)

// Dataset is the on-disk layout of a FileSource.
type Dataset struct {
	Teams    []models.TeamSituationalStat `json:"teams"`
	Goalies  []models.GoalieStat          `json:"goalies"`
	Schedule []models.ScheduleRow         `json:"schedule"`
	Games    []models.HistoricalGame      `json:"games"`
	Slate    []service.SlateGame          `json:"slate"`
}

// FileSource serves a JSON dataset read once at construction.
type FileSource struct {
	path string
	data Dataset
	log  *logrus.Entry
}

// NewFileSource reads and normalises the dataset at path. Situation aliases
// such as "5on5" are mapped to their canonical names.
func NewFileSource(path string, log *logrus.Logger) (*FileSource, error) {
	if path == "" {
		return nil, NewSourceError(FileSourceName, ErrCodeInvalidData, "dataset path is required", ErrInvalidData)
	}
	if log == nil {
		log = logrus.New()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewSourceError(FileSourceName, ErrCodeNotFound, path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, NewSourceError(FileSourceName, ErrCodeInvalidData, "failed to decode "+path, errors.Join(ErrInvalidData, err))
	}
	if err := normalise(&data); err != nil {
		return nil, NewSourceError(FileSourceName, ErrCodeInvalidData, path, errors.Join(ErrInvalidData, err))
	}

	s := &FileSource{
		path: path,
		data: data,
		log:  log.WithFields(logrus.Fields{"component": "datasource", "source": FileSourceName}),
	}
	s.log.WithFields(logrus.Fields{
		"path":     path,
		"teams":    len(data.Teams),
		"goalies":  len(data.Goalies),
		"schedule": len(data.Schedule),
		"games":    len(data.Games),
		"slate":    len(data.Slate),
	}).Info("Dataset loaded")
	return s, nil
}

func normalise(d *Dataset) error {
	for i := range d.Teams {
		sit, err := models.ParseSituation(string(d.Teams[i].Situation))
		if err != nil {
			return fmt.Errorf("team row %d (%s): %w", i, d.Teams[i].Team, err)
		}
		d.Teams[i].Situation = sit
	}
	for i := range d.Goalies {
		sit, err := models.ParseSituation(string(d.Goalies[i].Situation))
		if err != nil {
			return fmt.Errorf("goalie row %d (%s): %w", i, d.Goalies[i].Name, err)
		}
		d.Goalies[i].Situation = sit
	}
	return nil
}

// Name returns the name of the data source
func (s *FileSource) Name() string { return FileSourceName }

// Path returns the dataset location.
func (s *FileSource) Path() string { return s.path }

func (s *FileSource) TeamStats(ctx context.Context) ([]models.TeamSituationalStat, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return append([]models.TeamSituationalStat(nil), s.data.Teams...), nil
}

func (s *FileSource) GoalieStats(ctx context.Context) ([]models.GoalieStat, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return append([]models.GoalieStat(nil), s.data.Goalies...), nil
}

func (s *FileSource) Schedule(ctx context.Context) ([]models.ScheduleRow, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return append([]models.ScheduleRow(nil), s.data.Schedule...), nil
}

func (s *FileSource) Games(ctx context.Context, start, end time.Time) ([]models.HistoricalGame, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var out []models.HistoricalGame
	for _, g := range s.data.Games {
		if !start.IsZero() && g.Date.Before(start) {
			continue
		}
		if !end.IsZero() && g.Date.After(end) {
			continue
		}
		out = append(out, g)
	}
	s.log.WithFields(logrus.Fields{
		"total":    len(s.data.Games),
		"selected": len(out),
	}).Debug("Games selected")
	return out, nil
}

func (s *FileSource) Slate(ctx context.Context, date time.Time) ([]service.SlateGame, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return append([]service.SlateGame(nil), s.data.Slate...), nil
	}
	var out []service.SlateGame
	for _, g := range s.data.Slate {
		if sameDay(g.Date, date) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *FileSource) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return NewSourceError(FileSourceName, ErrCodeCancelled, "request cancelled", err)
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
