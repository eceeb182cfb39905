package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// FileSourceType reads a JSON dataset from disk.
	FileSourceType SourceType = "file"

	FileSourceName = "json_file"
)

// Factory creates Source implementations based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new data source factory
func NewFactory(logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{logger: logger}
}

// NewSource creates a Source from the data config section. An empty source type means file.
func (f *Factory) NewSource(cfg config.DataConfig) (Source, error) {
	sourceType := SourceType(cfg.Source)
	if sourceType == "" {
		sourceType = FileSourceType
	}

	switch sourceType {
	case FileSourceType:
		src, err := NewFileSource(cfg.Path, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", sourceType, err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Source)
	}
}

// ListAvailableSources returns a list of available source types
func (f *Factory) ListAvailableSources() []SourceType {
	return []SourceType{FileSourceType}
}
