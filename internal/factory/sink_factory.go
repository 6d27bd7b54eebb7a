package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/adapters/sink"
	"github.com/syncapply/syncapply/internal/config"
	"github.com/syncapply/syncapply/internal/core"
)

// SinkFactory creates debug email sinks based on configuration
type SinkFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSinkFactory creates a new sink factory
func NewSinkFactory(cfg *config.Config, logger *zap.Logger) *SinkFactory {
	return &SinkFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSink creates a debug email sink based on the configuration
func (f *SinkFactory) CreateSink() (core.EmailSink, error) {
	sinkType := f.cfg.GetString("debug.sink")

	switch sinkType {
	case "none", "":
		return sink.NewNoopSink(), nil
	case "file":
		return sink.NewFileSink(f.cfg.GetString("debug.email_file"), f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported debug sink: %s", sinkType)
	}
}
