package progress

import (
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// ProvideProgressSink picks the spinner for interactive text output and a
// no-op sink otherwise, so machine readable output stays clean.
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Debug || cfg.Output != config.OutputText {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}
