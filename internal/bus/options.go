package bus

import (
	"io"
	"log/slog"
)

type options struct {
	recording bool
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		recording: true,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a PairedSet at construction.
type Option func(*options)

// WithRecording sets the recording flag for every channel of the set.
// With recording off, producer calls are still stored but never delivered,
// neither live nor by replay.
func WithRecording(enabled bool) Option {
	return func(o *options) { o.recording = enabled }
}

// WithLogger sets the logger used for construction and clear events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
