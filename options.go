package automaton

import (
	"io"
	"log/slog"
)

type codecOptions struct {
	logger    *slog.Logger
	maxStates int // 0 means no limit
}

func newCodecOptions(opts ...Option) *codecOptions {
	options := &codecOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return options
}

// Option Configures a Decoder or an Encoder.
type Option func(*codecOptions)

// WithLogger Sets the logger receiving a debug record per decoded or encoded automaton.
func WithLogger(logger *slog.Logger) Option {
	return func(o *codecOptions) {
		o.logger = logger
	}
}

// WithMaxStates Rejects descriptions declaring more than n states. Zero disables the check.
func WithMaxStates(n int) Option {
	return func(o *codecOptions) {
		o.maxStates = n
	}
}
