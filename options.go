package gameshare

import (
	"log/slog"

	"github.com/junioryono/gameshare/internal/reflection"
)

// Option configures a GameShare or an Injector.
type Option func(*options)

// options holds the configuration shared by GameShare and Injector.
type options struct {
	strict  bool
	logger  *slog.Logger
	tagName string
	metrics *Metrics
}

func defaultOptions() options {
	return options{
		strict:  true,
		logger:  slog.New(slog.DiscardHandler),
		tagName: reflection.DefaultTagName,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithStrictMode sets whether a member that cannot be resolved aborts the
// whole injection pass (true, the default) or is skipped and left at its
// zero value (false).
func WithStrictMode(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger. A nil logger keeps the default, which discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTagName sets the struct tag key read for injection declarations. The
// default is "share".
func WithTagName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.tagName = name
		}
	}
}

// WithMetrics records injection passes into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
