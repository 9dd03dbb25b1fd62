package store

import "log/slog"

const (
	defaultPageSize    = 20
	defaultMaxPageSize = 100
)

type options struct {
	name        string
	pageSize    int
	maxPageSize int
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithName names the collection in logs and errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithPageSize sets the initial page size.
func WithPageSize(size int) Option {
	return func(o *options) { o.pageSize = size }
}

// WithMaxPageSize bounds the page sizes accepted by Apply.
func WithMaxPageSize(size int) Option {
	return func(o *options) { o.maxPageSize = size }
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{
		name:        "collection",
		pageSize:    defaultPageSize,
		maxPageSize: defaultMaxPageSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pageSize < 1 {
		o.pageSize = defaultPageSize
	}
	if o.maxPageSize < o.pageSize {
		o.maxPageSize = o.pageSize
	}
	return o
}
