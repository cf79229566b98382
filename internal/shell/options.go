package shell

import (
	"io"
	"os"

	"bptree"
)

// DefaultOrder is the order of every directory tree unless overridden.
const DefaultOrder = 4

// DefaultCacheSize is the number of resolved paths kept in the lookup cache.
const DefaultCacheSize = 1024

type options struct {
	order     int
	cacheSize uint32
	out       io.Writer
	logger    bptree.Logger
	color     bool
}

func defaultOptions() options {
	return options{
		order:     DefaultOrder,
		cacheSize: DefaultCacheSize,
		out:       os.Stdout,
		logger:    bptree.DiscardLogger{},
		color:     true,
	}
}

// Option configures a Shell.
type Option func(*options)

// WithOrder sets the B+ tree order used for directories.
func WithOrder(order int) Option {
	return func(opts *options) {
		opts.order = order
	}
}

// WithCacheSize sets how many resolved paths are cached.
func WithCacheSize(size uint32) Option {
	return func(opts *options) {
		opts.cacheSize = size
	}
}

// WithOutput redirects command output, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(opts *options) {
		opts.out = w
	}
}

// WithLogger sets the logger for the shell and its directory trees.
func WithLogger(logger bptree.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithColor enables or disables highlighting of directories in listings.
func WithColor(enabled bool) Option {
	return func(opts *options) {
		opts.color = enabled
	}
}
