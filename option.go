package bptree

// MinOrder is the smallest order that can represent a valid tree.
const MinOrder = 3

// DefaultOrder is a reasonable order for general purpose in-memory use.
const DefaultOrder = 64

type options struct {
	logger Logger
}

func defaultOptions() options {
	return options{
		logger: DiscardLogger{},
	}
}

// Option configures a Tree using the functional options pattern.
type Option func(*options)

// WithLogger sets the logger that receives structural events such as root
// splits and collapses. A nil logger restores the default no-op logger.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *options) {
		if logger == nil {
			logger = DiscardLogger{}
		}
		opts.logger = logger
	}
}

type scanOptions[K any] struct {
	from, to       K
	hasFrom, hasTo bool
}

// ScanOption bounds a Scan.
type ScanOption[K any] func(*scanOptions[K])

// From starts a scan at the first key >= key.
func From[K any](key K) ScanOption[K] {
	return func(opts *scanOptions[K]) {
		opts.from = key
		opts.hasFrom = true
	}
}

// To ends a scan after the last key <= key.
func To[K any](key K) ScanOption[K] {
	return func(opts *scanOptions[K]) {
		opts.to = key
		opts.hasTo = true
	}
}
