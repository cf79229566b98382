// Package logger adapts popular logging libraries to bptree.Logger.
//
// The standard library's *slog.Logger already satisfies bptree.Logger and
// needs no adapter.
//
// Example with zap:
//
//	zapLogger, _ := zap.NewDevelopment()
//	tree, err := bptree.New[string, int](bptree.DefaultOrder,
//	    bptree.WithLogger(logger.NewZap(zapLogger)))
package logger
