package logger

import (
	"go.uber.org/zap"

	"bptree"
)

// Zap wraps a zap.Logger to implement bptree.Logger. Key-value pairs are
// passed through the sugared logger.
type Zap struct {
	sugar *zap.SugaredLogger
}

// NewZap creates a bptree.Logger from a zap.Logger.
func NewZap(logger *zap.Logger) bptree.Logger {
	return &Zap{sugar: logger.Sugar()}
}

func (z *Zap) Debug(msg string, args ...any) {
	z.sugar.Debugw(msg, args...)
}

func (z *Zap) Info(msg string, args ...any) {
	z.sugar.Infow(msg, args...)
}

func (z *Zap) Warn(msg string, args ...any) {
	z.sugar.Warnw(msg, args...)
}

func (z *Zap) Error(msg string, args ...any) {
	z.sugar.Errorw(msg, args...)
}
