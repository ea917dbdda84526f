package rng

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level, preserving
// the wrapped source's sequence. Useful for replaying a generation pass draw
// by draw.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource creates a LoggedSource that draws from src and logs each
// draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

func (l *LoggedSource) Next() float64 {
	v := l.src.Next()
	l.logger.Debug("rng draw",
		zap.String("op", "next"),
		zap.Float64("value", v),
	)
	return v
}

func (l *LoggedSource) IntBetween(min, max int) int {
	v := l.src.IntBetween(min, max)
	l.logger.Debug("rng draw",
		zap.String("op", "int_between"),
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Int("value", v),
	)
	return v
}

func (l *LoggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("rng draw",
		zap.String("op", "intn"),
		zap.Int("n", n),
		zap.Int("value", v),
	)
	return v
}
