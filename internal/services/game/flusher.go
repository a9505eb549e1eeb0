package game

import (
	"context"
	"log/slog"
	"time"
)

// finalFlushTimeout bounds the flush performed after the run context ends
const finalFlushTimeout = 10 * time.Second

// Flusher periodically persists dirty players for an engine running
// without write-through
type Flusher struct {
	engine   *Engine
	interval time.Duration
	logger   *slog.Logger
}

func NewFlusher(engine *Engine, interval time.Duration, logger *slog.Logger) *Flusher {
	return &Flusher{
		engine:   engine,
		interval: interval,
		logger:   logger,
	}
}

// Run flushes every interval until ctx is cancelled, then flushes once more
// before returning
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.logger.Info("flusher started", slog.Duration("interval", f.interval))

	for {
		select {
		case <-ticker.C:
			if err := f.engine.FlushAll(ctx); err != nil {
				f.logger.Error("periodic flush failed", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
			if err := f.engine.FlushAll(finalCtx); err != nil {
				f.logger.Error("final flush failed", slog.String("error", err.Error()))
			}
			cancel()
			f.logger.Info("flusher stopped")
			return
		}
	}
}
