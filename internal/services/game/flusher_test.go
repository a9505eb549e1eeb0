package game

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/guessfilm/internal/storage/memory"
	"github.com/mcoot/guessfilm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchedEngine(t *testing.T, store *memory.Storage) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.WriteThrough = false
	cfg.FlushInterval = 10 * time.Millisecond
	engine, err := New(testutil.Films(), store, cfg, testutil.NopLogger())
	require.NoError(t, err)
	return engine
}

func TestFlusherPersistsPeriodically(t *testing.T) {
	store := memory.New()
	engine := newBatchedEngine(t, store)

	_, err := engine.StartRound(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewFlusher(engine, 10*time.Millisecond, testutil.NopLogger()).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return engine.Pending() == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	stored, err := store.GetPlayer(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, stored.InRound())
}

func TestFlusherFlushesOnShutdown(t *testing.T) {
	store := memory.New()
	engine := newBatchedEngine(t, store)

	_, err := engine.StartRound(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// an hour-long interval means only the shutdown flush can run
	NewFlusher(engine, time.Hour, testutil.NopLogger()).Run(ctx)

	assert.Equal(t, 0, engine.Pending())
}
