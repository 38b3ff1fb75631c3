package command

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	calls := 0
	require.NoError(t, r.Register("a.run", func(ctx context.Context) error {
		calls++
		return nil
	}))

	require.NoError(t, r.Execute(context.Background(), "a.run"))
	assert.Equal(t, 1, calls)
	assert.False(t, r.Running("a.run"))
}

func TestRegistry_HandlerError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, r.Register("x", func(ctx context.Context) error { return boom }))

	assert.Equal(t, boom, r.Execute(context.Background(), "x"))
}

func TestRegistry_Unknown(t *testing.T) {
	err := NewRegistry().Execute(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrUnknownCommand))
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	h := func(ctx context.Context) error { return nil }
	require.NoError(t, r.Register("x", h))

	err := r.Register("x", h)
	assert.True(t, errors.Is(err, ErrDuplicateCommand))
	assert.Error(t, r.Register("", h))
	assert.Error(t, r.Register("y", nil))
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	h := func(ctx context.Context) error { return nil }
	require.NoError(t, r.Register("b", h))
	require.NoError(t, r.Register("a", h))
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

// blockingHandler waits for cancellation and signals when it has started.
func blockingHandler(started chan<- struct{}) Handler {
	return func(ctx context.Context) error {
		started <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	}
}

func TestRegistry_Cancel(t *testing.T) {
	r := NewRegistry()
	started := make(chan struct{}, 1)
	require.NoError(t, r.Register("slow", blockingHandler(started)))

	done := make(chan error, 1)
	go func() { done <- r.Execute(context.Background(), "slow") }()
	<-started

	assert.True(t, r.Running("slow"))
	assert.True(t, r.Cancel("slow"))

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not cancelled")
	}
	assert.False(t, r.Cancel("slow"))
}

func TestRegistry_RestartCancelsPrevious(t *testing.T) {
	r := NewRegistry()
	started := make(chan struct{}, 2)
	require.NoError(t, r.Register("slow", blockingHandler(started)))

	first := make(chan error, 1)
	go func() { first <- r.Execute(context.Background(), "slow") }()
	<-started

	second := make(chan error, 1)
	go func() { second <- r.Execute(context.Background(), "slow") }()
	<-started

	select {
	case err := <-first:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("first execution was not cancelled")
	}

	assert.True(t, r.Running("slow"))
	r.Cancel("slow")
	<-second
	assert.False(t, r.Running("slow"))
}
