// Package command dispatches named commands and tracks the ones in flight
// so they can be cancelled.
package command

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrDuplicateCommand = errors.New("command already registered")
)

// Handler runs a command. It must return when ctx is cancelled.
type Handler func(ctx context.Context) error

type execution struct {
	seq    uint64
	cancel context.CancelFunc
}

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.Mutex
	handlers map[string]Handler
	running  map[string]execution
	seq      uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		running:  make(map[string]execution),
	}
}

// Register adds a handler under name.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" || h == nil {
		return errors.New("command needs a name and a handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[name]; ok {
		return errors.Wrap(ErrDuplicateCommand, name)
	}
	r.handlers[name] = h
	return nil
}

// Execute runs the named command and waits for it. Starting a command that
// is already running cancels the earlier execution.
func (r *Registry) Execute(ctx context.Context, name string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	h, ok := r.handlers[name]
	if !ok {
		r.mu.Unlock()
		return errors.Wrap(ErrUnknownCommand, name)
	}
	if prev, ok := r.running[name]; ok {
		prev.cancel()
	}
	r.seq++
	seq := r.seq
	r.running[name] = execution{seq: seq, cancel: cancel}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if cur, ok := r.running[name]; ok && cur.seq == seq {
			delete(r.running, name)
		}
		r.mu.Unlock()
	}()

	return h(ctx)
}

// Cancel cancels the in-flight execution of name. It reports whether one
// was running.
func (r *Registry) Cancel(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	exec, ok := r.running[name]
	if ok {
		exec.cancel()
		delete(r.running, name)
	}
	return ok
}

// Running reports whether name is executing.
func (r *Registry) Running(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.running[name]
	return ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
