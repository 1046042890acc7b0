package mocks

import (
	"context"
	"sync"

	"clinic/infras/otel"
)

// Otel hands out recording scopes. The zero value is ready to use.
type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func NewOtel() otel.Otel {
	return &Otel{}
}

// NewRecorder is NewOtel with the concrete type, for tests that inspect scopes.
func NewRecorder() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := newScope(spanName)

	o.mu.Lock()
	o.scopes = append(o.scopes, scope)
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the last scope opened with spanName, or nil.
func (o *Otel) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := len(o.scopes) - 1; i >= 0; i-- {
		if o.scopes[i].Name == spanName {
			return o.scopes[i]
		}
	}

	return nil
}
