// Package mocks provides an in-memory otel.Otel that records scopes instead of
// exporting spans.
package mocks

import (
	"context"
	"hotel/infras/otel"
	"sync"
)

// Scope keeps everything a traced call reported.
type Scope struct {
	mu         sync.Mutex
	Name       string
	Attributes map[string]any
	Events     []string
	Errors     []error
	Ended      bool
}

func (s *Scope) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Ended = true
}

func (s *Scope) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Errors = append(s.Errors, err)
}

func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *Scope) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Events = append(s.Events, name)
}

func (s *Scope) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attributes[key] = value
}

func (s *Scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

// Otel hands out recording scopes.
type Otel struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{Name: spanName, Attributes: map[string]any{}}

	o.mu.Lock()
	o.scopes = append(o.scopes, scope)
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns the scopes opened with spanName, in opening order.
func (o *Otel) Scopes(spanName string) []*Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	var found []*Scope

	for _, scope := range o.scopes {
		if scope.Name == spanName {
			found = append(found, scope)
		}
	}

	return found
}

func NewOtel() *Otel {
	return &Otel{}
}
