package mocks

import "hotel/infras/otel"

type scopeImpl struct{}

// AddEvent implements otel.Scope.
func (s *scopeImpl) AddEvent(_ string, _ ...map[string]any) {}

// End implements otel.Scope.
func (s *scopeImpl) End() {}

// Finish implements otel.Scope.
func (s *scopeImpl) Finish(_ *error) {}

// SetAttribute implements otel.Scope.
func (s *scopeImpl) SetAttribute(_ string, _ any) {}

// SetAttributes implements otel.Scope.
func (s *scopeImpl) SetAttributes(_ map[string]any) {}

// TraceError implements otel.Scope.
func (s *scopeImpl) TraceError(_ error) {}

func NewScope() otel.Scope {
	return &scopeImpl{}
}
