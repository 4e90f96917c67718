package mocks

import (
	"context"

	"github.com/fiszki-app/fiszki-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	GenerateFn func(ctx context.Context, text string) (*generation.Result, error)

	// Default response values used when GenerateFn is nil.
	Result *generation.Result
	Err    error

	// Call tracking for verification.
	GenerateCalls []string
}

var _ generation.Generator = (*MockGenerator)(nil)

func (m *MockGenerator) Generate(ctx context.Context, text string) (*generation.Result, error) {
	m.GenerateCalls = append(m.GenerateCalls, text)

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, text)
	}
	return m.Result, m.Err
}
