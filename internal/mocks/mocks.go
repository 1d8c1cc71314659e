// Package mocks provides testify doubles for the repository and provider ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TestingT is the subset of *testing.T the constructors need
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t TestingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func count(args mock.Arguments) (int, error) {
	return args.Int(0), args.Error(1)
}

// Transactor runs fn inline on the caller's context
type Transactor struct {
	Calls int
}

// WithinTx implements repositories.Transactor
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
