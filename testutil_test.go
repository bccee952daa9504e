package injector_test

import (
	"errors"
	"sync/atomic"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// TService is a basic service for testing.
type TService struct {
	ID    string
	Value int
}

func (s *TService) GetID() string { return s.ID }

// TDependency is a basic dependency for testing.
type TDependency struct {
	Name string
}

// TServiceWithDeps takes its dependencies through a constructor.
type TServiceWithDeps struct {
	Svc *TService
	Dep *TDependency
}

func NewTServiceWithDeps(svc *TService, dep *TDependency) *TServiceWithDeps {
	return &TServiceWithDeps{Svc: svc, Dep: dep}
}

// TInjected takes its dependencies through tagged fields.
type TInjected struct {
	Svc     *TService    `inject:""`
	Dep     *TDependency `inject:""`
	Skipped *TService    `inject:"-"`
	Plain   string
}

// TInterface is a basic interface for testing.
type TInterface interface {
	GetID() string
}

// TOther is an unrelated interface for testing.
type TOther interface {
	Other()
}

// TDisposable records its disposal.
type TDisposable struct {
	Name     string
	closed   atomic.Bool
	closeErr error
	order    *[]string
}

func (d *TDisposable) Close() error {
	if d.closed.Swap(true) {
		return errors.New("already closed")
	}
	if d.order != nil {
		*d.order = append(*d.order, d.Name)
	}
	return d.closeErr
}

func (d *TDisposable) IsClosed() bool { return d.closed.Load() }

// counter counts constructor calls.
type counter struct {
	n atomic.Int32
}

func (c *counter) inc() int { return int(c.n.Add(1)) }
func (c *counter) get() int { return int(c.n.Load()) }

var errBoom = errors.New("boom")
