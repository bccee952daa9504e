package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConstructor is returned by failing test factories.
	ErrConstructor = errors.New("constructor error")

	// ErrAlreadyClosed is returned when a fixture is closed twice.
	ErrAlreadyClosed = errors.New("already closed")
)

// TestService is a concrete service with no dependencies.
type TestService struct {
	ID string
}

func NewTestService() *TestService {
	return &TestService{ID: uuid.NewString()}
}

// TestLogger collects messages.
type TestLogger interface {
	Log(msg string)
	Messages() []string
}

type testLogger struct {
	mu   sync.Mutex
	msgs []string
}

func NewTestLogger() TestLogger {
	return &testLogger{}
}

func (l *testLogger) Log(msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

func (l *testLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

// TestDatabase is a closable dependency.
type TestDatabase interface {
	Query(sql string) string
	Close() error
}

type testDatabase struct {
	name   string
	mu     sync.Mutex
	closed bool
}

func NewTestDatabase() TestDatabase {
	return &testDatabase{name: "testdb"}
}

func (d *testDatabase) Query(sql string) string {
	return fmt.Sprintf("%s: %s", d.name, sql)
}

func (d *testDatabase) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrAlreadyClosed
	}
	d.closed = true
	return nil
}

// TestCache is a string map behind an interface.
type TestCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type testCache struct {
	data sync.Map
}

func NewTestCache() TestCache {
	return &testCache{}
}

func (c *testCache) Get(key string) (string, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (c *testCache) Set(key, value string) {
	c.data.Store(key, value)
}

// TestServiceWithDeps can be built from its constructor or its tagged fields.
type TestServiceWithDeps struct {
	Logger   TestLogger   `inject:""`
	Database TestDatabase `inject:""`
	Cache    TestCache    `inject:""`
	ID       string
}

func NewTestServiceWithDeps(logger TestLogger, db TestDatabase, cache TestCache) *TestServiceWithDeps {
	return &TestServiceWithDeps{
		Logger:   logger,
		Database: db,
		Cache:    cache,
		ID:       uuid.NewString(),
	}
}

// TestContextDisposable is closed through Close(ctx). A delay set with
// SetDisposeTime makes Close wait, so deadlines can be observed.
type TestContextDisposable struct {
	mu       sync.Mutex
	delay    time.Duration
	ctx      context.Context
	disposed bool
}

func NewTestContextDisposable() *TestContextDisposable {
	return &TestContextDisposable{}
}

func (s *TestContextDisposable) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrAlreadyClosed
	}
	s.ctx = ctx

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.disposed = true
	return nil
}

func (s *TestContextDisposable) SetDisposeTime(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

func (s *TestContextDisposable) WasDisposedWithContext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx != nil
}

func (s *TestContextDisposable) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// CircularServiceA and CircularServiceB depend on each other.
type CircularServiceA struct {
	B *CircularServiceB
}

type CircularServiceB struct {
	A *CircularServiceA
}

func NewCircularServiceA(b *CircularServiceB) *CircularServiceA {
	return &CircularServiceA{B: b}
}

func NewCircularServiceB(a *CircularServiceA) *CircularServiceB {
	return &CircularServiceB{A: a}
}

// CircularServiceSelf depends on itself.
type CircularServiceSelf struct {
	Next *CircularServiceSelf
}

func NewCircularServiceSelf(s *CircularServiceSelf) *CircularServiceSelf {
	return &CircularServiceSelf{Next: s}
}
