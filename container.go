package injector

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/junioryono/injector/internal/reflection"
)

// Container holds installed bindings and the singletons created from them.
// It is safe for concurrent use once installation is complete.
//
// A *Container passed to a resolver or returned by Injector.Container is a
// view bound to the resolution in progress. It shares all state with the
// container it was derived from.
type Container struct {
	*container

	chain *resolution
}

type container struct {
	id         string
	identifier Identifier
	maxArity   int
	logger     *slog.Logger
	onResolved func(reflect.Type, any, time.Duration)
	onError    func(reflect.Type, error)
	analyzer   *reflection.Analyzer

	mu           sync.RWMutex
	beans        map[Key]*bean
	order        []*bean
	constructors map[reflect.Type][]*reflection.FuncInfo

	createdMu sync.Mutex
	created   []*bean

	closed atomic.Bool
}

// New creates an empty container.
func New(opts ...Option) *Container {
	options := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt.apply(options)
		}
	}

	return NewWithOptions(options)
}

// NewWithOptions creates an empty container from options. Zero fields fall
// back to their defaults, except MaxArity which is used as given.
func NewWithOptions(options *Options) *Container {
	if options == nil {
		options = DefaultOptions()
	}

	defaults := DefaultOptions()
	identifier := options.Identifier
	if identifier == nil {
		identifier = defaults.Identifier
	}

	logger := options.Logger
	if logger == nil {
		logger = defaults.Logger
	}

	id := uuid.NewString()

	c := &container{
		id:           id,
		identifier:   identifier,
		maxArity:     max(options.MaxArity, 0),
		logger:       logger.With("container", id),
		onResolved:   options.OnResolved,
		onError:      options.OnError,
		analyzer:     reflection.New(),
		beans:        make(map[Key]*bean),
		constructors: make(map[reflect.Type][]*reflection.FuncInfo),
	}

	c.logger.Debug("container created", "identity", identifier.Name(), "maxArity", c.maxArity)

	return &Container{container: c}
}

// ID returns the unique identifier of the container.
func (c *Container) ID() string {
	return c.id
}

// Identifier returns the identity strategy used by the container.
func (c *Container) Identifier() Identifier {
	return c.identifier
}

// MaxArity returns the maximum number of auto-wired constructor parameters.
func (c *Container) MaxArity() int {
	return c.maxArity
}

// IsClosed reports whether Close has been called.
func (c *Container) IsClosed() bool {
	return c.closed.Load()
}

// Close disposes every created singleton. It is equivalent to
// CloseContext(context.Background()).
func (c *Container) Close() error {
	return c.CloseContext(context.Background())
}

// CloseContext disposes every created singleton that implements Disposable
// or DisposableWithContext, in reverse creation order. Pre-built instances
// are owned by the caller and are not disposed. After CloseContext, Get and
// Install return ErrContainerClosed. Calling it again is a no-op.
func (c *Container) CloseContext(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.createdMu.Lock()
	created := c.created
	c.created = nil
	c.createdMu.Unlock()

	var errs []error
	for i := len(created) - 1; i >= 0; i-- {
		b := created[i]
		if err := dispose(ctx, b.instance); err != nil {
			c.logger.Debug("failed to dispose singleton", "type", b.typ, "error", err)
			errs = append(errs, fmt.Errorf("dispose %s: %w", formatType(b.typ), err))
		}
	}

	c.logger.Debug("container closed", "disposed", len(created), "failed", len(errs))

	if len(errs) > 0 {
		return DisposalError{Errors: errs}
	}

	return nil
}

// track records a created singleton for disposal.
func (c *container) track(b *bean) {
	if !isDisposable(b.instance) {
		return
	}

	c.createdMu.Lock()
	c.created = append(c.created, b)
	c.createdMu.Unlock()
}
