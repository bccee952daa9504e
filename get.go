package injector

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/junioryono/injector/internal/graph"
)

// resolution is one frame of the chain of beans being constructed.
// Frames are immutable apart from done, which is set once the bean's
// factory returns.
type resolution struct {
	bean   *bean
	parent *resolution
	done   atomic.Bool
}

// cycle returns the error for entering b again, or nil if b is not being
// constructed on this chain.
func (r *resolution) cycle(b *bean) error {
	var path []graph.NodeKey
	for f := r; f != nil; f = f.parent {
		if f.done.Load() {
			continue
		}

		path = append(path, graph.NodeKey{Type: f.bean.typ})
		if f.bean == b {
			// Path was collected leaf first.
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return CircularDependencyError{Node: graph.NodeKey{Type: b.typ}, Path: path}
		}
	}

	return nil
}

// enter returns a view of c whose chain includes b.
func (c *Container) enter(b *bean) (*Container, *resolution) {
	frame := &resolution{bean: b, parent: c.chain}
	return &Container{container: c.container, chain: frame}, frame
}

// Get returns the instance of T according to its installed lifetime.
// It returns a NotRegisteredError if T was never installed.
func Get[T any](c *Container) (T, error) {
	var zero T

	t := reflect.TypeFor[T]()
	v, err := c.GetType(t)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, TypeMismatchError{Expected: t, Actual: reflect.TypeOf(v), Context: "type assertion"}
	}

	return typed, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](c *Container) T {
	v, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// GetType returns the instance installed under t according to its lifetime.
func (c *Container) GetType(t reflect.Type) (any, error) {
	if t == nil {
		return nil, ValidationError{Cause: fmt.Errorf("type cannot be nil")}
	}

	start := time.Now()
	v, err := c.get(t)
	if err != nil {
		c.logger.Debug("failed to get instance", "type", t, "error", err)
		if c.onError != nil {
			c.onError(t, err)
		}
		return nil, err
	}

	if c.onResolved != nil {
		c.onResolved(t, v, time.Since(start))
	}

	return v, nil
}

func (c *Container) get(t reflect.Type) (any, error) {
	if c.closed.Load() {
		return nil, ErrContainerClosed
	}

	b, err := c.lookup(t)
	if err != nil {
		return nil, err
	}

	if b.lifetime == Transient {
		return c.create(b)
	}

	if b.ready.Load() {
		return b.instance, nil
	}

	// Checked before locking so that re-entry on the same chain fails
	// instead of deadlocking.
	if err := c.chain.cycle(b); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready.Load() {
		return b.instance, nil
	}

	v, err := c.create(b)
	if err != nil {
		return nil, err
	}

	b.instance = v
	b.ready.Store(true)
	c.track(b)

	c.logger.Debug("created singleton", "type", b.typ)

	return v, nil
}

// create runs the bean's factory and checks its result.
func (c *Container) create(b *bean) (any, error) {
	if err := c.chain.cycle(b); err != nil {
		return nil, err
	}

	view, frame := c.enter(b)
	v, err := b.factory(view)
	frame.done.Store(true)

	if err != nil {
		return nil, err
	}

	actual := reflect.TypeOf(v)
	if isNil(v) {
		return nil, TypeMismatchError{Expected: b.typ, Actual: actual, Context: "nil factory result"}
	}

	if !actual.AssignableTo(b.typ) {
		return nil, TypeMismatchError{Expected: b.typ, Actual: actual, Context: "factory result"}
	}

	return v, nil
}
