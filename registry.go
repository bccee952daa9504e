package injector

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

type beanKind int

const (
	kindAutowired beanKind = iota
	kindFactory
	kindInstance
)

func (k beanKind) String() string {
	switch k {
	case kindAutowired:
		return "autowired"
	case kindFactory:
		return "factory"
	default:
		return "instance"
	}
}

// bean is a single installed binding.
type bean struct {
	key      Key
	typ      reflect.Type // type the binding is installed under
	impl     reflect.Type // type that is constructed
	lifetime Lifetime
	kind     beanKind
	factory  func(*Container) (any, error)

	mu       sync.Mutex // serializes singleton creation
	ready    atomic.Bool
	instance any
}

// Binding describes an installed binding.
type Binding struct {
	Key      Key
	Type     reflect.Type // type the binding is installed under
	Impl     reflect.Type // type that is constructed
	Lifetime Lifetime
}

// insert adds b unless its key is already present. It reports whether b
// was added. A present key held by a different type is a collision.
func (c *container) insert(b *bean) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.beans[b.key]; ok {
		if existing.typ != b.typ {
			return false, IdentityCollisionError{Key: b.key, Existing: existing.typ, Type: b.typ}
		}
		return false, nil
	}

	c.beans[b.key] = b
	c.order = append(c.order, b)
	return true, nil
}

// lookup returns the bean installed for t.
func (c *container) lookup(t reflect.Type) (*bean, error) {
	key := c.identifier.Identify(t)

	c.mu.RLock()
	b, ok := c.beans[key]
	c.mu.RUnlock()

	if !ok {
		return nil, NotRegisteredError{Type: t, Available: c.types()}
	}

	if b.typ != t {
		return nil, IdentityCollisionError{Key: key, Existing: b.typ, Type: t}
	}

	return b, nil
}

// installed reports whether t has a binding.
func (c *container) installed(t reflect.Type) bool {
	if t == nil {
		return false
	}

	c.mu.RLock()
	b, ok := c.beans[c.identifier.Identify(t)]
	c.mu.RUnlock()

	return ok && b.typ == t
}

// types returns the installed types in install order.
func (c *container) types() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()

	types := make([]reflect.Type, len(c.order))
	for i, b := range c.order {
		types[i] = b.typ
	}
	return types
}

// beansInOrder returns the installed beans in install order.
func (c *container) beansInOrder() []*bean {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.order)
}

// Installed reports whether T has been installed in c.
func Installed[T any](c *Container) bool {
	return c.InstalledType(reflect.TypeFor[T]())
}

// InstalledType reports whether t has been installed.
func (c *Container) InstalledType(t reflect.Type) bool {
	return c.installed(t)
}

// LifetimeOf returns the lifetime T was installed with.
// It returns a NotRegisteredError if T was never installed.
func LifetimeOf[T any](c *Container) (Lifetime, error) {
	return c.LifetimeOfType(reflect.TypeFor[T]())
}

// LifetimeOfType returns the lifetime t was installed with.
func (c *Container) LifetimeOfType(t reflect.Type) (Lifetime, error) {
	b, err := c.lookup(t)
	if err != nil {
		return 0, err
	}
	return b.lifetime, nil
}

// Bindings returns a snapshot of the installed bindings ordered by key.
func (c *Container) Bindings() []Binding {
	beans := c.beansInOrder()

	bindings := make([]Binding, len(beans))
	for i, b := range beans {
		bindings[i] = Binding{
			Key:      b.key,
			Type:     b.typ,
			Impl:     b.impl,
			Lifetime: b.lifetime,
		}
	}

	slices.SortStableFunc(bindings, func(a, b Binding) int {
		return a.Key.Compare(b.Key)
	})

	return bindings
}

// Count returns the number of installed bindings.
func (c *Container) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.beans)
}
