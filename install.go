package injector

import (
	"fmt"
	"reflect"
)

// Install registers T for auto-wiring with the given lifetime.
//
// T is built from the candidate with the most parameters that can all be
// satisfied: constructors added with WithConstructor or AddConstructor, and
// for concrete types the type itself, whose exported fields tagged
// `inject:""` are injected.
//
// Installing a type that is already installed is a no-op: the first binding
// is kept and nil is returned.
func Install[T any](c *Container, lifetime Lifetime, opts ...InstallOption) error {
	t := reflect.TypeFor[T]()
	return c.install(t, t, lifetime, opts)
}

// InstallAs registers Impl for auto-wiring, reachable under the identity of I.
func InstallAs[I, Impl any](c *Container, lifetime Lifetime, opts ...InstallOption) error {
	return c.install(reflect.TypeFor[I](), reflect.TypeFor[Impl](), lifetime, opts)
}

// InstallInstance registers a pre-built singleton. The container does not
// dispose it on Close.
func InstallInstance[T any](c *Container, instance T) error {
	t := reflect.TypeFor[T]()
	if isNil(instance) {
		return ValidationError{Type: t, Cause: ErrNilInstance}
	}

	b := &bean{typ: t, impl: reflect.TypeOf(instance), lifetime: Singleton, kind: kindInstance, instance: instance}
	b.ready.Store(true)
	return c.add(b)
}

// InstallFactory registers a factory for T. Errors returned by the factory
// are returned unmodified from Get. A nil result is rejected with a
// TypeMismatchError and never cached.
//
// The factory takes no container, so a factory that captures c and resolves
// its own type from it is not seen as a cycle: a singleton waits on itself
// forever. Use InstallResolver, whose container argument carries the
// resolution in progress, when the factory needs other bindings.
func InstallFactory[T any](c *Container, lifetime Lifetime, fn func() (T, error)) error {
	t := reflect.TypeFor[T]()
	if fn == nil {
		return ValidationError{Type: t, Cause: ErrNilFunction}
	}

	return c.addFactory(t, t, lifetime, func(*Container) (any, error) {
		return erase(fn())
	})
}

// InstallFactoryAs registers a factory producing Impl, reachable under the
// identity of I.
func InstallFactoryAs[I, Impl any](c *Container, lifetime Lifetime, fn func() (Impl, error)) error {
	iface, impl := reflect.TypeFor[I](), reflect.TypeFor[Impl]()
	if fn == nil {
		return ValidationError{Type: iface, Cause: ErrNilFunction}
	}

	return c.addFactory(iface, impl, lifetime, func(*Container) (any, error) {
		return erase(fn())
	})
}

// InstallResolver registers a resolver for T. The resolver receives the
// container bound to the resolution in progress and may call Get on it.
// Errors returned by the resolver are returned unmodified from Get.
func InstallResolver[T any](c *Container, lifetime Lifetime, fn func(*Container) (T, error)) error {
	t := reflect.TypeFor[T]()
	if fn == nil {
		return ValidationError{Type: t, Cause: ErrNilFunction}
	}

	return c.addFactory(t, t, lifetime, func(view *Container) (any, error) {
		return erase(fn(view))
	})
}

func erase[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Container) install(iface, impl reflect.Type, lifetime Lifetime, opts []InstallOption) error {
	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	if c.closed.Load() {
		return ErrContainerClosed
	}

	if iface != impl && !impl.AssignableTo(iface) {
		return TypeMismatchError{Expected: iface, Actual: impl, Context: "interface implementation"}
	}

	if c.installed(iface) {
		c.logger.Debug("ignored duplicate install", "type", iface, "lifetime", lifetime)
		return nil
	}

	var options installOptions
	for _, opt := range opts {
		if opt != nil {
			opt.applyInstallOption(&options)
		}
	}

	infos, err := c.analyzeConstructors(impl, options.constructors)
	if err != nil {
		return err
	}

	if err := c.checkConstructible(impl, infos); err != nil {
		return err
	}

	c.commitConstructors(impl, infos)

	b := &bean{
		typ:      iface,
		impl:     impl,
		lifetime: lifetime,
		kind:     kindAutowired,
		factory: func(view *Container) (any, error) {
			v, err := view.construct(impl)
			if err != nil {
				return nil, err
			}
			return v.Interface(), nil
		},
	}

	return c.add(b)
}

func (c *Container) addFactory(iface, impl reflect.Type, lifetime Lifetime, fn func(*Container) (any, error)) error {
	if !lifetime.IsValid() {
		return LifetimeError{Value: lifetime}
	}

	if iface != impl && !impl.AssignableTo(iface) {
		return TypeMismatchError{Expected: iface, Actual: impl, Context: "interface implementation"}
	}

	return c.add(&bean{typ: iface, impl: impl, lifetime: lifetime, kind: kindFactory, factory: fn})
}

// add inserts b under its identity, keeping any existing binding.
func (c *Container) add(b *bean) error {
	if c.closed.Load() {
		return ErrContainerClosed
	}

	b.key = c.identifier.Identify(b.typ)

	added, err := c.insert(b)
	if err != nil {
		return err
	}

	if !added {
		c.logger.Debug("ignored duplicate install", "type", b.typ, "lifetime", b.lifetime)
		return nil
	}

	c.logger.Debug("installed binding",
		"type", b.typ,
		"impl", b.impl,
		"lifetime", b.lifetime,
		"kind", b.kind,
		"key", b.key.String())

	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	return isNilValue(reflect.ValueOf(v))
}

func isNilValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// describe is used in log records and DOT labels.
func (b *bean) describe() string {
	if b.impl != nil && b.impl != b.typ {
		return fmt.Sprintf("%s (%s as %s)", b.lifetime, b.kind, formatType(b.impl))
	}
	return fmt.Sprintf("%s (%s)", b.lifetime, b.kind)
}
