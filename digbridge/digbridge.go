// Package digbridge connects an injector container with a go.uber.org/dig
// container.
//
// Export makes every binding of an injector container available to dig
// constructors and invocations. Import installs a dig-provided type into an
// injector container.
//
//	dc := dig.New()
//	if err := digbridge.Export(c, dc); err != nil {
//	    return err
//	}
//	err := dc.Invoke(func(store UserStore) { ... })
package digbridge

import (
	"fmt"
	"reflect"

	"github.com/junioryono/injector"
	"go.uber.org/dig"
)

var errType = reflect.TypeFor[error]()

// ExportOption configures Export.
type ExportOption interface {
	applyExportOption(*exportOptions)
}

type exportOptions struct {
	filter func(injector.Binding) bool
}

type exportOptionFunc func(*exportOptions)

func (f exportOptionFunc) applyExportOption(opts *exportOptions) {
	f(opts)
}

// WithFilter exports only the bindings for which keep returns true.
func WithFilter(keep func(injector.Binding) bool) ExportOption {
	return exportOptionFunc(func(opts *exportOptions) {
		opts.filter = keep
	})
}

// Export provides every binding installed in c to dc. Each exported type is
// obtained from c with GetType when dig needs it, so lifetimes are those of
// the injector container. Bindings installed after Export are not exported.
func Export(c *injector.Container, dc *dig.Container, opts ...ExportOption) error {
	if c == nil {
		return injector.ErrNoContainer
	}
	if dc == nil {
		return fmt.Errorf("dig container cannot be nil")
	}

	var options exportOptions
	for _, opt := range opts {
		if opt != nil {
			opt.applyExportOption(&options)
		}
	}

	for _, b := range c.Bindings() {
		if options.filter != nil && !options.filter(b) {
			continue
		}

		if err := dc.Provide(constructor(c, b.Type).Interface()); err != nil {
			return fmt.Errorf("export %s: %w", b.Type, err)
		}
	}

	return nil
}

// constructor returns a func() (t, error) that gets t from c.
func constructor(c *injector.Container, t reflect.Type) reflect.Value {
	fnType := reflect.FuncOf(nil, []reflect.Type{t, errType}, false)

	return reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		v, err := c.GetType(t)
		if err != nil {
			return []reflect.Value{reflect.Zero(t), reflect.ValueOf(&err).Elem()}
		}

		out := reflect.New(t).Elem()
		out.Set(reflect.ValueOf(v))
		return []reflect.Value{out, reflect.Zero(errType)}
	})
}

// Import installs T in c, obtaining each instance by invoking dc. dig
// caches the values it constructs, so a Transient import still observes a
// single instance per dig container. Errors from dig are returned
// unmodified from Get.
func Import[T any](c *injector.Container, dc *dig.Container, lifetime injector.Lifetime) error {
	if dc == nil {
		return fmt.Errorf("dig container cannot be nil")
	}

	return injector.InstallResolver(c, lifetime, func(*injector.Container) (T, error) {
		var out T
		err := dc.Invoke(func(v T) {
			out = v
		})
		return out, err
	})
}
