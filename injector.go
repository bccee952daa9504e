package injector

import (
	"reflect"
)

var injectorType = reflect.TypeFor[Injector]()

// Injector resolves dependencies on demand. Constructors and invoked
// functions may declare an Injector parameter to receive one bound to the
// resolution in progress, and use it to resolve dependencies lazily.
//
//	func NewHandler(inj injector.Injector) *Handler {
//	    return &Handler{users: func() (*UserStore, error) {
//	        return injector.Inject[*UserStore](inj)
//	    }}
//	}
type Injector struct {
	c *Container
}

// InjectorFor returns an Injector for c.
func InjectorFor(c *Container) Injector {
	return Injector{c: c}
}

// Get returns the instance installed under t, as Container.GetType does.
func (i Injector) Get(t reflect.Type) (any, error) {
	if i.c == nil {
		return nil, ErrNoContainer
	}
	return i.c.GetType(t)
}

// Container returns the container the injector resolves from.
func (i Injector) Container() *Container {
	return i.c
}

// Inject returns the instance of T from the injector's container.
func Inject[T any](i Injector) (T, error) {
	if i.c == nil {
		var zero T
		return zero, ErrNoContainer
	}
	return Get[T](i.c)
}

// value resolves a single parameter of type t. A parameter of type
// Injector receives the injector itself.
func (i Injector) value(t reflect.Type) (reflect.Value, error) {
	if t == injectorType {
		return reflect.ValueOf(i), nil
	}

	v, err := i.Get(t)
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(v), nil
}
