package injector

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/injector/internal/reflection"
)

// Invoke calls fn with every parameter resolved from c, in declaration
// order. A trailing error result is returned as the error; the other
// results are returned in order.
//
//	results, err := injector.Invoke(c, func(db *Database, log Logger) (*Server, error) {
//	    return NewServer(db, log)
//	})
func Invoke(c *Container, fn any) ([]any, error) {
	if c.closed.Load() {
		return nil, ErrContainerClosed
	}

	info, err := c.analyzer.Analyze(fn)
	if err != nil {
		if errors.Is(err, reflection.ErrNilFunction) {
			return nil, ValidationError{Cause: ErrNilFunction}
		}
		return nil, ValidationError{Type: reflect.TypeOf(fn), Cause: err}
	}

	inj := Injector{c: c}
	args := make([]reflect.Value, info.Arity())
	for i, p := range info.Parameters {
		arg, err := inj.value(p.Type)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	out, err := info.Call(args)
	if err != nil {
		var pe reflection.PanicError
		if errors.As(err, &pe) {
			return nil, ConstructorPanicError{Constructor: info.Type, Panic: pe.Value, Stack: pe.Stack}
		}
		return nil, err
	}

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	return results, nil
}

// Call invokes fn like Invoke and returns its first result as R.
func Call[R any](c *Container, fn any) (R, error) {
	var zero R

	results, err := Invoke(c, fn)
	if err != nil {
		return zero, err
	}

	if len(results) == 0 {
		return zero, ValidationError{
			Type:  reflect.TypeOf(fn),
			Cause: fmt.Errorf("function returns no value of type %s", reflect.TypeFor[R]()),
		}
	}

	if results[0] == nil {
		return zero, nil
	}

	r, ok := results[0].(R)
	if !ok {
		return zero, TypeMismatchError{
			Expected: reflect.TypeFor[R](),
			Actual:   reflect.TypeOf(results[0]),
			Context:  "invoke result",
		}
	}

	return r, nil
}
