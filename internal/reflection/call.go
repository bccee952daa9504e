package reflection

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// PanicError is returned by Call when the called function panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e PanicError) Error() string {
	return fmt.Sprintf("function panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

var _ error = PanicError{}

// Call invokes the analyzed function with args. Non-error results are
// returned in order. A trailing non-nil error is returned as err, and a
// panic is recovered into a PanicError.
func (f *FuncInfo) Call(args []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	out := f.Value.Call(args)

	if f.HasErrorReturn {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	return out, nil
}
