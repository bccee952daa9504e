package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errType = reflect.TypeFor[error]()

var (
	ErrNilFunction = errors.New("function cannot be nil")
	ErrNotFunction = errors.New("value is not a function")
	ErrVariadic    = errors.New("variadic functions are not supported")
	ErrNoResult    = errors.New("constructor must return a value")
	ErrTooManyOut  = errors.New("constructor must return a value and an optional error")
)

// Analyzer performs reflection-based analysis of functions and struct types.
// It caches analysis results for performance.
type Analyzer struct {
	mu    sync.RWMutex
	funcs map[uintptr]*FuncInfo

	structs sync.Map // map[reflect.Type]*StructInfo
}

// FuncInfo contains analyzed information about a function.
type FuncInfo struct {
	Type           reflect.Type
	Value          reflect.Value
	Parameters     []ParameterInfo
	Returns        []reflect.Type // non-error results, in order
	HasErrorReturn bool           // last result is error
}

// ParameterInfo describes a function parameter or an injectable struct field.
type ParameterInfo struct {
	Type  reflect.Type
	Index int    // parameter index or field index
	Name  string // field name for struct fields
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		funcs: make(map[uintptr]*FuncInfo),
	}
}

// Analyze analyzes fn, which must be a non-nil, non-variadic function.
func (a *Analyzer) Analyze(fn any) (*FuncInfo, error) {
	if fn == nil {
		return nil, ErrNilFunction
	}

	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotFunction, fn)
	}

	if val.IsNil() {
		return nil, ErrNilFunction
	}

	typ := val.Type()
	if typ.IsVariadic() {
		return nil, fmt.Errorf("%w: %s", ErrVariadic, typ)
	}

	// Closures share a code pointer, so cached entries carry no Value and
	// are checked against the type.
	key := val.Pointer()

	a.mu.RLock()
	cached, ok := a.funcs[key]
	a.mu.RUnlock()
	if ok && cached.Type == typ {
		info := *cached
		info.Value = val
		return &info, nil
	}

	info := &FuncInfo{
		Type:       typ,
		Value:      val,
		Parameters: make([]ParameterInfo, typ.NumIn()),
	}

	for i := 0; i < typ.NumIn(); i++ {
		info.Parameters[i] = ParameterInfo{Type: typ.In(i), Index: i}
	}

	numOut := typ.NumOut()
	for i := 0; i < numOut; i++ {
		out := typ.Out(i)

		// Only a trailing error is treated as the error result.
		if i == numOut-1 && out == errType {
			info.HasErrorReturn = true
			continue
		}

		info.Returns = append(info.Returns, out)
	}

	shape := *info
	shape.Value = reflect.Value{}

	a.mu.Lock()
	a.funcs[key] = &shape
	a.mu.Unlock()

	return info, nil
}

// AnalyzeConstructor analyzes fn as a constructor of target. A constructor
// returns exactly one value assignable to target, optionally followed by an error.
func (a *Analyzer) AnalyzeConstructor(fn any, target reflect.Type) (*FuncInfo, error) {
	info, err := a.Analyze(fn)
	if err != nil {
		return nil, err
	}

	switch len(info.Returns) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoResult, info.Type)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrTooManyOut, info.Type)
	}

	if target != nil && !info.Returns[0].AssignableTo(target) {
		return nil, fmt.Errorf("constructor %s returns %s, which is not assignable to %s",
			info.Type, info.Returns[0], target)
	}

	return info, nil
}

// Arity returns the number of parameters.
func (f *FuncInfo) Arity() int {
	return len(f.Parameters)
}

// ParameterTypes returns the parameter types in declaration order.
func (f *FuncInfo) ParameterTypes() []reflect.Type {
	types := make([]reflect.Type, len(f.Parameters))
	for i, p := range f.Parameters {
		types[i] = p.Type
	}
	return types
}
