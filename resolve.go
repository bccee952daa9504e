package injector

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/injector/internal/reflection"
)

// candidate is one way of constructing a type: a registered constructor
// function, or the implicit construction of the type itself.
type candidate struct {
	target reflect.Type
	fn     *reflection.FuncInfo   // registered constructor
	st     *reflection.StructInfo // struct with injected fields
}

func (k candidate) params() []reflect.Type {
	switch {
	case k.fn != nil:
		return k.fn.ParameterTypes()
	case k.st != nil:
		return k.st.ParameterTypes()
	default:
		return nil
	}
}

func (k candidate) String() string {
	switch {
	case k.fn != nil:
		return k.fn.Type.String()
	case k.st != nil:
		return fmt.Sprintf("%s{inject fields}", k.target)
	default:
		return fmt.Sprintf("%s{}", k.target)
	}
}

// build constructs the value from resolved arguments.
func (k candidate) build(args []reflect.Value) (reflect.Value, error) {
	switch {
	case k.fn != nil:
		out, err := k.fn.Call(args)
		if err != nil {
			var pe reflection.PanicError
			if errors.As(err, &pe) {
				return reflect.Value{}, ConstructorPanicError{Constructor: k.fn.Type, Panic: pe.Value, Stack: pe.Stack}
			}
			return reflect.Value{}, err
		}
		return out[0], nil
	case k.st != nil:
		return k.st.Build(args)
	case k.target.Kind() == reflect.Pointer:
		return reflect.New(k.target.Elem()), nil
	default:
		return reflect.New(k.target).Elem(), nil
	}
}

// AddConstructor registers constructor candidates for T. Each constructor
// must be a non-variadic function returning a value assignable to T,
// optionally followed by an error. Candidates are tried in registration
// order after any added earlier.
func AddConstructor[T any](c *Container, constructors ...any) error {
	return c.addConstructors(reflect.TypeFor[T](), constructors)
}

func (c *Container) addConstructors(t reflect.Type, constructors []any) error {
	infos, err := c.analyzeConstructors(t, constructors)
	if err != nil {
		return err
	}

	c.commitConstructors(t, infos)
	return nil
}

// analyzeConstructors checks every constructor without registering any, so a
// rejected batch leaves no trace.
func (c *Container) analyzeConstructors(t reflect.Type, constructors []any) ([]*reflection.FuncInfo, error) {
	if len(constructors) == 0 {
		return nil, nil
	}

	if c.closed.Load() {
		return nil, ErrContainerClosed
	}

	infos := make([]*reflection.FuncInfo, 0, len(constructors))
	for _, fn := range constructors {
		if fn == nil {
			return nil, ValidationError{Type: t, Cause: ErrNilFunction}
		}

		info, err := c.analyzer.AnalyzeConstructor(fn, t)
		if err != nil {
			return nil, ValidationError{Type: t, Cause: err}
		}

		infos = append(infos, info)
	}

	return infos, nil
}

func (c *Container) commitConstructors(t reflect.Type, infos []*reflection.FuncInfo) {
	if len(infos) == 0 {
		return
	}

	c.mu.Lock()
	c.constructors[t] = append(c.constructors[t], infos...)
	c.mu.Unlock()
}

// candidates returns the construction candidates for t: registered
// constructors first, then the implicit one for concrete types.
func (c *Container) candidates(t reflect.Type) ([]candidate, error) {
	return c.candidatesWith(t, nil)
}

// candidatesWith is candidates with pending constructors placed after the
// registered ones.
func (c *Container) candidatesWith(t reflect.Type, pending []*reflection.FuncInfo) ([]candidate, error) {
	c.mu.RLock()
	fns := append([]*reflection.FuncInfo(nil), c.constructors[t]...)
	c.mu.RUnlock()
	fns = append(fns, pending...)

	out := make([]candidate, 0, len(fns)+1)
	for _, fn := range fns {
		out = append(out, candidate{target: t, fn: fn})
	}

	if t.Kind() == reflect.Interface {
		if len(out) == 0 {
			return nil, AbstractTypeError{Type: t}
		}
		return out, nil
	}

	if isStruct(t) {
		st, err := c.analyzer.AnalyzeStruct(t)
		if err != nil {
			if len(out) == 0 {
				return nil, ValidationError{Type: t, Cause: err}
			}
			return out, nil
		}
		return append(out, candidate{target: t, st: st}), nil
	}

	return append(out, candidate{target: t}), nil
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// selectCandidate picks the candidate with the most parameters, up to the
// maximum arity, whose parameters are all satisfiable. Ties go to the
// earliest candidate.
func (c *Container) selectCandidate(t reflect.Type, cands []candidate) (candidate, error) {
	best := -1
	bestArity := -1
	var failures []CandidateFailure

	for i, k := range cands {
		params := k.params()

		if len(params) > c.maxArity {
			failures = append(failures, CandidateFailure{
				Constructor: k.String(),
				Arity:       len(params),
				TooMany:     true,
			})
			continue
		}

		var missing []reflect.Type
		for _, p := range params {
			if p != injectorType && !c.installed(p) {
				missing = append(missing, p)
			}
		}

		if len(missing) > 0 {
			failures = append(failures, CandidateFailure{
				Constructor: k.String(),
				Arity:       len(params),
				Missing:     missing,
			})
			continue
		}

		if len(params) > bestArity {
			best, bestArity = i, len(params)
		}
	}

	if best < 0 {
		return candidate{}, NoSuitableConstructorError{Type: t, MaxArity: c.maxArity, Candidates: failures}
	}

	return cands[best], nil
}

// checkConstructible reports whether t, with the pending constructors added,
// has a candidate within the maximum arity. Dependencies are not checked,
// since they may be installed later.
func (c *Container) checkConstructible(t reflect.Type, pending []*reflection.FuncInfo) error {
	cands, err := c.candidatesWith(t, pending)
	if err != nil {
		return err
	}

	var failures []CandidateFailure
	for _, k := range cands {
		n := len(k.params())
		if n <= c.maxArity {
			return nil
		}
		failures = append(failures, CandidateFailure{Constructor: k.String(), Arity: n, TooMany: true})
	}

	return NoSuitableConstructorError{Type: t, MaxArity: c.maxArity, Candidates: failures}
}

// Resolve constructs a new T by auto-wiring, without reading or writing any
// cached singleton for T. Each constructor argument is obtained with Get.
func Resolve[T any](c *Container) (T, error) {
	var zero T

	t := reflect.TypeFor[T]()
	v, err := c.ResolveType(t)
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

// ResolveType constructs a new value of t by auto-wiring.
func (c *Container) ResolveType(t reflect.Type) (any, error) {
	if t == nil {
		return nil, ValidationError{Cause: fmt.Errorf("type cannot be nil")}
	}

	if c.closed.Load() {
		return nil, ErrContainerClosed
	}

	v, err := c.construct(t)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// construct selects a candidate for t and builds it, resolving each
// parameter in declaration order.
func (c *Container) construct(t reflect.Type) (reflect.Value, error) {
	cands, err := c.candidates(t)
	if err != nil {
		return reflect.Value{}, err
	}

	k, err := c.selectCandidate(t, cands)
	if err != nil {
		return reflect.Value{}, err
	}

	inj := Injector{c: c}
	params := k.params()
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		arg, err := inj.value(p)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = arg
	}

	v, err := k.build(args)
	if err != nil {
		return reflect.Value{}, err
	}

	if isNilValue(v) {
		var actual reflect.Type
		if v.IsValid() {
			actual = v.Type()
		}
		return reflect.Value{}, TypeMismatchError{Expected: t, Actual: actual, Context: "nil constructor result"}
	}

	// Constructors may return a concrete type assignable to t.
	if v.Type() != t {
		converted := reflect.New(t).Elem()
		converted.Set(v)
		v = converted
	}

	return v, nil
}
