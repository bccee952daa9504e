package injector

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/junioryono/injector/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that are wrapped in typed errors when returned.
// Use errors.Is to test for them.

var (
	// Resolution errors.
	ErrNotRegistered         = errors.New("type not registered")
	ErrNoSuitableConstructor = errors.New("no suitable constructor found")
	ErrAbstractType          = errors.New("abstract type cannot be instantiated")
	ErrIdentityCollision     = errors.New("type identity collision")

	// Lifecycle errors.
	ErrContainerClosed = errors.New("container has been closed")
	ErrNoContainer     = errors.New("no container in context")

	// Argument errors.
	ErrNilInstance = errors.New("instance cannot be nil")
	ErrNilFunction = errors.New("function cannot be nil")
)

var (
	_ error = NotRegisteredError{}
	_ error = NoSuitableConstructorError{}
	_ error = AbstractTypeError{}
	_ error = LifetimeError{}
	_ error = TypeMismatchError{}
	_ error = IdentityCollisionError{}
	_ error = ValidationError{}
	_ error = ConstructorPanicError{}
	_ error = ModuleError{}
	_ error = DisposalError{}
	_ error = CircularDependencyError{}
)

// CircularDependencyError is returned when resolving a type requires itself.
type CircularDependencyError = graph.CircularDependencyError

// IsNotRegistered reports whether err was caused by a missing binding.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsCircularDependency reports whether err contains a CircularDependencyError.
func IsCircularDependency(err error) bool {
	var cycle CircularDependencyError
	return errors.As(err, &cycle)
}

// NotRegisteredError indicates a type was requested that was never installed.
type NotRegisteredError struct {
	Type      reflect.Type
	Available []reflect.Type // installed types, used for suggestions
}

func (e NotRegisteredError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "type not registered: %s", formatType(e.Type))

	if similar := findSimilarTypes(e.Type, e.Available); len(similar) > 0 {
		b.WriteString("\n\nDid you mean one of these?\n")
		for _, t := range similar {
			fmt.Fprintf(&b, "  • %s\n", formatType(t))
		}
	}

	return b.String()
}

func (e NotRegisteredError) Unwrap() error {
	return ErrNotRegistered
}

// CandidateFailure describes why a single constructor candidate was rejected.
type CandidateFailure struct {
	Constructor string
	Arity       int
	Missing     []reflect.Type // parameters that are not installed
	TooMany     bool           // arity exceeds the container's maximum
}

// NoSuitableConstructorError indicates auto-wiring found no constructor whose
// parameters can all be satisfied.
type NoSuitableConstructorError struct {
	Type       reflect.Type
	MaxArity   int
	Candidates []CandidateFailure
}

func (e NoSuitableConstructorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no suitable constructor found for %s", formatType(e.Type))

	if len(e.Candidates) == 0 {
		b.WriteString(": no constructor candidates")
		return b.String()
	}

	b.WriteString("\n\nCandidates:\n")
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, "  • %s", c.Constructor)
		switch {
		case c.TooMany:
			fmt.Fprintf(&b, " (takes %d parameters, maximum is %d)", c.Arity, e.MaxArity)
		case len(c.Missing) > 0:
			missing := make([]string, len(c.Missing))
			for i, t := range c.Missing {
				missing[i] = formatType(t)
			}
			fmt.Fprintf(&b, " (missing %s)", strings.Join(missing, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nInstall the missing dependencies or add a constructor with fewer parameters.")

	return b.String()
}

func (e NoSuitableConstructorError) Unwrap() error {
	return ErrNoSuitableConstructor
}

// AbstractTypeError indicates an interface type was installed for
// auto-wiring without any constructor that produces it.
type AbstractTypeError struct {
	Type reflect.Type
}

func (e AbstractTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot auto-wire %s: interfaces cannot be instantiated directly\n\n", formatType(e.Type))
	b.WriteString("To resolve this:\n")
	fmt.Fprintf(&b, "  • Use InstallAs[%s, Impl] to bind an implementation\n", formatType(e.Type))
	b.WriteString("  • Add a constructor with WithConstructor or AddConstructor\n")
	b.WriteString("  • Use InstallFactory or InstallResolver\n")

	return b.String()
}

func (e AbstractTypeError) Unwrap() error {
	return ErrAbstractType
}

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// TypeMismatchError indicates a type assertion or conversion failed.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "interface implementation", "factory result", etc.
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

// IdentityCollisionError indicates two distinct types produced the same
// identity key under the container's Identifier.
type IdentityCollisionError struct {
	Key      Key
	Existing reflect.Type
	Type     reflect.Type
}

func (e IdentityCollisionError) Error() string {
	return fmt.Sprintf("identity %s of %s collides with installed type %s",
		e.Key, e.Type, e.Existing)
}

func (e IdentityCollisionError) Unwrap() error {
	return ErrIdentityCollision
}

// ValidationError indicates invalid input to an install or invoke call.
type ValidationError struct {
	Type  reflect.Type
	Cause error
}

func (e ValidationError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("%s: %v", formatType(e.Type), e.Cause)
	}
	return e.Cause.Error()
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a constructor panicked during invocation.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	Constructor reflect.Type
	Panic       any
	Stack       []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "constructor %s panicked: %v\n", formatType(e.Constructor), e.Panic)

	b.WriteString("\nTo resolve this:\n")
	b.WriteString("  • Check for nil pointer dereferences in your constructor\n")
	b.WriteString("  • Move panic-prone initialization out of the constructor\n")

	if len(e.Stack) > 0 {
		b.WriteString("\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// Unwrap returns the panic value when it is an error.
func (e ConstructorPanicError) Unwrap() error {
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}

// ModuleError wraps errors from module installation.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// DisposalError aggregates disposal errors
type DisposalError struct {
	Errors []error
}

func (e DisposalError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("container disposal failed: %v", e.Errors[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "container disposal failed with %d errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %v", i+1, err)
	}
	return b.String()
}

func (e DisposalError) Unwrap() []error {
	return e.Errors
}

// findSimilarTypes finds types with similar names using a simple substring match
func findSimilarTypes(target reflect.Type, available []reflect.Type) []reflect.Type {
	if target == nil || len(available) == 0 {
		return nil
	}

	targetName := target.String()
	targetShortName := shortName(target)

	var similar []reflect.Type
	for _, t := range available {
		if t == nil || t == target {
			continue
		}

		typeName := t.String()
		typeShortName := shortName(t)

		// Same short name in another package, or one name contains the other.
		if targetShortName == typeShortName ||
			strings.Contains(strings.ToLower(typeName), strings.ToLower(targetShortName)) ||
			strings.Contains(strings.ToLower(targetName), strings.ToLower(typeShortName)) {
			similar = append(similar, t)
		}

		if len(similar) >= 5 {
			break
		}
	}

	return similar
}

func shortName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
