package injector

import (
	"reflect"

	"github.com/junioryono/injector/internal/typeid"
)

// Key identifies a type in a container's registry. Keys are comparable,
// usable as map keys, and totally ordered by Compare.
type Key = typeid.Key

// Identifier derives registry keys from types.
type Identifier interface {
	// Identify returns the key for t. It must be deterministic.
	Identify(t reflect.Type) Key

	// Name names the strategy in logs.
	Name() string
}

var (
	// RuntimeIdentity keys types by their reflect.Type. Keys are stable for
	// the life of the process and carry no numeric value.
	RuntimeIdentity Identifier = runtimeIdentity{}

	// HashedIdentity keys types by the 32-bit FNV-1a hash of their signature,
	// a package-qualified rendering of the type. Keys agree across processes
	// built from the same sources.
	//
	// Types of the same name declared inside different functions of one
	// package share a signature, so installing the second of them fails
	// with an IdentityCollisionError. Use RuntimeIdentity for such types.
	HashedIdentity Identifier = hashedIdentity{}

	// WideHashedIdentity keys types by the 64-bit xxhash of their signature.
	// Function-local types collide as they do under HashedIdentity.
	WideHashedIdentity Identifier = wideHashedIdentity{}
)

type runtimeIdentity struct{}

func (runtimeIdentity) Identify(t reflect.Type) Key { return typeid.RuntimeKey(t) }
func (runtimeIdentity) Name() string                { return "runtime" }

type hashedIdentity struct{}

func (hashedIdentity) Identify(t reflect.Type) Key {
	return typeid.HashedKey(uint64(typeid.FNV1a32(typeid.Signature(t))), 32)
}
func (hashedIdentity) Name() string { return "fnv1a-32" }

type wideHashedIdentity struct{}

func (wideHashedIdentity) Identify(t reflect.Type) Key {
	return typeid.HashedKey(typeid.Sum64(typeid.Signature(t)), 64)
}
func (wideHashedIdentity) Name() string { return "xxhash-64" }

// IdentityOf returns the key of T under id. A nil id means RuntimeIdentity.
func IdentityOf[T any](id Identifier) Key {
	if id == nil {
		id = RuntimeIdentity
	}
	return id.Identify(reflect.TypeFor[T]())
}

// Signature returns the package-qualified signature hashed by HashedIdentity
// and WideHashedIdentity.
func Signature(t reflect.Type) string {
	return typeid.Signature(t)
}
