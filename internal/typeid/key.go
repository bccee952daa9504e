package typeid

import (
	"cmp"
	"fmt"
	"reflect"
)

// Key identifies a type inside a registry. Keys are comparable and can be
// used as map keys. A key is either a runtime key, backed by the reflect.Type
// itself, or a hashed key, backed by a fixed-width hash of the type's signature.
type Key struct {
	typ  reflect.Type
	sum  uint64
	bits uint8
}

// RuntimeKey returns the runtime key for t.
func RuntimeKey(t reflect.Type) Key {
	return Key{typ: t}
}

// HashedKey returns a hashed key of the given width.
func HashedKey(sum uint64, bits uint8) Key {
	return Key{sum: sum, bits: bits}
}

// Sum returns the hash value of a hashed key. ok is false for runtime keys.
func (k Key) Sum() (sum uint64, ok bool) {
	return k.sum, k.bits != 0
}

// Bits returns the hash width of a hashed key, or 0 for runtime keys.
func (k Key) Bits() int {
	return int(k.bits)
}

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Compare orders keys. Runtime keys sort before hashed keys; runtime keys are
// ordered by signature and hashed keys by width, then value.
func (k Key) Compare(o Key) int {
	if k == o {
		return 0
	}

	switch {
	case k.bits == 0 && o.bits != 0:
		return -1
	case k.bits != 0 && o.bits == 0:
		return 1
	case k.bits != 0:
		if c := cmp.Compare(k.bits, o.bits); c != 0 {
			return c
		}
		return cmp.Compare(k.sum, o.sum)
	}

	if c := cmp.Compare(Signature(k.typ), Signature(o.typ)); c != 0 {
		return c
	}

	// Distinct types sharing a signature: fall back to the type descriptor address.
	return cmp.Compare(typePointer(k.typ), typePointer(o.typ))
}

func (k Key) String() string {
	switch {
	case k.IsZero():
		return "<zero>"
	case k.bits == 0:
		return Signature(k.typ)
	case k.bits <= 32:
		return fmt.Sprintf("0x%08x", k.sum)
	default:
		return fmt.Sprintf("0x%016x", k.sum)
	}
}

func typePointer(t reflect.Type) uintptr {
	if t == nil {
		return 0
	}
	return reflect.ValueOf(t).Pointer()
}
