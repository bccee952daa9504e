// Package typeid derives stable identities for Go types.
//
// A signature is a deterministic, package-path-qualified rendering of a type.
// Unlike reflect.Type.String, which abbreviates package paths to package names,
// two distinct named types only share a signature when they are declared with
// the same name inside different functions of the same package.
package typeid

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// signatures caches computed signatures per type.
var signatures sync.Map // map[reflect.Type]string

// Signature returns the signature of t. The result is cached.
func Signature(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if cached, ok := signatures.Load(t); ok {
		return cached.(string)
	}

	var b strings.Builder
	writeSignature(&b, t)
	sig := b.String()

	actual, _ := signatures.LoadOrStore(t, sig)
	return actual.(string)
}

func writeSignature(b *strings.Builder, t reflect.Type) {
	if name := t.Name(); name != "" {
		// Instantiated generic types carry fully qualified type arguments in Name.
		if pkg := t.PkgPath(); pkg != "" {
			b.WriteString(pkg)
			b.WriteByte('.')
		}
		b.WriteString(name)
		return
	}

	switch t.Kind() {
	case reflect.Pointer:
		b.WriteByte('*')
		writeSignature(b, t.Elem())
	case reflect.Slice:
		b.WriteString("[]")
		writeSignature(b, t.Elem())
	case reflect.Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len()))
		b.WriteByte(']')
		writeSignature(b, t.Elem())
	case reflect.Map:
		b.WriteString("map[")
		writeSignature(b, t.Key())
		b.WriteByte(']')
		writeSignature(b, t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			b.WriteString("<-chan ")
		case reflect.SendDir:
			b.WriteString("chan<- ")
		default:
			b.WriteString("chan ")
		}
		writeSignature(b, t.Elem())
	case reflect.Func:
		b.WriteString("func(")
		for i := 0; i < t.NumIn(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if t.IsVariadic() && i == t.NumIn()-1 {
				b.WriteString("...")
				writeSignature(b, t.In(i).Elem())
				continue
			}
			writeSignature(b, t.In(i))
		}
		b.WriteByte(')')
		switch t.NumOut() {
		case 0:
		case 1:
			b.WriteByte(' ')
			writeSignature(b, t.Out(0))
		default:
			b.WriteString(" (")
			for i := 0; i < t.NumOut(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				writeSignature(b, t.Out(i))
			}
			b.WriteByte(')')
		}
	case reflect.Struct:
		b.WriteString("struct {")
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteByte(' ')
			if !f.Anonymous {
				if f.PkgPath != "" {
					b.WriteString(f.PkgPath)
					b.WriteByte('.')
				}
				b.WriteString(f.Name)
				b.WriteByte(' ')
			}
			writeSignature(b, f.Type)
			if f.Tag != "" {
				b.WriteByte(' ')
				b.WriteString(strconv.Quote(string(f.Tag)))
			}
		}
		b.WriteString(" }")
	default:
		// Unnamed interfaces and anything left over. Method sets render with
		// package names only, which is as precise as reflect allows here.
		b.WriteString(t.String())
	}
}
