package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// InjectTag is the struct tag that marks a field for injection.
const InjectTag = "inject"

var ErrNotStruct = errors.New("type is not a struct or pointer to struct")

// StructInfo describes a struct type built by field injection.
type StructInfo struct {
	Type    reflect.Type // the requested type, T or *T
	Pointer bool         // the requested type is *T
	Fields  []ParameterInfo
}

// AnalyzeStruct analyzes t, which must be a struct or a pointer to a struct.
// Exported fields tagged `inject:""` become parameters in field order.
// Fields tagged `inject:"-"` are skipped.
func (a *Analyzer) AnalyzeStruct(t reflect.Type) (*StructInfo, error) {
	if t == nil {
		return nil, ErrNotStruct
	}

	if cached, ok := a.structs.Load(t); ok {
		return cached.(*StructInfo), nil
	}

	info := &StructInfo{Type: t}
	st := t
	if st.Kind() == reflect.Pointer {
		info.Pointer = true
		st = st.Elem()
	}

	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)

		tag, ok := field.Tag.Lookup(InjectTag)
		if !ok {
			continue
		}

		if strings.TrimSpace(tag) == "-" {
			continue
		}

		if !field.IsExported() {
			return nil, fmt.Errorf("field %s.%s is tagged %q but is not exported", st, field.Name, InjectTag)
		}

		info.Fields = append(info.Fields, ParameterInfo{
			Type:  field.Type,
			Index: i,
			Name:  field.Name,
		})
	}

	actual, _ := a.structs.LoadOrStore(t, info)
	return actual.(*StructInfo), nil
}

// Arity returns the number of injected fields.
func (s *StructInfo) Arity() int {
	return len(s.Fields)
}

// ParameterTypes returns the injected field types in field order.
func (s *StructInfo) ParameterTypes() []reflect.Type {
	types := make([]reflect.Type, len(s.Fields))
	for i, f := range s.Fields {
		types[i] = f.Type
	}
	return types
}

// Build creates a new instance with the given field values. values must
// match Fields in order.
func (s *StructInfo) Build(values []reflect.Value) (reflect.Value, error) {
	if len(values) != len(s.Fields) {
		return reflect.Value{}, fmt.Errorf("expected %d field values for %s, got %d", len(s.Fields), s.Type, len(values))
	}

	st := s.Type
	if s.Pointer {
		st = st.Elem()
	}

	ptr := reflect.New(st)
	elem := ptr.Elem()

	for i, f := range s.Fields {
		v := values[i]
		if !v.IsValid() {
			continue
		}

		if !v.Type().AssignableTo(f.Type) {
			return reflect.Value{}, fmt.Errorf("cannot assign %s to field %s of type %s", v.Type(), f.Name, f.Type)
		}

		elem.Field(f.Index).Set(v)
	}

	if s.Pointer {
		return ptr, nil
	}

	return elem, nil
}
