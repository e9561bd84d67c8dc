package flatmap

import (
	"context"
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's flat key name.
// Priority: flatmap:"name=..." > form tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("flatmap"); gt != "" {
		if gt == "-" {
			return "-"
		}
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if ft := sf.Tag.Get("form"); ft != "" {
		if ft == "-" {
			return "-"
		}
		if i := strings.IndexByte(ft, ','); i >= 0 {
			return ft[:i]
		}
		return ft
	}
	return sf.Name
}

// isNilRef reports whether v is nil or a nil pointer, interface, map, func or
// channel. Nil slices are values, not absences.
func isNilRef(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// defaultFactory builds a fresh T: the zero value for value types, a new
// element for pointers and an empty map for maps. Types without a usable
// zero value need a custom factory.
func defaultFactory[T any](n Node) func(context.Context) (T, error) {
	return func(context.Context) (T, error) {
		var zero T
		rt := reflect.TypeFor[T]()
		switch rt.Kind() {
		case reflect.Pointer:
			return reflect.New(rt.Elem()).Convert(rt).Interface().(T), nil
		case reflect.Map:
			return reflect.MakeMap(rt).Interface().(T), nil
		case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return zero, issueAt(describe(n), CodeInvalidOperation,
				"type "+rt.String()+" cannot be constructed without a custom factory", nil)
		}
		return zero, nil
	}
}
