package dsl

import (
	"reflect"

	"github.com/reoring/flatmap"
)

// Prop binds child to the top-level field of struct T returned by selector:
//
//	dsl.Prop(func(o *Order) *string { return &o.Status }, dsl.Text())
//
// The property name is resolved with flatmap.ResolveStructKey. Prop panics
// when selector is nil, T is not a struct, or the selected field is not a
// top-level exported field of T.
func Prop[T, V any](selector func(*T) *V, child flatmap.Mapping[V]) flatmap.Member[T] {
	name := FieldName(selector)
	return flatmap.Bind(flatmap.Property[T, V]{
		Name: name,
		Get:  func(t T) V { return *selector(&t) },
		Set:  func(t *T, v V) { *selector(t) = v },
	}, child)
}

// PropAs is Prop with an explicit property name, for fields whose flat key
// does not follow the tags.
func PropAs[T, V any](name string, selector func(*T) *V, child flatmap.Mapping[V]) flatmap.Member[T] {
	if selector == nil {
		panic("dsl.PropAs: selector must not be nil")
	}
	return flatmap.Bind(flatmap.Property[T, V]{
		Name: name,
		Get:  func(t T) V { return *selector(&t) },
		Set:  func(t *T, v V) { *selector(t) = v },
	}, child)
}

// FieldName returns the flat key name of the top-level field of T selected
// by selector. It panics on the same conditions as Prop.
func FieldName[T, V any](selector func(*T) *V) string {
	if selector == nil {
		panic("dsl.FieldName: selector must not be nil")
	}
	var zero T
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	if rt.Kind() != reflect.Struct {
		panic("dsl.FieldName: " + rt.String() + " is not a struct")
	}
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	want := reflect.TypeFor[V]()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		// a nested first field shares its parent's address; the type tells them apart
		if sf.Type != want {
			continue
		}
		if rv.Field(i).Addr().Pointer() != fp {
			continue
		}
		name := flatmap.ResolveStructKey(sf)
		if !sf.IsExported() || name == "" || name == "-" {
			panic("dsl.FieldName: field " + sf.Name + " is not exported or disabled")
		}
		return name
	}
	panic("dsl.FieldName: selector must return the address of a top-level field of " + rt.String())
}
