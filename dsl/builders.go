package dsl

import (
	"time"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/codec"
)

// Struct builds a class mapping over the given members.
func Struct[T any](members ...flatmap.Member[T]) *flatmap.Class[T] {
	return flatmap.NewClass[T]().Add(members...)
}

// Alias builds a class mapping that delegates T wholesale to inner.
func Alias[T any](inner flatmap.Mapping[T], opts ...flatmap.Option) *flatmap.Class[T] {
	return flatmap.NewClass[T](opts...).MapAs(inner)
}

// Scalar builds a simple mapping from any converter.
func Scalar[T any](conv flatmap.Converter[T], opts ...flatmap.Option) *flatmap.Simple[T] {
	return flatmap.NewSimple(conv, opts...)
}

// Text maps strings as they are.
func Text(opts ...flatmap.Option) *flatmap.Simple[string] {
	return flatmap.NewSimple(codec.String(), opts...)
}

// Int maps signed integers in base 10.
func Int[T codec.Signed](opts ...flatmap.Option) *flatmap.Simple[T] {
	return flatmap.NewSimple(codec.Int[T](), opts...)
}

// Uint maps unsigned integers in base 10.
func Uint[T codec.Unsigned](opts ...flatmap.Option) *flatmap.Simple[T] {
	return flatmap.NewSimple(codec.Uint[T](), opts...)
}

// Float maps floating-point numbers.
func Float[T codec.Floating](opts ...flatmap.Option) *flatmap.Simple[T] {
	return flatmap.NewSimple(codec.Float[T](), opts...)
}

// Bool maps booleans as "True" and "False".
func Bool(opts ...flatmap.Option) *flatmap.Simple[bool] {
	return flatmap.NewSimple(codec.Bool(), opts...)
}

// Time maps RFC 3339 timestamps.
func Time(opts ...flatmap.Option) *flatmap.Simple[time.Time] {
	return flatmap.NewSimple(codec.TimeRFC3339(), opts...)
}

// Slice builds a separately encoded collection (Items[0], Items[1], ...).
func Slice[E any](item flatmap.Mapping[E], opts ...flatmap.Option) *flatmap.Collection[E] {
	return flatmap.NewCollection(item, opts...)
}

// Tags builds an aggregate collection stored as one comma-joined value.
func Tags[E any](item flatmap.Mapping[E], opts ...flatmap.Option) *flatmap.Collection[E] {
	return flatmap.NewCollection(item, opts...).Aggregate()
}

// Build validates every node of the tree rooted at n.
func Build[N flatmap.Node](n N) (N, error) {
	if err := flatmap.ValidateTree(n); err != nil {
		var zero N
		return zero, err
	}
	return n, nil
}

// MustBuild is like Build but panics on error.
func MustBuild[N flatmap.Node](n N) N {
	out, err := Build(n)
	if err != nil {
		panic(err)
	}
	return out
}
