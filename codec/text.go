package codec

import (
	"context"
	"strings"

	"github.com/reoring/flatmap"
)

// String returns the identity converter for strings.
func String() flatmap.Converter[string] { return StringAs[string]() }

// StringAs converts domain string types (type Color string) by plain
// conversion.
func StringAs[T ~string]() flatmap.Converter[T] { return stringCodec[T]{} }

type stringCodec[T ~string] struct{}

func (stringCodec[T]) Encode(_ context.Context, v T) (string, error) { return string(v), nil }
func (stringCodec[T]) Decode(_ context.Context, s string) (T, error) { return T(s), nil }

// NonEmpty wraps a string converter so that empty or blank values count as
// absent in both directions, the usual reading of an untouched form field.
func NonEmpty[T ~string](inner flatmap.Converter[T]) flatmap.Converter[T] {
	return nonEmptyCodec[T]{inner: inner}
}

type nonEmptyCodec[T ~string] struct{ inner flatmap.Converter[T] }

func (c nonEmptyCodec[T]) Encode(ctx context.Context, v T) (string, error) {
	if strings.TrimSpace(string(v)) == "" {
		return "", flatmap.ErrNoValue
	}
	return c.inner.Encode(ctx, v)
}

func (c nonEmptyCodec[T]) Decode(ctx context.Context, s string) (T, error) {
	if strings.TrimSpace(s) == "" {
		var zero T
		return zero, formatError("empty value", nil)
	}
	return c.inner.Decode(ctx, s)
}
