package codec

import (
	"context"
	"strconv"
	"strings"
	"unsafe"

	"github.com/reoring/flatmap"
)

// Signed is the set of signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the set of floating-point types.
type Floating interface {
	~float32 | ~float64
}

// Int converts signed integers in base 10. Decoding trims surrounding
// whitespace and rejects values outside T's range.
func Int[T Signed]() flatmap.Converter[T] { return intCodec[T]{} }

type intCodec[T Signed] struct{}

func (intCodec[T]) Encode(_ context.Context, v T) (string, error) {
	return strconv.FormatInt(int64(v), 10), nil
}

func (intCodec[T]) Decode(_ context.Context, s string) (T, error) {
	var zero T
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, bitSize[T]())
	if err != nil {
		return zero, parseError("expected integer", err)
	}
	return T(n), nil
}

// Uint converts unsigned integers in base 10.
func Uint[T Unsigned]() flatmap.Converter[T] { return uintCodec[T]{} }

type uintCodec[T Unsigned] struct{}

func (uintCodec[T]) Encode(_ context.Context, v T) (string, error) {
	return strconv.FormatUint(uint64(v), 10), nil
}

func (uintCodec[T]) Decode(_ context.Context, s string) (T, error) {
	var zero T
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, bitSize[T]())
	if err != nil {
		return zero, parseError("expected unsigned integer", err)
	}
	return T(n), nil
}

// Float converts floating-point numbers using the shortest representation
// that round-trips.
func Float[T Floating]() flatmap.Converter[T] { return floatCodec[T]{} }

type floatCodec[T Floating] struct{}

func (floatCodec[T]) Encode(_ context.Context, v T) (string, error) {
	return strconv.FormatFloat(float64(v), 'g', -1, bitSize[T]()), nil
}

func (floatCodec[T]) Decode(_ context.Context, s string) (T, error) {
	var zero T
	f, err := strconv.ParseFloat(strings.TrimSpace(s), bitSize[T]())
	if err != nil {
		return zero, parseError("expected number", err)
	}
	return T(f), nil
}

// bitSize reports the storage size of T in bits.
func bitSize[T Signed | Unsigned | Floating]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}
