package codec

import (
	"context"
	"sort"
	"strings"

	"github.com/reoring/flatmap"
)

// Enum converts between a closed set of values and their string names.
// Several names may share a value ("y" and "yes"); all of them decode, and
// the value encodes to the lexicographically smallest one.
func Enum[T comparable](names map[string]T) flatmap.Converter[T] {
	c := enumCodec[T]{byName: make(map[string]T, len(names)), byValue: make(map[T]string, len(names))}
	for n, v := range names {
		c.byName[n] = v
	}
	for _, n := range c.names() {
		v := c.byName[n]
		if _, taken := c.byValue[v]; !taken {
			c.byValue[v] = n
		}
	}
	return c
}

type enumCodec[T comparable] struct {
	byName  map[string]T
	byValue map[T]string
}

func (c enumCodec[T]) Encode(_ context.Context, v T) (string, error) {
	n, ok := c.byValue[v]
	if !ok {
		return "", flatmap.ErrNoValue
	}
	return n, nil
}

func (c enumCodec[T]) Decode(_ context.Context, s string) (T, error) {
	if v, ok := c.byName[s]; ok {
		return v, nil
	}
	var zero T
	return zero, formatError("expected one of "+strings.Join(c.names(), ", "), nil)
}

func (c enumCodec[T]) names() []string {
	out := make([]string, 0, len(c.byName))
	for n := range c.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
