package flatmap

import (
	"context"
	"errors"
)

// ErrNoValue may be returned by an encode function to report that the value
// has no flat representation (the null case). The node then contributes
// nothing, exactly as for any other conversion failure.
var ErrNoValue = errors.New("flatmap: no value")

// Simple maps one scalar value to one key through a pair of conversion
// functions.
type Simple[T any] struct {
	nodeBase
	encode func(context.Context, T) (string, error)
	decode func(context.Context, string) (T, error)
}

var _ Mapping[int] = (*Simple[int])(nil)

// NewSimple builds a leaf mapping from a Converter.
func NewSimple[T any](conv Converter[T], opts ...Option) *Simple[T] {
	s := &Simple[T]{}
	if !isNilRef(conv) {
		s.encode = conv.Encode
		s.decode = conv.Decode
	}
	s.init(s, opts)
	return s
}

// NewSimpleFunc builds a leaf mapping from explicit functions; either may be
// nil for a one-directional mapping, but not both.
func NewSimpleFunc[T any](encode func(context.Context, T) (string, error), decode func(context.Context, string) (T, error), opts ...Option) *Simple[T] {
	s := &Simple[T]{encode: encode, decode: decode}
	s.init(s, opts)
	return s
}

func (s *Simple[T]) Kind() Kind       { return KindSimple }
func (s *Simple[T]) Children() []Node { return nil }

func (s *Simple[T]) Validate() error {
	var iss Issues
	if err := s.validateBase(); err != nil {
		iss, _ = AsIssues(err)
	}
	if s.encode == nil && s.decode == nil {
		iss = AppendIssues(iss, invalidMapping(s, "simple mapping needs an encode or a decode function")...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// KeyName returns the literal key this leaf reads and writes.
func (s *Simple[T]) KeyName(indices ...int) (string, error) { return keyOf(s, indices) }

func (s *Simple[T]) serialize(ctx context.Context, v T, indices []int) (Values, status, error) {
	if err := s.Validate(); err != nil {
		return nil, statusAbsent, err
	}
	key, err := keyOf(s, indices)
	if err != nil {
		return nil, statusAbsent, err
	}
	if s.encode == nil {
		debugf(ctx, s, key, "no encode function", nil)
		return nil, s.fail(), nil
	}
	if isNilRef(v) {
		debugf(ctx, s, key, "nil value", nil)
		return nil, s.fail(), nil
	}
	str, err := s.encode(ctx, v)
	if err != nil {
		debugf(ctx, s, key, "encode failed", err)
		return nil, s.fail(), nil
	}
	out := Values{key: str}
	s.writeFlag(out)
	return out, statusOK, nil
}

func (s *Simple[T]) deserialize(ctx context.Context, data Values, indices []int) (T, status, error) {
	var zero T
	if err := s.Validate(); err != nil {
		return zero, statusAbsent, err
	}
	if !s.satisfiesFlag(data) {
		return zero, s.fail(), nil
	}
	key, err := keyOf(s, indices)
	if err != nil {
		return zero, statusAbsent, err
	}
	raw, ok := data[key]
	if !ok {
		return zero, s.fail(), nil
	}
	if s.decode == nil {
		debugf(ctx, s, key, "no decode function", nil)
		return zero, s.fail(), nil
	}
	v, err := s.decode(ctx, raw)
	if err != nil {
		debugf(ctx, s, key, "decode failed", err)
		return zero, s.fail(), nil
	}
	return v, statusOK, nil
}
