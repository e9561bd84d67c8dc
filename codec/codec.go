// Package codec provides ready-made flatmap.Converter implementations for
// common scalar types.
//
// Every converter is stateless and safe for concurrent use. Decode failures
// are reported as flatmap.Issues with CodeParseError or CodeInvalidFormat so
// callers can tell them apart from mapping errors.
package codec

import (
	"context"
	"errors"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/i18n"
)

// ErrOneWay is returned by the missing direction of a Funcs converter.
var ErrOneWay = errors.New("codec: conversion direction not configured")

// Funcs adapts a pair of plain functions into a Converter. Either may be nil
// for a one-directional conversion.
func Funcs[T any](encode func(T) (string, error), decode func(string) (T, error)) flatmap.Converter[T] {
	return funcsCodec[T]{enc: encode, dec: decode}
}

type funcsCodec[T any] struct {
	enc func(T) (string, error)
	dec func(string) (T, error)
}

func (c funcsCodec[T]) Encode(_ context.Context, v T) (string, error) {
	if c.enc == nil {
		return "", ErrOneWay
	}
	return c.enc(v)
}

func (c funcsCodec[T]) Decode(_ context.Context, s string) (T, error) {
	if c.dec == nil {
		var zero T
		return zero, ErrOneWay
	}
	return c.dec(s)
}

func parseError(hint string, cause error) error {
	return flatmap.Issues{{Code: flatmap.CodeParseError, Message: i18n.T(flatmap.CodeParseError, nil), Hint: hint, Cause: cause}}
}

func formatError(hint string, cause error) error {
	return flatmap.Issues{{Code: flatmap.CodeInvalidFormat, Message: i18n.T(flatmap.CodeInvalidFormat, nil), Hint: hint, Cause: cause}}
}
