package flatmap

import (
	"context"
	"errors"
	"log/slog"
)

// Mapping is a node that converts T to and from flat Values. Every node
// kind of this package implements it; build trees with the New* constructors
// or the dsl package and drive them with Serialize and Deserialize.
type Mapping[T any] interface {
	Node
	serialize(ctx context.Context, v T, indices []int) (Values, status, error)
	deserialize(ctx context.Context, data Values, indices []int) (T, status, error)
}

// Serialize flattens v through the mapping rooted at m. indices pre-seed the
// collection index cursor when m sits below separately encoded collections.
//
// It returns (values, true, nil) on success and (nil, false, nil) when the
// mapping produced nothing. A non-nil error reports a broken tree, misuse, or
// a mandatory failure that no parent vetoed.
func Serialize[T any](ctx context.Context, m Mapping[T], v T, indices ...int) (Values, bool, error) {
	if isNilRef(m) {
		return nil, false, issueAt("", CodeMissingArgument, "mapping is nil", nil)
	}
	out, st, err := m.serialize(ctx, v, cloneIndices(indices))
	if err != nil {
		return nil, false, err
	}
	switch st {
	case statusOK:
		return out, true, nil
	case statusMandatory:
		return nil, false, mandatoryFailure(m)
	default:
		return nil, false, nil
	}
}

// Deserialize rebuilds a T from data through the mapping rooted at m.
// Results follow Serialize: (v, true, nil), (zero, false, nil) or an error.
func Deserialize[T any](ctx context.Context, m Mapping[T], data Values, indices ...int) (T, bool, error) {
	var zero T
	if isNilRef(m) {
		return zero, false, issueAt("", CodeMissingArgument, "mapping is nil", nil)
	}
	if data == nil {
		data = Values{}
	}
	v, st, err := m.deserialize(ctx, data, cloneIndices(indices))
	if err != nil {
		return zero, false, err
	}
	switch st {
	case statusOK:
		return v, true, nil
	case statusMandatory:
		return zero, false, mandatoryFailure(m)
	default:
		return zero, false, nil
	}
}

// KeyName returns the literal key of an endpoint node (simple, composite or
// component). Other node kinds only own a key prefix and report
// CodeNotSupported.
func KeyName(n Node, indices ...int) (string, error) {
	if isNilRef(n) {
		return "", issueAt("", CodeMissingArgument, "node is nil", nil)
	}
	switch n.Kind() {
	case KindSimple, KindComposite:
		return keyOf(n, indices)
	case KindComponent:
		if kn, ok := n.(interface {
			KeyName(...int) (string, error)
		}); ok {
			return kn.KeyName(indices...)
		}
	}
	return "", issueAt(describe(n), CodeNotSupported, n.Kind().String()+" mappings do not own a literal key", nil)
}

// ErrSkipChildren can be returned by a Walk callback to skip a node's subtree.
var ErrSkipChildren = errors.New("flatmap: skip children")

// Walk visits n and its descendants depth-first in configuration order.
func Walk(n Node, fn func(Node) error) error {
	if isNilRef(n) {
		return nil
	}
	if err := fn(n); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.Children() {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTree validates every node of the tree and reports all issues at
// once. Serialize and Deserialize only validate the nodes they reach.
func ValidateTree(n Node) error {
	if isNilRef(n) {
		return issueAt("", CodeMissingArgument, "node is nil", nil)
	}
	var iss Issues
	_ = Walk(n, func(x Node) error {
		if err := x.Validate(); err != nil {
			if more, ok := AsIssues(err); ok {
				iss = AppendIssues(iss, more...)
			} else {
				iss = AppendIssues(iss, Issue{Key: describe(x), Code: CodeInvalidMapping, Message: err.Error(), Cause: err})
			}
		}
		return nil
	})
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Keys lists the literal keys of every endpoint reachable from n, in
// configuration order, using indices for separately encoded collection
// levels (every such level on a path consumes the next index).
func Keys(n Node, indices ...int) ([]string, error) {
	var out []string
	err := Walk(n, func(x Node) error {
		switch x.Kind() {
		case KindSimple:
			k, err := KeyName(x, indices...)
			if err != nil {
				return err
			}
			out = append(out, k)
		case KindComposite:
			// components carry the literal keys
		case KindComponent:
			k, err := KeyName(x, indices...)
			if err != nil {
				return err
			}
			out = append(out, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mandatoryFailure(n Node) error {
	return issueAt(describe(n), CodeMandatory, "mandatory mapping produced no value", nil)
}

func cloneIndices(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	return append([]int(nil), indices...)
}

// ---- Call-time context options ----

type contextKey int

const (
	_ctxKeyLogger contextKey = iota
)

// WithLogger returns a child context carrying a logger. Conversion failures
// the engine swallows, and vetoes by mandatory members, are reported to it
// at debug level.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, _ctxKeyLogger, l)
}

// LoggerFrom returns the logger attached with WithLogger, if any.
func LoggerFrom(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(_ctxKeyLogger).(*slog.Logger)
	return l, ok && l != nil
}

func debugf(ctx context.Context, n Node, key, msg string, err error) {
	l, ok := LoggerFrom(ctx)
	if !ok {
		return
	}
	attrs := []any{slog.String("node", n.Kind().String()), slog.String("key", key)}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	}
	l.DebugContext(ctx, "flatmap: "+msg, attrs...)
}
