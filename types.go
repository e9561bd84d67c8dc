package flatmap

import "context"

// Kind identifies the variety of a mapping node.
type Kind uint8

const (
	KindSimple     Kind = iota + 1 // Leaf: one scalar under one key.
	KindClass                      // Complex object: map-as delegate or per-property members.
	KindCollection                 // Slice of items, separate or aggregate key encoding.
	KindComposite                  // One value spread over several component keys.
	KindComponent                  // One component of a composite.
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindClass:
		return "class"
	case KindCollection:
		return "collection"
	case KindComposite:
		return "composite"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// KeyEncoding controls how a collection lays its items out in the flat map.
type KeyEncoding int

const (
	// Separate writes every item under its own index-suffixed key namespace
	// (Items[0].Name, Items[1].Name, ...).
	Separate KeyEncoding = iota
	// Aggregate writes all items into one key as a comma-joined string.
	Aggregate
)

// PartialPolicy decides what a composite does when only some of its
// components are present in the input.
type PartialPolicy int

const (
	PartialAllow  PartialPolicy = iota // Pass the partial component map to the decode function.
	PartialReject                      // Fail unless every component is present.
)

// Default scan window for separately encoded collections.
const (
	DefaultMinIndex = 0
	DefaultMaxIndex = 49
)

// Converter converts between a scalar domain value and its flat string form.
// The codec package provides implementations for common types.
type Converter[T any] interface {
	Encode(ctx context.Context, v T) (string, error)
	Decode(ctx context.Context, s string) (T, error)
}

// status is the per-node outcome of one serialize or deserialize attempt.
// Mandatory failures travel as a value so every parent decides whether to
// veto (turn it into its own ordinary failure) or re-raise it.
type status uint8

const (
	statusAbsent status = iota // The node contributed nothing.
	statusOK
	statusMandatory // A mandatory node failed; the nearest parent vetoes.
)

func (s status) String() string {
	switch s {
	case statusOK:
		return "ok"
	case statusMandatory:
		return "mandatory_failure"
	default:
		return "absent"
	}
}
