package flatmap

import (
	"context"
	"reflect"
	"strconv"
	"strings"
)

// AggregateSeparator joins item strings under Aggregate encoding.
const AggregateSeparator = ","

// Collection maps a slice through one item mapping, using either Separate
// (index-suffixed key namespaces) or Aggregate (one comma-joined key)
// encoding.
type Collection[E any] struct {
	nodeBase
	item     Mapping[E]
	encoding KeyEncoding
	minIndex int
	maxIndex int
}

var _ Mapping[[]int] = (*Collection[int])(nil)

// NewCollection builds a Separate-encoded collection scanning indices
// DefaultMinIndex..DefaultMaxIndex on deserialization.
func NewCollection[E any](item Mapping[E], opts ...Option) *Collection[E] {
	c := &Collection[E]{encoding: Separate, minIndex: DefaultMinIndex, maxIndex: DefaultMaxIndex}
	c.init(c, opts)
	if !isNilRef(item) {
		c.item = item
		attach(c, item, "", false)
	}
	return c
}

// Separate selects index-suffixed key namespaces.
func (c *Collection[E]) Separate() *Collection[E] { c.encoding = Separate; return c }

// Aggregate selects a single comma-joined key. The item mapping must be a
// simple mapping, directly or through one class map-as hop.
func (c *Collection[E]) Aggregate() *Collection[E] { c.encoding = Aggregate; return c }

// Window sets the inclusive index range scanned by Separate deserialization.
// Items stored past max are not read back.
func (c *Collection[E]) Window(min, max int) *Collection[E] {
	c.minIndex = min
	c.maxIndex = max
	return c
}

// Encoding returns the configured key encoding.
func (c *Collection[E]) Encoding() KeyEncoding { return c.encoding }

// Bounds returns the scan window.
func (c *Collection[E]) Bounds() (min, max int) { return c.minIndex, c.maxIndex }

// Item returns the item mapping.
func (c *Collection[E]) Item() Mapping[E] { return c.item }

func (c *Collection[E]) Kind() Kind { return KindCollection }

func (c *Collection[E]) ConsumesIndex() bool { return c.encoding == Separate }

func (c *Collection[E]) Children() []Node {
	if c.item == nil {
		return nil
	}
	return []Node{c.item}
}

func (c *Collection[E]) Validate() error {
	var iss Issues
	if err := c.validateBase(); err != nil {
		iss, _ = AsIssues(err)
	}
	if c.item == nil {
		iss = AppendIssues(iss, invalidMapping(c, "collection mapping needs an item mapping")...)
	}
	if c.minIndex < 0 || c.minIndex > c.maxIndex {
		iss = AppendIssues(iss, issueAt(describe(c), CodeInvalidMapping, "collection index window is empty or negative",
			map[string]any{"min": c.minIndex, "max": c.maxIndex})...)
	}
	switch c.encoding {
	case Separate:
	case Aggregate:
		if c.item != nil && aggregateTarget(c.item).Kind() != KindSimple {
			iss = AppendIssues(iss, invalidMapping(c, "aggregate encoding needs a simple item mapping")...)
		}
	default:
		iss = AppendIssues(iss, invalidMapping(c, "unknown key encoding "+strconv.Itoa(int(c.encoding)))...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// aggregateTarget resolves one class map-as hop.
func aggregateTarget(n Node) Node {
	if n.Kind() != KindClass {
		return n
	}
	if c, ok := n.(interface{ mapAsNode() Node }); ok {
		if inner := c.mapAsNode(); inner != nil {
			return inner
		}
	}
	return n
}

func (c *Collection[E]) serialize(ctx context.Context, v []E, indices []int) (Values, status, error) {
	if err := c.Validate(); err != nil {
		return nil, statusAbsent, err
	}
	if c.encoding == Aggregate {
		return c.serializeAggregate(ctx, v, indices)
	}
	out := Values{}
	for i := range v {
		vals, st, err := c.item.serialize(ctx, v[i], withIndex(indices, i))
		if err != nil {
			return nil, statusAbsent, err
		}
		switch st {
		case statusMandatory:
			debugf(ctx, c, describe(c), "mandatory item vetoed the collection", nil)
			return nil, c.fail(), nil
		case statusOK:
			out.Merge(vals)
		}
	}
	if len(out) == 0 {
		return nil, c.fail(), nil
	}
	c.writeFlag(out)
	return out, statusOK, nil
}

func (c *Collection[E]) serializeAggregate(ctx context.Context, v []E, indices []int) (Values, status, error) {
	key, err := keyOf(c, indices)
	if err != nil {
		return nil, statusAbsent, err
	}
	itemKey, err := keyOf(c.item, indices)
	if err != nil {
		return nil, statusAbsent, err
	}
	parts := make([]string, 0, len(v))
	for i := range v {
		vals, st, err := c.item.serialize(ctx, v[i], indices)
		if err != nil {
			return nil, statusAbsent, err
		}
		switch st {
		case statusMandatory:
			debugf(ctx, c, key, "mandatory item vetoed the collection", nil)
			return nil, c.fail(), nil
		case statusOK:
			if s, ok := vals[itemKey]; ok {
				parts = append(parts, s)
			}
		}
	}
	if len(parts) == 0 {
		return nil, c.fail(), nil
	}
	out := Values{key: strings.Join(parts, AggregateSeparator)}
	c.writeFlag(out)
	return out, statusOK, nil
}

func (c *Collection[E]) deserialize(ctx context.Context, data Values, indices []int) ([]E, status, error) {
	if err := c.Validate(); err != nil {
		return nil, statusAbsent, err
	}
	if !c.satisfiesFlag(data) {
		return nil, c.fail(), nil
	}
	if c.encoding == Aggregate {
		return c.deserializeAggregate(ctx, data, indices)
	}
	zero, err := keyOf(c, withIndex(indices, 0))
	if err != nil {
		return nil, statusAbsent, err
	}
	buckets := c.bucket(data, zero)
	scoped := c.scoped()
	var items []E
	for i := c.minIndex; i <= c.maxIndex; i++ {
		sub, ok := buckets[i]
		if !ok {
			// gap: nothing stored for this index
			continue
		}
		if !scoped {
			sub = data
		}
		e, st, err := c.item.deserialize(ctx, sub, withIndex(indices, i))
		if err != nil {
			return nil, statusAbsent, err
		}
		switch st {
		case statusMandatory:
			debugf(ctx, c, describe(c), "mandatory item vetoed the collection", nil)
			return nil, c.fail(), nil
		case statusOK:
			items = append(items, e)
		}
	}
	if len(items) == 0 {
		return nil, c.fail(), nil
	}
	return items, statusOK, nil
}

func (c *Collection[E]) deserializeAggregate(ctx context.Context, data Values, indices []int) ([]E, status, error) {
	key, err := keyOf(c, indices)
	if err != nil {
		return nil, statusAbsent, err
	}
	raw, ok := data[key]
	if !ok {
		return nil, c.fail(), nil
	}
	itemKey, err := keyOf(c.item, indices)
	if err != nil {
		return nil, statusAbsent, err
	}
	fragments := strings.Split(raw, AggregateSeparator)
	items := make([]E, 0, len(fragments))
	for _, frag := range fragments {
		e, st, err := c.item.deserialize(ctx, Values{itemKey: frag}, indices)
		if err != nil {
			return nil, statusAbsent, err
		}
		switch st {
		case statusMandatory:
			debugf(ctx, c, key, "mandatory item vetoed the collection", nil)
			return nil, c.fail(), nil
		case statusOK:
			items = append(items, e)
		}
	}
	if len(items) == 0 {
		return nil, c.fail(), nil
	}
	return items, statusOK, nil
}

// bucket splits data by item index in one pass over its keys. Keys of
// indices outside the window are dropped.
func (c *Collection[E]) bucket(data Values, zero string) map[int]Values {
	p := c.Naming()
	out := map[int]Values{}
	for k, s := range data {
		i, ok := p.ItemIndex(k, zero)
		if !ok || i < c.minIndex || i > c.maxIndex {
			continue
		}
		b := out[i]
		if b == nil {
			b = Values{}
			out[i] = b
		}
		b[k] = s
	}
	return out
}

// scoped reports whether every key the item subtree reads lies inside the
// item's namespace, so an item can be fed its bucket alone. Flags name
// arbitrary keys and foreign naming policies render foreign layouts.
func (c *Collection[E]) scoped() bool {
	own := reflect.TypeOf(c.Naming())
	ok := true
	_ = Walk(c.item, func(n Node) error {
		if key, _, _ := n.Flag(); key != "" || reflect.TypeOf(n.Naming()) != own {
			ok = false
			return ErrSkipChildren
		}
		return nil
	})
	return ok
}

// withIndex returns a copy of indices with i appended; the caller's slice is
// never shared with a deeper level.
func withIndex(indices []int, i int) []int {
	out := make([]int, len(indices)+1)
	copy(out, indices)
	out[len(indices)] = i
	return out
}
