package flatmap

import (
	"context"
)

// Composite assembles one logical value from several string components, each
// stored under the composite key joined with the component identifier (for
// example a date split into DateDay, DateMonth and DateYear).
type Composite[T any, K ~string] struct {
	nodeBase
	components []*Component[T, K]
	decode     func(context.Context, map[K]string) (T, error)
	partial    PartialPolicy
}

var _ Mapping[int] = (*Composite[int, string])(nil)

// NewComposite builds a composite mapping. decode may be nil for a
// serialize-only composite.
func NewComposite[T any, K ~string](decode func(context.Context, map[K]string) (T, error), opts ...Option) *Composite[T, K] {
	c := &Composite[T, K]{decode: decode}
	c.init(c, opts)
	return c
}

// Component appends a component; insertion order is preserved. encode may
// be nil for a deserialize-only composite.
func (c *Composite[T, K]) Component(id K, encode func(context.Context, T) (string, error)) *Composite[T, K] {
	comp := &Component[T, K]{id: id, encode: encode, owner: c}
	comp.init(comp, nil)
	attach(c, comp, "", false)
	c.components = append(c.components, comp)
	return c
}

// Partial sets the policy for inputs that hold only some components.
func (c *Composite[T, K]) Partial(p PartialPolicy) *Composite[T, K] {
	c.partial = p
	return c
}

// Components returns the components in insertion order.
func (c *Composite[T, K]) Components() []*Component[T, K] {
	return append([]*Component[T, K](nil), c.components...)
}

// Lookup returns the component with the given identifier.
func (c *Composite[T, K]) Lookup(id K) (*Component[T, K], bool) {
	for _, comp := range c.components {
		if comp.id == id {
			return comp, true
		}
	}
	return nil, false
}

func (c *Composite[T, K]) Kind() Kind { return KindComposite }

func (c *Composite[T, K]) Children() []Node {
	out := make([]Node, 0, len(c.components))
	for _, comp := range c.components {
		out = append(out, comp)
	}
	return out
}

func (c *Composite[T, K]) Validate() error {
	var iss Issues
	if err := c.validateBase(); err != nil {
		iss, _ = AsIssues(err)
	}
	if len(c.components) == 0 {
		iss = AppendIssues(iss, invalidMapping(c, "composite mapping needs at least one component")...)
	}
	if c.decode == nil {
		for _, comp := range c.components {
			if comp.encode == nil {
				iss = AppendIssues(iss, invalidMapping(c, "composite without a decode function needs an encode function on every component; missing on "+string(comp.id))...)
			}
		}
	}
	seen := make(map[K]struct{}, len(c.components))
	for _, comp := range c.components {
		if _, dup := seen[comp.id]; dup {
			iss = AppendIssues(iss, invalidMapping(c, "duplicate component identifier "+string(comp.id))...)
		}
		seen[comp.id] = struct{}{}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// KeyName returns the key prefix shared by all components.
func (c *Composite[T, K]) KeyName(indices ...int) (string, error) { return keyOf(c, indices) }

func (c *Composite[T, K]) serialize(ctx context.Context, v T, indices []int) (Values, status, error) {
	if err := c.Validate(); err != nil {
		return nil, statusAbsent, err
	}
	prefix, err := keyOf(c, indices)
	if err != nil {
		return nil, statusAbsent, err
	}
	if isNilRef(v) {
		debugf(ctx, c, prefix, "nil value", nil)
		return nil, c.fail(), nil
	}
	out := make(Values, len(c.components))
	for _, comp := range c.components {
		key := comp.keyFrom(prefix)
		if comp.encode == nil {
			debugf(ctx, c, key, "component has no encode function", nil)
			return nil, c.fail(), nil
		}
		s, err := comp.encode(ctx, v)
		if err != nil {
			// one failing component voids the whole value
			debugf(ctx, c, key, "component encode failed", err)
			return nil, c.fail(), nil
		}
		out[key] = s
	}
	c.writeFlag(out)
	return out, statusOK, nil
}

func (c *Composite[T, K]) deserialize(ctx context.Context, data Values, indices []int) (T, status, error) {
	var zero T
	if err := c.Validate(); err != nil {
		return zero, statusAbsent, err
	}
	if !c.satisfiesFlag(data) {
		return zero, c.fail(), nil
	}
	prefix, err := keyOf(c, indices)
	if err != nil {
		return zero, statusAbsent, err
	}
	collected := make(map[K]string, len(c.components))
	for _, comp := range c.components {
		if raw, ok := data[comp.keyFrom(prefix)]; ok {
			collected[comp.id] = raw
		}
	}
	if len(collected) == 0 {
		return zero, c.fail(), nil
	}
	if c.partial == PartialReject && len(collected) < len(c.components) {
		debugf(ctx, c, prefix, "partial composite rejected", nil)
		return zero, c.fail(), nil
	}
	if c.decode == nil {
		debugf(ctx, c, prefix, "no decode function", nil)
		return zero, c.fail(), nil
	}
	v, err := c.decode(ctx, collected)
	if err != nil {
		debugf(ctx, c, prefix, "decode failed", err)
		return zero, c.fail(), nil
	}
	return v, statusOK, nil
}

// Component is one named part of a Composite. It owns a literal key but is
// only ever driven by its composite.
type Component[T any, K ~string] struct {
	nodeBase
	id     K
	encode func(context.Context, T) (string, error)
	owner  *Composite[T, K]
}

// Identifier returns the component identifier.
func (c *Component[T, K]) Identifier() K { return c.id }

// Composite returns the owning composite.
func (c *Component[T, K]) Composite() *Composite[T, K] { return c.owner }

func (c *Component[T, K]) Kind() Kind       { return KindComponent }
func (c *Component[T, K]) Children() []Node { return nil }

func (c *Component[T, K]) Validate() error {
	var iss Issues
	if err := c.validateBase(); err != nil {
		iss, _ = AsIssues(err)
	}
	if c.owner == nil {
		iss = AppendIssues(iss, invalidMapping(c, "component has no owning composite")...)
	}
	if c.id == "" {
		iss = AppendIssues(iss, invalidMapping(c, "component identifier is empty")...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// KeyName returns the literal key of this component.
func (c *Component[T, K]) KeyName(indices ...int) (string, error) {
	if c.owner == nil {
		return "", invalidMapping(c, "component has no owning composite")
	}
	prefix, err := keyOf(c.owner, indices)
	if err != nil {
		return "", err
	}
	return c.keyFrom(prefix), nil
}

func (c *Component[T, K]) keyFrom(prefix string) string {
	p := c.owner.Naming()
	if p == nil {
		p = DefaultNaming{}
	}
	return p.ComponentKey(prefix, string(c.id))
}
