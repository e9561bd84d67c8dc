package flatmap

import (
	"context"
)

// Property is an opaque accessor pair for one property of a host T. The
// engine never inspects it beyond calling Get and Set.
type Property[T, V any] struct {
	Name string
	Get  func(T) V
	Set  func(*T, V)
}

// Member is a property-bound child of a Class[T]. Build one with Bind.
type Member[T any] interface {
	// Node returns the child mapping.
	Node() Node
	// Name returns the bound property name.
	Name() string

	validateAccess() error
	serializeFrom(ctx context.Context, host T, indices []int) (Values, status, error)
	deserializeInto(ctx context.Context, host *T, data Values, indices []int) (status, error)
}

// Bind pairs a property accessor with the mapping of the property's value.
func Bind[T, V any](p Property[T, V], child Mapping[V]) Member[T] {
	return &boundMember[T, V]{prop: p, child: child}
}

type boundMember[T, V any] struct {
	prop  Property[T, V]
	child Mapping[V]
}

func (m *boundMember[T, V]) Node() Node {
	if isNilRef(m.child) {
		return nil
	}
	return m.child
}

func (m *boundMember[T, V]) Name() string { return m.prop.Name }

func (m *boundMember[T, V]) validateAccess() error {
	switch {
	case isNilRef(m.child):
		return issueAt(m.prop.Name, CodeInvalidMapping, "property "+m.prop.Name+" has no mapping", nil)
	case m.prop.Get == nil || m.prop.Set == nil:
		return invalidMapping(m.child, "property "+m.prop.Name+" needs both a getter and a setter")
	}
	return nil
}

func (m *boundMember[T, V]) serializeFrom(ctx context.Context, host T, indices []int) (Values, status, error) {
	return m.child.serialize(ctx, m.prop.Get(host), indices)
}

func (m *boundMember[T, V]) deserializeInto(ctx context.Context, host *T, data Values, indices []int) (status, error) {
	v, st, err := m.child.deserialize(ctx, data, indices)
	if err != nil || st != statusOK {
		return st, err
	}
	m.prop.Set(host, v)
	return statusOK, nil
}

// Class maps a complex object. It either delegates wholesale to one inner
// mapping (map-as) or owns one member per mapped property; never both.
type Class[T any] struct {
	nodeBase
	mapAs   Mapping[T]
	members []Member[T]
	factory func(context.Context) (T, error)
}

var _ Mapping[struct{}] = (*Class[struct{}])(nil)

// NewClass builds an empty class mapping. Add members or set a map-as
// delegate before use.
func NewClass[T any](opts ...Option) *Class[T] {
	c := &Class[T]{}
	c.init(c, opts)
	c.factory = defaultFactory[T](c)
	return c
}

// Add appends property-bound members.
func (c *Class[T]) Add(members ...Member[T]) *Class[T] {
	for _, m := range members {
		if m == nil {
			c.misuse = append(c.misuse, "nil member")
			continue
		}
		if n := m.Node(); n != nil {
			attach(c, n, m.Name(), true)
		}
		c.members = append(c.members, m)
	}
	return c
}

// MapAs delegates the whole object to inner.
func (c *Class[T]) MapAs(inner Mapping[T]) *Class[T] {
	if isNilRef(inner) {
		c.misuse = append(c.misuse, "nil map-as delegate")
		return c
	}
	if c.mapAs != nil {
		c.misuse = append(c.misuse, "map-as delegate configured twice")
		return c
	}
	c.mapAs = inner
	attach(c, inner, "", false)
	return c
}

// Factory replaces the default constructor used by deserialization.
func (c *Class[T]) Factory(fn func(context.Context) (T, error)) *Class[T] {
	c.factory = fn
	return c
}

// Members returns the configured members in order.
func (c *Class[T]) Members() []Member[T] { return append([]Member[T](nil), c.members...) }

func (c *Class[T]) Kind() Kind { return KindClass }

func (c *Class[T]) Children() []Node {
	if c.mapAs != nil {
		return []Node{c.mapAs}
	}
	out := make([]Node, 0, len(c.members))
	for _, m := range c.members {
		if n := m.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (c *Class[T]) mapAsNode() Node {
	if isNilRef(c.mapAs) {
		return nil
	}
	return c.mapAs
}

func (c *Class[T]) Validate() error {
	var iss Issues
	if err := c.validateBase(); err != nil {
		iss, _ = AsIssues(err)
	}
	hasMapAs := !isNilRef(c.mapAs)
	hasMembers := len(c.members) > 0
	switch {
	case hasMapAs && hasMembers:
		iss = AppendIssues(iss, invalidMapping(c, "class mapping has both a map-as delegate and property members")...)
	case !hasMapAs && !hasMembers:
		iss = AppendIssues(iss, invalidMapping(c, "class mapping needs a map-as delegate or at least one property member")...)
	}
	if c.factory == nil {
		iss = AppendIssues(iss, invalidMapping(c, "class mapping has no factory")...)
	}
	names := make(map[string]struct{}, len(c.members))
	for _, m := range c.members {
		if err := m.validateAccess(); err != nil {
			if more, ok := AsIssues(err); ok {
				iss = AppendIssues(iss, more...)
			}
		}
		if _, dup := names[m.Name()]; dup {
			iss = AppendIssues(iss, invalidMapping(c, "property "+m.Name()+" is mapped twice")...)
		}
		names[m.Name()] = struct{}{}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (c *Class[T]) serialize(ctx context.Context, v T, indices []int) (Values, status, error) {
	if err := c.Validate(); err != nil {
		return nil, statusAbsent, err
	}
	if isNilRef(v) {
		return nil, c.fail(), nil
	}
	if c.mapAs != nil {
		out, st, err := c.mapAs.serialize(ctx, v, indices)
		if err != nil {
			return nil, statusAbsent, err
		}
		if st != statusOK {
			return nil, c.fail(), nil
		}
		c.writeFlag(out)
		return out, statusOK, nil
	}
	out := Values{}
	for _, m := range c.members {
		vals, st, err := m.serializeFrom(ctx, v, indices)
		if err != nil {
			return nil, statusAbsent, err
		}
		switch st {
		case statusMandatory:
			debugf(ctx, c, describe(m.Node()), "mandatory property vetoed the object", nil)
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

func (c *Class[T]) deserialize(ctx context.Context, data Values, indices []int) (T, status, error) {
	var zero T
	if err := c.Validate(); err != nil {
		return zero, statusAbsent, err
	}
	if !c.satisfiesFlag(data) {
		return zero, c.fail(), nil
	}
	if c.mapAs != nil {
		v, st, err := c.mapAs.deserialize(ctx, data, indices)
		if err != nil {
			return zero, statusAbsent, err
		}
		if st != statusOK {
			return zero, c.fail(), nil
		}
		return v, statusOK, nil
	}
	host, err := c.factory(ctx)
	if err != nil {
		if HasCode(err, CodeInvalidOperation) {
			return zero, statusAbsent, err
		}
		debugf(ctx, c, describe(c), "factory failed", err)
		return zero, c.fail(), nil
	}
	assigned := 0
	for _, m := range c.members {
		st, err := m.deserializeInto(ctx, &host, data, indices)
		if err != nil {
			return zero, statusAbsent, err
		}
		switch st {
		case statusMandatory:
			debugf(ctx, c, describe(m.Node()), "mandatory property vetoed the object", nil)
			return zero, c.fail(), nil
		case statusOK:
			assigned++
		}
	}
	if assigned == 0 {
		return zero, c.fail(), nil
	}
	return host, statusOK, nil
}
