package flatmap

import (
	"strings"
)

// Node is the type-erased view of a mapping node. Parents use it to wire
// children, naming policies use it to derive keys, and tree utilities use it
// to walk a configuration.
//
// Node is sealed: only the node types of this package implement it.
type Node interface {
	Kind() Kind
	// Parent returns the enclosing node, or nil for the root. The link is
	// non-owning and only used for key derivation.
	Parent() Node
	// Property returns the bound property name, if any.
	Property() (name string, bound bool)
	// ConsumesIndex reports whether this level takes one entry of the index
	// slice when keys are derived (separately encoded collections).
	ConsumesIndex() bool
	IsMandatory() bool
	// Flag returns the configured flag key and value; value is empty with
	// hasValue=false when only presence of the key is required.
	Flag() (key, value string, hasValue bool)
	Naming() KeyNamingPolicy
	// Children lists directly owned nodes in configuration order.
	Children() []Node
	// Validate checks this node's local invariants only.
	Validate() error

	base() *nodeBase
}

// Option configures the shared part of a node at construction time.
type Option func(*nodeBase)

// Mandatory marks a node whose failure vetoes its parent's result.
func Mandatory() Option { return func(b *nodeBase) { b.mandatory = true } }

// WithFlag gates deserialization on a non-empty value stored under key.
// After a successful serialization key is written with the value "True".
func WithFlag(key string) Option {
	return func(b *nodeBase) {
		b.flagKey = key
		b.flagValue = ""
		b.hasFlagValue = false
	}
}

// WithFlagValue gates deserialization on key holding exactly value, and
// writes that pair after a successful serialization.
func WithFlagValue(key, value string) Option {
	return func(b *nodeBase) {
		b.flagKey = key
		b.flagValue = value
		b.hasFlagValue = true
	}
}

// WithNaming replaces the node's key naming policy.
func WithNaming(p KeyNamingPolicy) Option { return func(b *nodeBase) { b.naming = p } }

// nodeBase carries the state every node kind shares.
type nodeBase struct {
	self         Node
	parent       Node
	property     string
	bound        bool
	naming       KeyNamingPolicy
	mandatory    bool
	flagKey      string
	flagValue    string
	hasFlagValue bool
	// wiring mistakes recorded by builders, reported by Validate
	misuse []string
}

func (b *nodeBase) init(self Node, opts []Option) {
	b.self = self
	b.naming = DefaultNaming{}
	for _, o := range opts {
		if o != nil {
			o(b)
		}
	}
}

func (b *nodeBase) base() *nodeBase { return b }

func (b *nodeBase) Parent() Node { return b.parent }

func (b *nodeBase) IsMandatory() bool { return b.mandatory }

func (b *nodeBase) ConsumesIndex() bool { return false }

func (b *nodeBase) Property() (string, bool) { return b.property, b.bound }

func (b *nodeBase) Naming() KeyNamingPolicy { return b.naming }

func (b *nodeBase) Flag() (string, string, bool) {
	return b.flagKey, b.flagValue, b.hasFlagValue
}

// SetNaming replaces the naming policy after construction. Call it only
// while the tree is being configured.
func (b *nodeBase) SetNaming(p KeyNamingPolicy) { b.naming = p }

func (b *nodeBase) validateBase() error {
	var iss Issues
	add := func(hint string) {
		iss = AppendIssues(iss, invalidMapping(b.self, hint)...)
	}
	if b.naming == nil {
		add("naming policy is required")
	}
	if b.bound && b.parent == nil {
		add("property-bound node has no parent")
	}
	if b.bound && b.property == "" {
		add("bound property has no name")
	}
	if b.hasFlagValue && b.flagKey == "" {
		add("flag value configured without a flag key")
	}
	for _, m := range b.misuse {
		add(m)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// satisfiesFlag reports whether data passes this node's flag gate.
func (b *nodeBase) satisfiesFlag(data Values) bool {
	if b.flagKey == "" {
		return true
	}
	v, ok := data[b.flagKey]
	if !ok {
		return false
	}
	if b.hasFlagValue {
		return v == b.flagValue
	}
	return v != ""
}

// writeFlag records the flag pair after a successful serialization.
func (b *nodeBase) writeFlag(out Values) {
	if b.flagKey == "" {
		return
	}
	if b.hasFlagValue {
		out[b.flagKey] = b.flagValue
		return
	}
	out[b.flagKey] = "True"
}

// fail is the status of a failed attempt: mandatory nodes escalate.
func (b *nodeBase) fail() status {
	if b.mandatory {
		return statusMandatory
	}
	return statusAbsent
}

// attach links child under parent. Mistakes are recorded on the parent and
// surface from its Validate.
func attach(parent, child Node, property string, bound bool) {
	if isNilRef(child) {
		return
	}
	pb := parent.base()
	cb := child.base()
	if cb.parent != nil {
		pb.misuse = append(pb.misuse, "child "+describe(child)+" is already attached to another parent")
		return
	}
	for a := parent; a != nil; a = a.Parent() {
		if a == child {
			pb.misuse = append(pb.misuse, "attaching "+describe(child)+" would create a cycle")
			return
		}
	}
	cb.parent = parent
	cb.property = property
	cb.bound = bound
}

// chain returns the path from the root down to n, inclusive.
func chain(n Node) []Node {
	var out []Node
	for x := n; x != nil; x = x.Parent() {
		out = append(out, x)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// describe renders an index-free location for n, e.g. "Items[].Name", used
// in issues where concrete indices are unknown.
func describe(n Node) string {
	if isNilRef(n) {
		return "<nil>"
	}
	b := &strings.Builder{}
	for _, x := range chain(n) {
		name, bound := x.Property()
		if bound {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(name)
		}
		if x.ConsumesIndex() {
			b.WriteString("[]")
		}
	}
	if b.Len() == 0 {
		return "$"
	}
	return b.String()
}
