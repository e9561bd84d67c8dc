package flatmap

import (
	"strconv"
	"strings"
)

// KeyNamingPolicy derives the literal flat key of a node from its ancestor
// chain and the collection indices of the current call.
type KeyNamingPolicy interface {
	// KeyName renders the key (or key prefix) of n. Separately encoded
	// collection levels consume indices left to right, root first.
	KeyName(n Node, indices []int) (string, error)
	// ComponentKey joins a composite's key with one component identifier.
	ComponentKey(prefix, id string) string
	// InNamespace reports whether key lives at or below prefix.
	InNamespace(key, prefix string) bool
	// ItemIndex reports which collection item key belongs to. zero is the
	// namespace KeyName renders for item 0 of that collection. It must agree
	// with InNamespace for every index.
	ItemIndex(key, zero string) (int, bool)
}

// DefaultNaming renders dotted keys with bracketed indices:
//
//	Items[2].Sub[0].Name
//
// A level contributes its property name (separated by '.' from a non-empty
// parent key), a separately encoded collection additionally contributes
// "[i]", and unbound levels contribute nothing.
type DefaultNaming struct {
	// ComponentSeparator is placed between a composite key and a component
	// identifier. Empty by default ("DateDay").
	ComponentSeparator string
}

var _ KeyNamingPolicy = DefaultNaming{}

func (p DefaultNaming) KeyName(n Node, indices []int) (string, error) {
	b := &strings.Builder{}
	cursor := 0
	for _, x := range chain(n) {
		name, bound := x.Property()
		if b.Len() > 0 && bound {
			b.WriteByte('.')
		}
		if bound {
			b.WriteString(name)
		}
		if x.ConsumesIndex() {
			if cursor >= len(indices) {
				return "", missingIndex(x, cursor)
			}
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(indices[cursor]))
			b.WriteByte(']')
			cursor++
		}
	}
	return b.String(), nil
}

func (p DefaultNaming) ComponentKey(prefix, id string) string {
	return prefix + p.ComponentSeparator + id
}

func (p DefaultNaming) InNamespace(key, prefix string) bool {
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	rest := key[len(prefix):]
	if rest == "" || prefix == "" || strings.HasSuffix(prefix, "]") {
		return true
	}
	switch rest[0] {
	case '.', '[':
		return true
	}
	return p.ComponentSeparator != "" && strings.HasPrefix(rest, p.ComponentSeparator)
}

func (DefaultNaming) ItemIndex(key, zero string) (int, bool) {
	base, ok := strings.CutSuffix(zero, "0]")
	if !ok || !strings.HasSuffix(base, "[") || !strings.HasPrefix(key, base) {
		return 0, false
	}
	rest := key[len(base):]
	i, n, ok := parseIndex(rest)
	if !ok || n >= len(rest) || rest[n] != ']' {
		return 0, false
	}
	return i, true
}

// PointerNaming renders RFC 6901 JSON Pointers: every bound level is one
// reference token and every collection index another ("/Items/2/Name").
// Useful when flat keys are later projected onto a JSON document.
type PointerNaming struct{}

var _ KeyNamingPolicy = PointerNaming{}

func (PointerNaming) KeyName(n Node, indices []int) (string, error) {
	var p pathRef
	cursor := 0
	for _, x := range chain(n) {
		if name, bound := x.Property(); bound {
			p = p.Field(name)
		}
		if x.ConsumesIndex() {
			if cursor >= len(indices) {
				return "", missingIndex(x, cursor)
			}
			p = p.Index(indices[cursor])
			cursor++
		}
	}
	return p.Pointer(), nil
}

func (PointerNaming) ComponentKey(prefix, id string) string {
	var p pathRef
	if prefix != "/" {
		p = pathRef{parts: strings.Split(strings.TrimPrefix(prefix, "/"), "/")}
	}
	return p.Field(id).Pointer()
}

func (PointerNaming) InNamespace(key, prefix string) bool {
	if prefix == "/" || key == prefix {
		return strings.HasPrefix(key, prefix)
	}
	return strings.HasPrefix(key, prefix+"/")
}

func (PointerNaming) ItemIndex(key, zero string) (int, bool) {
	base, ok := strings.CutSuffix(zero, "/0")
	if !ok || !strings.HasPrefix(key, base+"/") {
		return 0, false
	}
	rest := key[len(base)+1:]
	i, n, ok := parseIndex(rest)
	if !ok || (n < len(rest) && rest[n] != '/') {
		return 0, false
	}
	return i, true
}

// parseIndex reads the canonical decimal index at the start of s and
// returns it with the number of bytes consumed.
func parseIndex(s string) (int, int, bool) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 || n > 9 || (n > 1 && s[0] == '0') {
		return 0, 0, false
	}
	i, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, 0, false
	}
	return i, n, true
}

func missingIndex(n Node, cursor int) error {
	return issueAt(describe(n), CodeMissingArgument, "no collection index supplied for this level",
		map[string]any{"position": cursor})
}

// pathRef builds JSON Pointer paths in a chain-safe way.
type pathRef struct {
	parts []string
}

func (p pathRef) Field(name string) pathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) Index(i int) pathRef {
	return pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// keyOf derives n's key with n's own policy.
func keyOf(n Node, indices []int) (string, error) {
	p := n.Naming()
	if p == nil {
		return "", invalidMapping(n, "naming policy is required")
	}
	return p.KeyName(n, indices)
}
