package flatmap

import (
	"maps"
	"slices"
	"strings"
)

// Values is the flat boundary representation: string keys to string values.
// Insertion order carries no meaning.
type Values map[string]string

// Get returns the value stored under key and whether it exists.
func (v Values) Get(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}

// Has reports whether key exists, even with an empty value.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Clone returns a shallow copy; a nil map clones to nil.
func (v Values) Clone() Values { return maps.Clone(v) }

// Merge copies every entry of other into v, overwriting existing keys.
func (v Values) Merge(other Values) {
	maps.Copy(v, other)
}

// Keys returns the keys in ascending order for deterministic output.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Under returns the entries whose key starts with prefix.
func (v Values) Under(prefix string) Values {
	out := Values{}
	for k, s := range v {
		if strings.HasPrefix(k, prefix) {
			out[k] = s
		}
	}
	return out
}

// String renders "k=v" pairs in key order, separated by '&'. It is meant for
// diagnostics; use the source package for real query-string encoding.
func (v Values) String() string {
	b := &strings.Builder{}
	for i, k := range v.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v[k])
	}
	return b.String()
}
