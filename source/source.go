// Package source converts between flatmap.Values and the boundary formats
// flat maps usually travel in: query strings and form posts, JSON objects and
// YAML documents.
//
// Nested JSON and YAML input is flattened with the default key layout
// (dotted properties, bracketed indices), so a document such as
//
//	{"Lines": [{"SKU": "A"}]}
//
// yields the key "Lines[0].SKU". Scalars keep their textual form; nulls are
// treated as absent keys. The writers emit flat objects.
package source

import (
	"strconv"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/i18n"
)

// pathStack tracks the flat key of the value being read.
type pathStack struct {
	frames []frame
}

type frame struct {
	prefix string
	array  bool
	next   int    // next index for arrays
	key    string // pending key for objects
}

func (p *pathStack) push(array bool) {
	p.frames = append(p.frames, frame{prefix: p.current(), array: array})
}

func (p *pathStack) pop() {
	if n := len(p.frames); n > 0 {
		p.frames = p.frames[:n-1]
	}
}

func (p *pathStack) top() *frame {
	if n := len(p.frames); n > 0 {
		return &p.frames[n-1]
	}
	return nil
}

// current renders the key for the next value in the innermost container.
func (p *pathStack) current() string {
	f := p.top()
	if f == nil {
		return ""
	}
	if f.array {
		return f.prefix + "[" + strconv.Itoa(f.next) + "]"
	}
	return joinKey(f.prefix, f.key)
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// put stores s under key, rejecting keys produced twice by the flattening.
func put(out flatmap.Values, key, s string) error {
	if key == "" {
		return formatError("", "top-level value must be an object or an array", nil)
	}
	if _, dup := out[key]; dup {
		return formatError(key, "flattened key occurs more than once", nil)
	}
	out[key] = s
	return nil
}

func parseError(hint string, cause error) error {
	return flatmap.Issues{{Code: flatmap.CodeParseError, Message: i18n.T(flatmap.CodeParseError, nil), Hint: hint, Cause: cause}}
}

func formatError(key, hint string, cause error) error {
	return flatmap.Issues{{Key: key, Code: flatmap.CodeInvalidFormat, Message: i18n.T(flatmap.CodeInvalidFormat, nil), Hint: hint, Cause: cause}}
}
