package source

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/flatmap"
)

// JSON flattens a JSON document. Numbers keep their literal text and
// booleans become "true" or "false".
func JSON(b []byte) (flatmap.Values, error) { return JSONReader(bytes.NewReader(b)) }

// JSONReader flattens the first JSON document read from r.
func JSONReader(r io.Reader) (flatmap.Values, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	out := flatmap.Values{}
	var path pathStack
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(path.frames) > 0 {
				return nil, parseError("unexpected end of JSON input", io.ErrUnexpectedEOF)
			}
			return out, nil
		}
		if err != nil {
			return nil, parseError("malformed JSON", err)
		}
		f := path.top()
		// inside an object every other token is a key
		if f != nil && !f.array && f.key == "" {
			if d, ok := tok.(j.Delim); ok && d == '}' {
				path.pop()
				path.completeValue()
				if len(path.frames) == 0 {
					return out, nil
				}
				continue
			}
			k, ok := tok.(string)
			if !ok || k == "" {
				return nil, formatError(f.prefix, "object keys must be non-empty strings", nil)
			}
			f.key = k
			continue
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				path.push(false)
				continue
			case '[':
				path.push(true)
				continue
			case ']':
				path.pop()
				path.completeValue()
				if len(path.frames) == 0 {
					return out, nil
				}
				continue
			}
		case string:
			err = put(out, path.current(), v)
		case j.Number:
			err = put(out, path.current(), v.String())
		case float64:
			err = put(out, path.current(), strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			err = put(out, path.current(), strconv.FormatBool(v))
		case nil:
			// null is an absent key
		}
		if err != nil {
			return nil, err
		}
		path.completeValue()
	}
}

// completeValue clears the pending object key, or moves to the next array
// slot, after a value was consumed.
func (p *pathStack) completeValue() {
	f := p.top()
	if f == nil {
		return
	}
	if f.array {
		f.next++
		return
	}
	f.key = ""
}

// MarshalJSON writes v as one flat JSON object with keys in ascending order.
func MarshalJSON(v flatmap.Values) ([]byte, error) {
	if v == nil {
		v = flatmap.Values{}
	}
	b, err := j.Marshal(map[string]string(v))
	if err != nil {
		return nil, formatError("", "cannot encode values as JSON", err)
	}
	return b, nil
}
