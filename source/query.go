package source

import (
	"net/url"
	"strings"

	"github.com/reoring/flatmap"
)

// Query parses a URL query string or an application/x-www-form-urlencoded
// body. A key given several times is joined with flatmap.AggregateSeparator,
// so repeated checkboxes feed an aggregate collection.
func Query(raw string) (flatmap.Values, error) {
	q, err := url.ParseQuery(raw)
	if err != nil {
		return nil, parseError("malformed query string", err)
	}
	return URLValues(q), nil
}

// URLValues converts already parsed form values, for example
// (*http.Request).PostForm.
func URLValues(q url.Values) flatmap.Values {
	out := make(flatmap.Values, len(q))
	for k, vs := range q {
		if len(vs) == 0 {
			continue
		}
		out[k] = strings.Join(vs, flatmap.AggregateSeparator)
	}
	return out
}

// ToURLValues converts v into single-valued url.Values.
func ToURLValues(v flatmap.Values) url.Values {
	out := make(url.Values, len(v))
	for k, s := range v {
		out.Set(k, s)
	}
	return out
}

// Encode renders v as a query string sorted by key.
func Encode(v flatmap.Values) string {
	return ToURLValues(v).Encode()
}
