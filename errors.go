package flatmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/flatmap/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Structural misconfiguration reported by Validate.
	CodeInvalidMapping = "invalid_mapping"
	// A mandatory node failed to produce a value.
	CodeMandatory = "mandatory_failure"
	// Programmer misuse: wrong operation for a node kind, absent collaborator.
	CodeNotSupported     = "not_supported"
	CodeInvalidOperation = "invalid_operation"
	CodeMissingArgument  = "missing_argument"
	// Conversion failures produced by codecs. The engine swallows these unless
	// the node is mandatory.
	CodeParseError    = "parse_error"
	CodeInvalidFormat = "invalid_format"
)

// Sentinels usable with errors.Is against any Issues value carrying the code.
var (
	ErrInvalidMapping   = errors.New("flatmap: invalid mapping")
	ErrMandatory        = errors.New("flatmap: mandatory mapping failed")
	ErrNotSupported     = errors.New("flatmap: not supported")
	ErrInvalidOperation = errors.New("flatmap: invalid operation")
	ErrMissingArgument  = errors.New("flatmap: missing argument")
)

var sentinelByCode = map[string]error{
	CodeInvalidMapping:   ErrInvalidMapping,
	CodeMandatory:        ErrMandatory,
	CodeNotSupported:     ErrNotSupported,
	CodeInvalidOperation: ErrInvalidOperation,
	CodeMissingArgument:  ErrMissingArgument,
}

// Issue represents a single failure entry.
type Issue struct {
	Key     string // Flat key (or key prefix) of the node that reported the issue; may be empty at the root.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":0, "max":49}) for
	// i18n and diagnostics.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_mapping at "Items[0]": hint
		fmt.Fprintf(b, "%s at %q", it.Code, it.Key)
		if it.Hint != "" {
			fmt.Fprintf(b, ": %s", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any contained issue carries the code matching target.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s, ok := sentinelByCode[it.Code]; ok && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the underlying causes so errors.Is/As can reach them.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// issueAt builds a single-issue error with a translated message.
func issueAt(key, code, hint string, params map[string]any) Issues {
	return Issues{{Key: key, Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}}
}

func invalidMapping(n Node, hint string) Issues {
	return issueAt(describe(n), CodeInvalidMapping, hint, nil)
}
