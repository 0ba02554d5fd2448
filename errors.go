package plistream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/plistream/i18n"
)

// Issue codes.
const (
	CodeSyntax         = "syntax_error"
	CodeTagMismatch    = "tag_mismatch"
	CodeUnbalancedRoot = "unbalanced_root"
	CodeOrphanValue    = "orphan_value"
	CodeNotContainer   = "not_container"
	CodeInvalidValue   = "invalid_value"
	CodeDuplicateKey   = "duplicate_key"
	CodeTooDeep        = "too_deep"
	CodeTruncated      = "truncated"
	CodeCanceled       = "canceled"
)

// Issue represents a single parse failure or warning.
type Issue struct {
	Path    string // JSON Pointer of the dict key / array index being built.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
}

func (it Issue) String() string {
	s := fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
	if it.Offset >= 0 {
		s += fmt.Sprintf(" (offset %d)", it.Offset)
	}
	return s
}

// Issues is a collection of issues that implements error.
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
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is can reach tokenizer or context
// errors.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
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

// structuralError is raised by the handlers; the driver converts it into an
// Issue carrying the current path and offset.
type structuralError struct {
	code string
	msg  string
	err  error
}

func (e *structuralError) Error() string { return e.msg }
func (e *structuralError) Unwrap() error { return e.err }

func newStructural(code string, data map[string]string) *structuralError {
	return &structuralError{code: code, msg: i18n.T(code, data)}
}
