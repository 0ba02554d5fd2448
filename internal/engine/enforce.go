package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for EventSource to apply duplicate key handling,
// max depth checks, and max bytes truncation in a streaming fashion. It also
// tracks the JSON Pointer path of the element being processed so callers can
// annotate their own errors.

// DuplicateStrictness controls duplicate dict key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink is an optional callback to receive non-fatal issues
	// (duplicate keys in warn mode).
	IssueSink func(SimpleIssue)
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

type containerKind int

const (
	kindOther containerKind = iota
	kindDict
	kindArray
)

type frame struct {
	kind      containerKind
	name      string
	path      string
	keys      map[string]struct{}
	nextIndex int
	// pendingKey is the last closed key of a dict frame, consumed by the next
	// value element.
	pendingKey string
	hasKey     bool
	// keyText accumulates text of an open key element.
	keyText strings.Builder
}

// EnforcingSource is the EventSource returned by WrapWithEnforcement.
type EnforcingSource struct {
	inner EventSource
	opt   EnforceOptions
	stack []*frame
	depth int
}

// WrapWithEnforcement returns an EventSource that enforces duplicate key
// policy, maximum container nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner EventSource, opt EnforceOptions) *EnforcingSource {
	return &EnforcingSource{inner: inner, opt: opt}
}

func (e *EnforcingSource) NextEvent() (Event, error) {
	ev, err := e.inner.NextEvent()
	if err != nil {
		return Event{}, err
	}

	switch ev.Kind {
	case KindStart:
		f := &frame{name: ev.Name, path: e.childPath(ev.Name)}
		switch ev.Name {
		case "dict":
			f.kind = kindDict
			f.keys = make(map[string]struct{})
		case "array":
			f.kind = kindArray
		}
		e.stack = append(e.stack, f)
		if f.kind != kindOther {
			e.depth++
			if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
				return Event{}, e.fatal("too_deep", f.path, "max depth exceeded", ev.Offset)
			}
		}
	case KindText:
		if n := len(e.stack); n > 0 && e.stack[n-1].name == "key" {
			e.stack[n-1].keyText.WriteString(ev.Text)
		}
	case KindEnd:
		if n := len(e.stack); n > 0 {
			f := e.stack[n-1]
			e.stack = e.stack[:n-1]
			if f.kind != kindOther && e.depth > 0 {
				e.depth--
			}
			if err := e.closed(f, ev.Offset); err != nil {
				return Event{}, err
			}
		}
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Event{}, e.fatal("truncated", e.Path(), "max bytes exceeded", off)
		}
	}
	return ev, nil
}

// closed updates the parent frame once f has been closed.
func (e *EnforcingSource) closed(f *frame, offset int64) error {
	n := len(e.stack)
	if n == 0 {
		return nil
	}
	parent := e.stack[n-1]
	switch parent.kind {
	case kindDict:
		if f.name == "key" {
			key := f.keyText.String()
			if _, dup := parent.keys[key]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{
					Code:    "duplicate_key",
					Path:    joinJSONPointer(parent.path, key),
					Message: "key '" + key + "' duplicated",
					Offset:  offset,
				}
				if e.opt.OnDuplicate == DupError {
					return e.fatal(si.Code, si.Path, si.Message, offset)
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			parent.keys[key] = struct{}{}
			parent.pendingKey = key
			parent.hasKey = true
			return nil
		}
		parent.pendingKey = ""
		parent.hasKey = false
	case kindArray:
		parent.nextIndex++
	}
	return nil
}

func (e *EnforcingSource) fatal(code, path, msg string, offset int64) error {
	return IssueError{SimpleIssue{Code: code, Path: normalizeIssuePath(path), Message: msg, Offset: offset}}
}

// childPath computes the path of an element about to be opened.
func (e *EnforcingSource) childPath(name string) string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	parent := e.stack[n-1]
	switch parent.kind {
	case kindDict:
		if name == "key" || !parent.hasKey {
			return parent.path
		}
		return joinJSONPointer(parent.path, parent.pendingKey)
	case kindArray:
		return joinJSONPointer(parent.path, strconv.Itoa(parent.nextIndex))
	default:
		return parent.path
	}
}

// Path returns the JSON Pointer of the innermost open element ("/" at the
// document root).
func (e *EnforcingSource) Path() string {
	if n := len(e.stack); n > 0 {
		return normalizeIssuePath(e.stack[n-1].path)
	}
	return "/"
}

func (e *EnforcingSource) Location() int64 { return e.inner.Location() }

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinJSONPointer(base, token string) string {
	if base == "" {
		return "/" + escapeJSONPointerToken(token)
	}
	return base + "/" + escapeJSONPointerToken(token)
}
