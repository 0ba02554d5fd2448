package plistream

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tracer observes handler transitions. Implementations must not retain the
// parser state; they only see tag names and text.
type Tracer interface {
	Open(tag string)
	Elide()
	Ignore(text string)
	Content(text string)
	Close(tag string)
}

type nopTracer struct{}

func (nopTracer) Open(string)    {}
func (nopTracer) Elide()         {}
func (nopTracer) Ignore(string)  {}
func (nopTracer) Content(string) {}
func (nopTracer) Close(string)   {}

// WriterTracer prints an indented outline of handler transitions.
type WriterTracer struct {
	w      io.Writer
	indent string
}

// NewWriterTracer returns a Tracer writing one line per transition to w.
func NewWriterTracer(w io.Writer) *WriterTracer { return &WriterTracer{w: w} }

func (t *WriterTracer) Open(tag string) {
	fmt.Fprintf(t.w, "%s<%s>\n", t.indent, tag)
	t.indent += "  "
}

func (t *WriterTracer) Elide() { fmt.Fprintf(t.w, "%s...\n", t.indent) }

func (t *WriterTracer) Ignore(text string) {
	q := strconv.Quote(text)
	fmt.Fprintf(t.w, "%s[%s]\n", t.indent, q[1:len(q)-1])
}

func (t *WriterTracer) Content(text string) {
	fmt.Fprintf(t.w, "%s%s\n", t.indent, strconv.Quote(text))
}

func (t *WriterTracer) Close(tag string) {
	t.indent = strings.TrimSuffix(t.indent, "  ")
	fmt.Fprintf(t.w, "%s</%s>\n", t.indent, tag)
}
