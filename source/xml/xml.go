package xml

import (
	"bytes"
	stdxml "encoding/xml"
	"io"

	eng "github.com/reoring/plistream/internal/engine"
)

// Options tunes the underlying encoding/xml decoder.
type Options struct {
	// Lenient disables strict mode: unknown entities are passed through and
	// HTML entities are recognised. Element nesting is still reported as-is;
	// the plist state machine rejects mismatched closes.
	Lenient bool
}

type xmlSource struct {
	dec        *stdxml.Decoder
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.EventSource for XML.
func NewReader(r io.Reader) eng.EventSource { return NewReaderWith(r, Options{}) }

// NewBytes wraps a byte slice into an engine.EventSource for XML.
func NewBytes(b []byte) eng.EventSource { return NewReader(bytes.NewReader(b)) }

// NewReaderWith wraps an io.Reader using the given decoder options.
func NewReaderWith(r io.Reader, opt Options) eng.EventSource {
	dec := stdxml.NewDecoder(r)
	if opt.Lenient {
		dec.Strict = false
		dec.Entity = stdxml.HTMLEntity
	}
	// plist files are UTF-8; accept other declared charsets as-is rather than
	// failing on the declaration.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	return &xmlSource{dec: dec, lastOffset: -1}
}

// NextEvent returns the next start, text, or end event. Comments, processing
// instructions, and directives are skipped.
func (s *xmlSource) NextEvent() (eng.Event, error) {
	for {
		off := s.dec.InputOffset()
		tok, err := s.dec.Token()
		if err != nil {
			if err == io.EOF {
				return eng.Event{}, io.EOF
			}
			return eng.Event{}, &eng.SyntaxError{Err: err, Offset: s.dec.InputOffset()}
		}
		s.lastOffset = s.dec.InputOffset()

		switch t := tok.(type) {
		case stdxml.StartElement:
			return eng.Event{Kind: eng.KindStart, Name: t.Name.Local, Offset: off}, nil
		case stdxml.EndElement:
			return eng.Event{Kind: eng.KindEnd, Name: t.Name.Local, Offset: off}, nil
		case stdxml.CharData:
			return eng.Event{Kind: eng.KindText, Text: string(t), Offset: off}, nil
		}
	}
}

func (s *xmlSource) Location() int64 { return s.lastOffset }
