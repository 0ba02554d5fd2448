package plistream

import (
	"io"
	"sync"

	eng "github.com/reoring/plistream/internal/engine"
	xmlsrc "github.com/reoring/plistream/source/xml"
)

// EventKind enumerates tokenizer event kinds.
type EventKind int

const (
	EventStart EventKind = iota
	EventText
	EventEnd
)

func (k EventKind) String() string { return toEngineKind(k).String() }

// Event describes a tokenizer callback. Offset records the byte position
// when known (-1 otherwise).
type Event struct {
	Kind   EventKind
	Name   string // Element local name for start/end events.
	Text   string // Character data for text events.
	Offset int64
}

// Source abstracts over XML event producers. NextEvent returns io.EOF once
// the input is exhausted.
type Source interface {
	NextEvent() (Event, error)
	Location() int64 // byte offset; -1 if unknown
}

// XMLDriver converts XML input into a Source via a pluggable SPI. The default
// implementation is based on encoding/xml in strict mode and may be swapped
// with SetXMLDriver.
type XMLDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	xmlDriverMu      sync.RWMutex
	currentXMLDriver XMLDriver = defaultXMLDriver{}
)

// SetXMLDriver replaces the global XML driver; nil values are ignored.
func SetXMLDriver(d XMLDriver) {
	if d == nil {
		return
	}
	xmlDriverMu.Lock()
	currentXMLDriver = d
	xmlDriverMu.Unlock()
}

// UseDefaultXMLDriver restores the default encoding/xml-backed driver.
func UseDefaultXMLDriver() {
	xmlDriverMu.Lock()
	currentXMLDriver = defaultXMLDriver{}
	xmlDriverMu.Unlock()
}

// CurrentXMLDriver returns the driver used by XMLReader and XMLBytes.
func CurrentXMLDriver() XMLDriver {
	xmlDriverMu.RLock()
	d := currentXMLDriver
	xmlDriverMu.RUnlock()
	return d
}

// defaultXMLDriver wraps the encoding/xml implementation.
type defaultXMLDriver struct{}

func (defaultXMLDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: xmlsrc.NewReader(r)}
}
func (defaultXMLDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: xmlsrc.NewBytes(b)}
}
func (defaultXMLDriver) Name() string { return "encoding/xml" }

// XMLReader wraps an io.Reader as an XML Source.
func XMLReader(r io.Reader) Source { return CurrentXMLDriver().NewReader(r) }

// XMLBytes wraps a byte slice as an XML Source.
func XMLBytes(b []byte) Source { return CurrentXMLDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.EventSource as a plistream.Source.
func SourceFromEngine(inner eng.EventSource) Source {
	return &engineSourceAdapter{inner: inner}
}

// Events returns a Source replaying a fixed slice of events, for callers that
// already hold a tokenized document.
func Events(evs ...Event) Source { return &sliceSource{evs: evs} }

type sliceSource struct {
	evs []Event
	pos int
}

func (s *sliceSource) NextEvent() (Event, error) {
	if s.pos >= len(s.evs) {
		return Event{}, io.EOF
	}
	ev := s.evs[s.pos]
	s.pos++
	return ev, nil
}

func (s *sliceSource) Location() int64 {
	if s.pos > 0 {
		return s.evs[s.pos-1].Offset
	}
	return -1
}

// Start, Text, and End build events for Events.
func Start(name string) Event { return Event{Kind: EventStart, Name: name, Offset: -1} }
func Text(text string) Event  { return Event{Kind: EventText, Text: text, Offset: -1} }
func End(name string) Event   { return Event{Kind: EventEnd, Name: name, Offset: -1} }

type engineSourceAdapter struct {
	inner eng.EventSource
}

func (s *engineSourceAdapter) NextEvent() (Event, error) {
	e, err := s.inner.NextEvent()
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: fromEngineKind(e.Kind), Name: e.Name, Text: e.Text, Offset: e.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// eventSourceAdapter exposes a public Source as an engine.EventSource.
type eventSourceAdapter struct{ inner Source }

func (a *eventSourceAdapter) NextEvent() (eng.Event, error) {
	e, err := a.inner.NextEvent()
	if err != nil {
		return eng.Event{}, err
	}
	return eng.Event{Kind: toEngineKind(e.Kind), Name: e.Name, Text: e.Text, Offset: e.Offset}, nil
}

func (a *eventSourceAdapter) Location() int64 { return a.inner.Location() }

// engineEventSource unwraps engine-backed sources to avoid adapter
// round-trips.
func engineEventSource(s Source) eng.EventSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &eventSourceAdapter{inner: s}
}

func fromEngineKind(k eng.Kind) EventKind {
	switch k {
	case eng.KindStart:
		return EventStart
	case eng.KindEnd:
		return EventEnd
	default:
		return EventText
	}
}

func toEngineKind(k EventKind) eng.Kind {
	switch k {
	case EventStart:
		return eng.KindStart
	case EventEnd:
		return eng.KindEnd
	default:
		return eng.KindText
	}
}
