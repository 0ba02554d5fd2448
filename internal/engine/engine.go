package engine

import (
	"context"
	"errors"
	"io"
)

// Kind represents event kinds from an XML tokenizer.
type Kind int

const (
	KindStart Kind = iota
	KindText
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindText:
		return "text"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is a single tokenizer callback with approximate input offset.
// Name is set for start/end events, Text for text events.
type Event struct {
	Kind   Kind
	Name   string
	Text   string
	Offset int64
}

// EventSource is a minimal interface required by the engine.
type EventSource interface {
	NextEvent() (Event, error)
	Location() int64
}

// Handler receives events in document order. Close reports done=true once
// the document root has been closed.
type Handler interface {
	Open(name string) error
	Content(text string) error
	Close(name string) (done bool, err error)
}

// ErrIncomplete is returned by Run when the source is exhausted before the
// handler reports completion.
var ErrIncomplete = errors.New("engine: input ended before root element closed")

// ErrTrailingContent is returned by Run when another element starts after
// the root element has been closed.
var ErrTrailingContent = errors.New("engine: content after root element")

// SyntaxError marks an error produced by the tokenizer itself.
type SyntaxError struct {
	Err    error
	Offset int64
}

func (e *SyntaxError) Error() string { return e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// Run feeds every event from src into h until h reports completion. The
// context is checked between events.
func Run(ctx context.Context, src EventSource, h Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := src.NextEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrIncomplete
			}
			return err
		}
		switch ev.Kind {
		case KindStart:
			err = h.Open(ev.Name)
		case KindText:
			err = h.Content(ev.Text)
		case KindEnd:
			var done bool
			done, err = h.Close(ev.Name)
			if err == nil && done {
				return drain(ctx, src)
			}
		}
		if err != nil {
			return err
		}
	}
}

// drain consumes the remainder of src so tokenizer errors after the root
// element still surface. Whitespace and comments are fine.
func drain(ctx context.Context, src EventSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := src.NextEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ev.Kind == KindStart {
			return ErrTrailingContent
		}
	}
}
