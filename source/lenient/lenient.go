// Package lenient provides an XMLDriver that tolerates hand-edited plist
// files: HTML entities and unknown entities do not abort the parse.
package lenient

import (
	"bytes"
	"io"

	"github.com/reoring/plistream"
	xmlsrc "github.com/reoring/plistream/source/xml"
)

// Driver returns a plistream.XMLDriver backed by a non-strict encoding/xml
// decoder.
func Driver() plistream.XMLDriver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) plistream.Source {
	return plistream.SourceFromEngine(xmlsrc.NewReaderWith(r, xmlsrc.Options{Lenient: true}))
}

func (d driver) NewBytes(b []byte) plistream.Source { return d.NewReader(bytes.NewReader(b)) }

func (driver) Name() string { return "encoding/xml (lenient)" }
