// Package plistream decodes XML property lists into a typed value tree.
//
// The decoder is a small event-driven state machine: an XML tokenizer
// (encoding/xml by default, see XMLDriver) emits start, text, and end
// events, and the handlers keep an explicit stack of open elements plus a
// stack of pending dict keys. Leaf text is coerced per tag (integer, real,
// string, data, date, true, false); unknown leaf tags pass through as String.
//
// Music library exports carry a very large top-level "Playlists" entry. It is
// consumed but not materialized unless ParseOpt.WithPlaylists is set.
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Tokenizer drivers live under source/, scalar codecs under codec/, the CLI under cmd/tracklist.
// - Every failure is reported as Issues with a code, JSON Pointer path, and byte offset.
//
// Typical usage:
//
//	v, err := plistream.Parse(data)
//	tracks, _ := plistream.Lookup(v, "Tracks")
//	err = plistream.EncodeJSON(os.Stdout, tracks)
package plistream
