package plistream

import "strings"

// elidedKey names the top-level entry skipped unless ParseOpt.WithPlaylists
// is set.
const elidedKey = "Playlists"

// frame is an element that has been opened but not yet closed.
type frame struct {
	tag  string
	text strings.Builder // scalar and key elements
	arr  Array           // array elements
	dict *Dict           // dict elements
	root Value           // the single value of a plist element
}

func newFrame(tag string) *frame {
	f := &frame{tag: tag}
	switch tag {
	case "array":
		f.arr = Array{}
	case "dict":
		f.dict = NewDict()
	}
	return f
}

// isContainer reports whether the frame accumulates child values instead of
// text.
func (f *frame) isContainer() bool {
	switch f.tag {
	case "array", "dict", "plist":
		return true
	}
	return false
}

// finish returns the completed value of a closed non-root, non-key frame.
func (f *frame) finish() (Value, error) {
	switch f.tag {
	case "array":
		return f.arr, nil
	case "dict":
		return f.dict, nil
	}
	return coerce(f.tag, f.text.String())
}

// parseState is owned by a single parse invocation.
type parseState struct {
	frames      []*frame
	pendingKeys []string
	// elisionDepth > 0 means events are only counted until the elided
	// subtree's root closes.
	elisionDepth  int
	result        Value
	withPlaylists bool
	tracer        Tracer
}

func newParseState(opt ParseOpt) *parseState {
	tr := opt.Tracer
	if tr == nil {
		tr = nopTracer{}
	}
	return &parseState{withPlaylists: opt.WithPlaylists, tracer: tr}
}

func (s *parseState) top() *frame {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1]
	}
	return nil
}

func (s *parseState) pop() *frame {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames[n-1] = nil
	s.frames = s.frames[:n-1]
	return f
}

func (s *parseState) popKey() (string, bool) {
	n := len(s.pendingKeys)
	if n == 0 {
		return "", false
	}
	k := s.pendingKeys[n-1]
	s.pendingKeys = s.pendingKeys[:n-1]
	return k, true
}

// shouldElide reports whether an element opened now is the value of the
// top-level Playlists entry. Only a key stack holding exactly that one key
// qualifies; deeper dicts with the same key name are kept.
func (s *parseState) shouldElide(tag string) bool {
	return !s.withPlaylists &&
		tag != "key" &&
		len(s.pendingKeys) == 1 &&
		s.pendingKeys[0] == elidedKey
}
