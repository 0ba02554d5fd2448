package plistream

// Open handles a start element event.
func (s *parseState) Open(tag string) error {
	if s.elisionDepth > 0 {
		s.elisionDepth++
		return nil
	}

	s.tracer.Open(tag)
	if s.shouldElide(tag) {
		s.tracer.Elide()
		s.elisionDepth = 1
		return nil
	}
	s.frames = append(s.frames, newFrame(tag))
	return nil
}

// Content handles a text event. Chunks of one text node may arrive split
// across calls and are concatenated in order.
func (s *parseState) Content(text string) error {
	if s.elisionDepth > 0 {
		return nil
	}
	top := s.top()
	if top == nil {
		// whitespace around the root element
		return nil
	}
	if top.isContainer() {
		s.tracer.Ignore(text)
		return nil
	}
	s.tracer.Content(text)
	top.text.WriteString(text)
	return nil
}

// Close handles an end element event. It reports done once the plist root
// has closed and the result is available.
func (s *parseState) Close(tag string) (bool, error) {
	if s.elisionDepth > 0 {
		s.elisionDepth--
		if s.elisionDepth > 0 {
			return false, nil
		}
		// The elided value consumes its key so the entry is absent from
		// the dict and later keys pair up normally.
		s.tracer.Close(tag)
		s.popKey()
		return false, nil
	}

	s.tracer.Close(tag)
	if len(s.frames) == 0 {
		return false, newStructural(CodeUnbalancedRoot, nil)
	}
	f := s.pop()
	if f.tag != tag {
		return false, newStructural(CodeTagMismatch, map[string]string{"got": tag, "want": f.tag})
	}

	switch f.tag {
	case "plist":
		if len(s.frames) != 0 || len(s.pendingKeys) != 0 {
			return false, newStructural(CodeUnbalancedRoot, nil)
		}
		s.result = f.root
		return true, nil
	case "key":
		s.pendingKeys = append(s.pendingKeys, f.text.String())
		return false, nil
	}

	v, err := f.finish()
	if err != nil {
		e := newStructural(CodeInvalidValue, map[string]string{"tag": f.tag, "text": quoteText(f.text.String())})
		e.err = err
		return false, e
	}

	parent := s.top()
	if parent == nil {
		return false, newStructural(CodeUnbalancedRoot, nil)
	}
	switch parent.tag {
	case "plist":
		parent.root = v
	case "array":
		parent.arr = append(parent.arr, v)
	case "dict":
		key, ok := s.popKey()
		if !ok {
			return false, newStructural(CodeOrphanValue, map[string]string{"tag": f.tag})
		}
		parent.dict.Set(key, v)
	default:
		return false, newStructural(CodeNotContainer, map[string]string{"tag": f.tag, "parent": parent.tag})
	}
	return false, nil
}

// quoteText renders leaf text for messages, shortened for long inputs.
func quoteText(s string) string {
	const maxLen = 40
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen]) + "..."
	}
	return `"` + s + `"`
}
