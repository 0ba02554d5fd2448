package plistream

import (
	"context"
	"testing"
)

func TestHandlers_SplitTextAccumulation(t *testing.T) {
	st := newParseState(ParseOpt{})
	steps := []func() error{
		func() error { return st.Open("plist") },
		func() error { return st.Open("integer") },
		func() error { return st.Content("12") },
		func() error { return st.Content("3") },
		func() error { _, err := st.Close("integer"); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	done, err := st.Close("plist")
	if err != nil || !done {
		t.Fatalf("close plist: done=%v err=%v", done, err)
	}
	if st.result != Integer(123) {
		t.Fatalf("want 123, got %#v", st.result)
	}
}

func TestHandlers_ElisionCounter(t *testing.T) {
	st := newParseState(ParseOpt{})
	_ = st.Open("plist")
	_ = st.Open("dict")
	_ = st.Open("key")
	_ = st.Content(elidedKey)
	if _, err := st.Close("key"); err != nil {
		t.Fatal(err)
	}

	_ = st.Open("array")
	if st.elisionDepth != 1 {
		t.Fatalf("want elision depth 1, got %d", st.elisionDepth)
	}
	_ = st.Open("dict")
	_ = st.Open("string")
	if st.elisionDepth != 3 {
		t.Fatalf("want elision depth 3, got %d", st.elisionDepth)
	}
	if len(st.frames) != 2 {
		t.Fatalf("no frames may be pushed while eliding, have %d", len(st.frames))
	}
	_, _ = st.Close("string")
	_, _ = st.Close("dict")
	if _, err := st.Close("array"); err != nil {
		t.Fatal(err)
	}
	if st.elisionDepth != 0 || len(st.pendingKeys) != 0 {
		t.Fatalf("elision not finished: depth=%d keys=%v", st.elisionDepth, st.pendingKeys)
	}
	if _, err := st.Close("dict"); err != nil {
		t.Fatal(err)
	}
	if done, err := st.Close("plist"); err != nil || !done {
		t.Fatalf("close plist: done=%v err=%v", done, err)
	}
	if st.result.(*Dict).Len() != 0 {
		t.Fatalf("expected empty dict, got %#v", st.result)
	}
}

func TestHandlers_ContainersIgnoreText(t *testing.T) {
	st := newParseState(ParseOpt{})
	_ = st.Open("plist")
	_ = st.Content("\n  ")
	_ = st.Open("array")
	_ = st.Content("\n    ")
	if st.top().text.Len() != 0 {
		t.Fatalf("array accumulated text")
	}
}

func TestParseFrom_EventErrors(t *testing.T) {
	cases := []struct {
		name string
		evs  []Event
		code string
	}{
		{
			name: "close dict after opening array",
			evs:  []Event{Start("plist"), Start("array"), End("dict")},
			code: CodeTagMismatch,
		},
		{
			name: "input ends inside root",
			evs:  []Event{Start("plist"), Start("dict")},
			code: CodeTruncated,
		},
		{
			name: "second root element",
			evs:  []Event{Start("plist"), End("plist"), Start("plist"), End("plist")},
			code: CodeUnbalancedRoot,
		},
		{
			name: "close without open",
			evs:  []Event{End("plist")},
			code: CodeUnbalancedRoot,
		},
		{
			name: "dict value without key",
			evs:  []Event{Start("plist"), Start("dict"), Start("true"), End("true")},
			code: CodeOrphanValue,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFrom(context.Background(), Events(tc.evs...))
			if !HasCode(err, tc.code) {
				t.Fatalf("want %s, got %v", tc.code, err)
			}
		})
	}
}

func TestParseFrom_TrailingWhitespaceAllowed(t *testing.T) {
	v, err := ParseFrom(context.Background(), Events(
		Start("plist"), Start("string"), Text("x"), End("string"), End("plist"), Text("\n"),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != String("x") {
		t.Fatalf("unexpected value: %#v", v)
	}
}

func TestCoerce_UnknownTagPassthrough(t *testing.T) {
	v, err := coerce("uid", " 7 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != String(" 7 ") {
		t.Fatalf("want raw text, got %#v", v)
	}
}
