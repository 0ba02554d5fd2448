package plistream

import "testing"

func TestDict_SetKeepsFirstPosition(t *testing.T) {
	d := NewDict()
	d.Set("a", Integer(1))
	d.Set("b", Integer(2))
	d.Set("a", Integer(3))

	if got := d.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected keys: %v", got)
	}
	if v, _ := d.Get("a"); v != Integer(3) {
		t.Fatalf("want replaced value, got %#v", v)
	}
}

func TestDict_Delete(t *testing.T) {
	d := NewDict()
	d.Set("a", Integer(1))
	d.Set("b", Integer(2))
	d.Delete("a")
	d.Delete("missing")
	if d.Has("a") || d.Len() != 1 || d.Keys()[0] != "b" {
		t.Fatalf("unexpected dict after delete: %v", d.Keys())
	}
}

func TestDict_NilSafe(t *testing.T) {
	var d *Dict
	if d.Len() != 0 || d.Has("x") || d.Keys() != nil {
		t.Fatalf("nil dict should behave as empty")
	}
	d.Range(func(string, Value) bool { t.Fatal("unexpected entry"); return false })
}

func TestLookup(t *testing.T) {
	inner := NewDict()
	inner.Set("Name", String("Song"))
	root := NewDict()
	root.Set("Tracks", inner)
	root.Set("Version", Integer(1))

	if v, ok := Lookup(root, "Tracks", "Name"); !ok || v != String("Song") {
		t.Fatalf("unexpected lookup: %#v %v", v, ok)
	}
	if _, ok := Lookup(root, "Version", "x"); ok {
		t.Fatalf("lookup through a scalar should fail")
	}
	if _, ok := Lookup(nil, "x"); ok {
		t.Fatalf("lookup on nil should fail")
	}
}

func TestKind_String(t *testing.T) {
	if KindDate.String() != "date" || (NewDict()).Kind() != KindDict || Array(nil).Kind().String() != "array" {
		t.Fatalf("unexpected kind names")
	}
}
