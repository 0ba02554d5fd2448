package plistream

import (
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindDict Kind = iota
	KindArray
	KindString
	KindInteger
	KindReal
	KindBool
	KindDate
	KindData
)

var kindNames = [...]string{"dict", "array", "string", "integer", "real", "bool", "date", "data"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a node of a parsed property list: *Dict, Array, or one of the
// scalar types String, Integer, Real, Bool, Date, Data.
type Value interface {
	Kind() Kind
}

// Array is an ordered sequence of values.
type Array []Value

// String is a <string> (or unrecognised leaf) value.
type String string

// Integer is an <integer> value.
type Integer int64

// Real is a <real> value.
type Real float64

// Bool is a <true/> or <false/> value.
type Bool bool

// Date is a <date> value.
type Date time.Time

// Data is a base64-decoded <data> value.
type Data []byte

func (Array) Kind() Kind   { return KindArray }
func (String) Kind() Kind  { return KindString }
func (Integer) Kind() Kind { return KindInteger }
func (Real) Kind() Kind    { return KindReal }
func (Bool) Kind() Kind    { return KindBool }
func (Date) Kind() Kind    { return KindDate }
func (Data) Kind() Kind    { return KindData }

// Time returns d as a time.Time.
func (d Date) Time() time.Time { return time.Time(d) }

// Dict maps string keys to values. Keys keep the position of their first
// insertion; setting an existing key replaces its value in place.
type Dict struct {
	keys []string
	m    map[string]Value
}

// NewDict returns an empty Dict.
func NewDict() *Dict { return &Dict{m: make(map[string]Value)} }

func (*Dict) Kind() Kind { return KindDict }

// Set stores v under key.
func (d *Dict) Set(key string, v Value) {
	if d.m == nil {
		d.m = make(map[string]Value)
	}
	if _, ok := d.m[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.m[key] = v
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.m[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Delete removes key if present.
func (d *Dict) Delete(key string) {
	if d == nil {
		return
	}
	if _, ok := d.m[key]; !ok {
		return
	}
	delete(d.m, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (d *Dict) Range(fn func(key string, v Value) bool) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		if !fn(k, d.m[k]) {
			return
		}
	}
}

// Lookup walks v along path, descending into dicts by key. It returns false
// when an element is missing or a non-dict is reached early.
func Lookup(v Value, path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		d, ok := cur.(*Dict)
		if !ok {
			return nil, false
		}
		if cur, ok = d.Get(key); !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// StringAt returns the String stored under key, if any.
func (d *Dict) StringAt(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}
