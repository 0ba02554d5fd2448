package plistream

import (
	"strconv"
	"strings"

	"github.com/reoring/plistream/codec"
)

type coerceFunc func(text string) (Value, error)

// coercion converts the accumulated text of a scalar leaf into its typed
// value. Tags missing from the table pass their text through as a String.
var coercion = map[string]coerceFunc{
	"integer": func(s string) (Value, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, err
		}
		return Integer(n), nil
	},
	"real": func(s string) (Value, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		return Real(f), nil
	},
	"string": func(s string) (Value, error) { return String(s), nil },
	"data": func(s string) (Value, error) {
		b, err := codec.DecodeData(s)
		if err != nil {
			return nil, err
		}
		return Data(b), nil
	},
	"date": func(s string) (Value, error) {
		t, err := codec.ParseDate(s)
		if err != nil {
			return nil, err
		}
		return Date(t), nil
	},
	"true":  func(string) (Value, error) { return Bool(true), nil },
	"false": func(string) (Value, error) { return Bool(false), nil },
}

// coerce applies the coercion table to a closed scalar element.
func coerce(tag, text string) (Value, error) {
	if fn, ok := coercion[tag]; ok {
		return fn(text)
	}
	return String(text), nil
}
