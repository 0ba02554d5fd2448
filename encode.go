package plistream

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/plistream/codec"
)

// ToAny converts v into plain Go values: map[string]any, []any, string,
// int64, float64, bool, time.Time, and []byte. Dict ordering is lost.
func ToAny(v Value) any {
	switch t := v.(type) {
	case *Dict:
		m := make(map[string]any, t.Len())
		t.Range(func(k string, vv Value) bool {
			m[k] = ToAny(vv)
			return true
		})
		return m
	case Array:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = ToAny(t[i])
		}
		return arr
	case String:
		return string(t)
	case Integer:
		return int64(t)
	case Real:
		return float64(t)
	case Bool:
		return bool(t)
	case Date:
		return time.Time(t)
	case Data:
		return []byte(t)
	default:
		return nil
	}
}

// EncodeJSON writes v as indented JSON. Dict keys keep insertion order,
// dates use RFC 3339, data is base64, and non-finite reals become strings.
func EncodeJSON(w io.Writer, v Value) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// MarshalJSON renders the dict as an object in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	i := 0
	d.Range(func(k string, v Value) bool {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		var kb, vb []byte
		if kb, err = json.Marshal(k); err != nil {
			return false
		}
		if vb, err = json.Marshal(v); err != nil {
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Real) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64))), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(codec.FormatDate(time.Time(d)))), nil
}

func (d Data) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(codec.EncodeData(d))), nil
}

// EncodeYAML writes v as a YAML document with explicit scalar tags where the
// plist type would otherwise be ambiguous (dates, data).
func EncodeYAML(w io.Writer, v Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(YAMLNode(v)); err != nil {
		return err
	}
	return enc.Close()
}

// YAMLNode converts v into a yaml.v3 node tree preserving dict order.
func YAMLNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case *Dict:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		t.Range(func(k string, vv Value) bool {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				YAMLNode(vv))
			return true
		})
		return n
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, vv := range t {
			n.Content = append(n.Content, YAMLNode(vv))
		}
		return n
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
	case Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(t), 10)}
	case Real:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(float64(t))}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(t))}
	case Date:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: codec.FormatDate(time.Time(t))}
	case Data:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: codec.EncodeData(t)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
