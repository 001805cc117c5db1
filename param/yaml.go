package param

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/randl/hash40"
)

// YAML is a [Codec] for a text form of param trees.
//
// Every node is a mapping with a single key naming its kind:
//
//	struct:
//	  walk_speed: {float: 1.25}
//	  jump_count: {u8: 2}
//	  moves:
//	    list:
//	      - {hash40: attack_11}
//	      - {hash40: "0x0123456789"}
//
// Struct field keys and hash40 values are written as labels when Labels knows
// them and as hex otherwise. Field order is preserved.
type YAML struct {
	Labels *hash40.Labels
	Indent int
}

var _ Codec = YAML{}

// Decode parses data into a tree.
func (c YAML) Decode(data []byte) (*Node, error) {
	var v any

	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return c.decode(v, "$")
}

// Encode formats root as YAML.
func (c YAML) Encode(root *Node) ([]byte, error) {
	v, err := c.encode(root, "$")
	if err != nil {
		return nil, err
	}

	indent := c.Indent
	if indent <= 0 {
		indent = 2
	}

	return yaml.MarshalWithOptions(v, yaml.Indent(indent), yaml.IndentSequence(true))
}

func (c YAML) encode(n *Node, at string) (yaml.MapSlice, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: %s: nil node", ErrSyntax, at)
	}

	var payload any

	switch n.Kind {
	case Bool:
		payload = n.Bool

	case I8, U8, I16, U16, I32, U32:
		payload = n.Int

	case Float:
		payload = n.Float

	case Hash:
		payload = c.Labels.Format(n.Hash)

	case String:
		payload = n.Text

	case List:
		items := make([]any, len(n.List))

		for i, e := range n.List {
			v, err := c.encode(e, at+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}

			items[i] = v
		}

		payload = items

	case Struct:
		fields := make(yaml.MapSlice, len(n.Fields))

		for i, f := range n.Fields {
			key := c.Labels.Format(f.Hash)

			v, err := c.encode(f.Node, at+"."+key)
			if err != nil {
				return nil, err
			}

			fields[i] = yaml.MapItem{Key: key, Value: v}
		}

		payload = fields

	default:
		return nil, fmt.Errorf("%w: %s: %s", ErrKind, at, n.Kind)
	}

	return yaml.MapSlice{{Key: n.Kind.String(), Value: payload}}, nil
}

func (c YAML) decode(v any, at string) (*Node, error) {
	ms, ok := v.(yaml.MapSlice)
	if !ok || len(ms) != 1 {
		return nil, fmt.Errorf("%w: %s: want a single kind key", ErrSyntax, at)
	}

	name := fmt.Sprint(ms[0].Key)

	kind, ok := ParseKind(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrKind, at, name)
	}

	payload := ms[0].Value

	switch kind {
	case Bool:
		if b, ok := payload.(bool); ok {
			return NewBool(b), nil
		}

	case I8, U8, I16, U16, I32, U32:
		if i, ok := toInt(payload); ok {
			n, err := NewInt(kind, i)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}

			return n, nil
		}

	case Float:
		if f, ok := toFloat(payload); ok {
			return NewFloat(float32(f)), nil
		}

	case Hash:
		if h, ok := toHash(payload); ok {
			return NewHash(h), nil
		}

	case String:
		if s, ok := payload.(string); ok {
			return NewString(s), nil
		}

	case List:
		return c.decodeList(payload, at)

	case Struct:
		return c.decodeStruct(payload, at)
	}

	return nil, fmt.Errorf("%w: %s: invalid %s value %v", ErrSyntax, at, kind, payload)
}

func (c YAML) decodeList(payload any, at string) (*Node, error) {
	if payload == nil {
		return NewList(), nil
	}

	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: list wants a sequence", ErrSyntax, at)
	}

	if len(items) == 0 {
		return NewList(), nil
	}

	list := make([]*Node, len(items))

	for i, e := range items {
		n, err := c.decode(e, at+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}

		list[i] = n
	}

	return NewList(list...), nil
}

func (c YAML) decodeStruct(payload any, at string) (*Node, error) {
	if m, ok := payload.(map[string]any); payload == nil || ok && len(m) == 0 {
		return NewStruct(), nil
	}

	ms, ok := payload.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: %s: struct wants a mapping", ErrSyntax, at)
	}

	if len(ms) == 0 {
		return NewStruct(), nil
	}

	fields := make([]Field, len(ms))

	for i, item := range ms {
		h, ok := toHash(item.Key)
		if !ok {
			return nil, fmt.Errorf("%w: %s: invalid field key %v", ErrSyntax, at, item.Key)
		}

		n, err := c.decode(item.Value, at+"."+fmt.Sprint(item.Key))
		if err != nil {
			return nil, err
		}

		fields[i] = Field{Hash: h, Node: n}
	}

	return NewStruct(fields...), nil
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}

		return int64(x), true
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
			return 0, false
		}

		return int64(x), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

func toHash(v any) (hash40.Hash40, bool) {
	if s, ok := v.(string); ok {
		h, err := hash40.Parse(s)

		return h, err == nil
	}

	i, ok := toInt(v)
	if !ok || i < 0 || i > int64(hash40.Mask) {
		return 0, false
	}

	return hash40.Hash40(i), true
}
