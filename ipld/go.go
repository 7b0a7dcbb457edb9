package ipld

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ipfs/go-cid"
)

// FromGo converts a plain Go value into a Node.
//
// Supported inputs: nil, bool, every signed and unsigned integer width,
// *big.Int, float32, float64, json.Number, string, []byte, []any,
// []*Node, map[string]any, map[string]*Node, map[any]any with string
// keys, cid.Cid, and *Node (returned as is). Anything else fails with
// ErrUnsupported, non-string keys fail with ErrKeyType, and integers
// outside [-2^64, 2^64-1] fail with ErrIntRange.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromUint(uint64(x)), nil
	case uint8:
		return FromUint(uint64(x)), nil
	case uint16:
		return FromUint(uint64(x)), nil
	case uint32:
		return FromUint(uint64(x)), nil
	case uint64:
		return FromUint(x), nil
	case *big.Int:
		return FromBigInt(x)
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return fromNumber(x)
	case string:
		return FromString(x), nil
	case []byte:
		return FromBytes(x), nil
	case cid.Cid:
		return FromLink(x), nil
	case []*Node:
		return FromList(x), nil
	case []any:
		items := make([]*Node, len(x))
		for i, item := range x {
			n, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return FromList(items), nil
	case map[string]*Node:
		return FromMap(x), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, item := range x {
			n, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return FromMap(m), nil
	case map[any]any:
		m := make(map[string]*Node, len(x))
		for k, item := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("key %v (%T): %w", k, k, ErrKeyType)
			}
			n, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			m[ks] = n
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("cannot represent %T: %w", v, ErrUnsupported)
}

func fromNumber(num json.Number) (*Node, error) {
	if i, ok := new(big.Int).SetString(num.String(), 10); ok {
		return FromBigInt(i)
	}
	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %q: %w", num, ErrUnsupported)
	}
	return FromFloat(f), nil
}

// AsGo converts the node back to plain Go values: nil, bool, int64
// (uint64 above the int64 range, *big.Int below it), float64, string,
// []byte, []any, map[string]any and cid.Cid.
func (n *Node) AsGo() any {
	switch n.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return n.Bool
	case IntKind:
		if v, ok := n.Int.Int64(); ok {
			return v
		}
		if v, ok := n.Int.Uint64(); ok {
			return v
		}
		return n.Int.Big()
	case FloatKind:
		return n.Float
	case BytesKind:
		return n.Bytes
	case StringKind:
		return n.String
	case ListKind:
		out := make([]any, len(n.List))
		for i, item := range n.List {
			out[i] = item.AsGo()
		}
		return out
	case MapKind:
		out := make(map[string]any, len(n.Map))
		for i := range n.Map {
			out[n.Map[i].Key] = n.Map[i].Value.AsGo()
		}
		return out
	case LinkKind:
		return n.Link
	}
	return nil
}
