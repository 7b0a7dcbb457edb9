package ipld

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/ipfs/go-cid"
)

// Node is one value in the data model tree. It works as a tagged union:
// Kind selects which variant field carries the value, and the remaining
// fields are zero.
//
// Map entries produced by the constructors and the decoder are held in
// canonical key order (see KeyLess). Entries assembled by hand may be in
// any order; the encoder sorts on its own and rejects duplicates.
type Node struct {
	Kind Kind

	Bool   bool
	Int    Int
	Float  float64
	Bytes  []byte
	String string
	List   []*Node
	Map    []MapEntry
	Link   cid.Cid
}

// MapEntry is one key-value pair of a MapKind node.
type MapEntry struct {
	Key   string
	Value *Node
}

func Null() *Node {
	return &Node{Kind: NullKind}
}

func FromBool(v bool) *Node {
	return &Node{Kind: BoolKind, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: IntKind, Int: IntOf(v)}
}

func FromUint(v uint64) *Node {
	return &Node{Kind: IntKind, Int: IntOfUint(v)}
}

func FromBigInt(v *big.Int) (*Node, error) {
	i, err := IntFromBig(v)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: IntKind, Int: i}, nil
}

func FromFloat(v float64) *Node {
	return &Node{Kind: FloatKind, Float: v}
}

func FromBytes(v []byte) *Node {
	return &Node{Kind: BytesKind, Bytes: v}
}

func FromString(v string) *Node {
	return &Node{Kind: StringKind, String: v}
}

func FromList(vs []*Node) *Node {
	return &Node{Kind: ListKind, List: vs}
}

func FromLink(c cid.Cid) *Node {
	return &Node{Kind: LinkKind, Link: c}
}

// FromMap builds a map node with entries in canonical key order.
func FromMap(m map[string]*Node) *Node {
	entries := make([]MapEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	SortEntries(entries)
	return &Node{Kind: MapKind, Map: entries}
}

// FromEntries builds a map node from explicit pairs, sorting them into
// canonical key order. Repeated keys fail with ErrDuplicateKey.
func FromEntries(entries []MapEntry) (*Node, error) {
	es := slices.Clone(entries)
	SortEntries(es)
	for i := 1; i < len(es); i++ {
		if es[i].Key == es[i-1].Key {
			return nil, fmt.Errorf("key %q: %w", es[i].Key, ErrDuplicateKey)
		}
	}
	return &Node{Kind: MapKind, Map: es}, nil
}

// Get returns the value stored under key, or nil if n is not a map or
// has no such key.
func Get(n *Node, key string) *Node {
	if n == nil || n.Kind != MapKind {
		return nil
	}
	for i := range n.Map {
		if n.Map[i].Key == key {
			return n.Map[i].Value
		}
	}
	return nil
}

// CompareKeys orders map keys canonically: shorter UTF-8 encodings sort
// first, keys of equal length sort bytewise.
func CompareKeys(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// KeyLess reports whether a sorts before b in canonical key order.
func KeyLess(a, b string) bool {
	return CompareKeys(a, b) < 0
}

// SortEntries sorts entries in place into canonical key order.
func SortEntries(entries []MapEntry) {
	slices.SortFunc(entries, func(a, b MapEntry) int {
		return CompareKeys(a.Key, b.Key)
	})
}
