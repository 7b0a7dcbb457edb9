package ipld

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Nodes of different kinds order by kind rank.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Kind)
	rankB := rank(b.Kind)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Kind {
	case NullKind:
		return 0
	case BoolKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntKind:
		return a.Int.Cmp(b.Int)
	case FloatKind:
		return cmp.Compare(a.Float, b.Float)
	case BytesKind:
		return bytes.Compare(a.Bytes, b.Bytes)
	case StringKind:
		return strings.Compare(a.String, b.String)
	case ListKind:
		return compareLists(a, b)
	case MapKind:
		return compareMaps(a, b)
	case LinkKind:
		return bytes.Compare(a.Link.Bytes(), b.Link.Bytes())
	}
	return 0
}

// Equal reports whether two nodes hold the same value. Map entry order
// does not matter.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a kind.
// Order: Null < Bool < Int < Float < Bytes < String < List < Map < Link
func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case BoolKind:
		return 1
	case IntKind:
		return 2
	case FloatKind:
		return 3
	case BytesKind:
		return 4
	case StringKind:
		return 5
	case ListKind:
		return 6
	case MapKind:
		return 7
	case LinkKind:
		return 8
	}
	return 100
}

func compareLists(a, b *Node) int {
	lenA := len(a.List)
	lenB := len(b.List)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.List[i], b.List[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareMaps(a, b *Node) int {
	// Entry order is representation detail, so compare canonically
	// sorted views.
	as := slices.Clone(a.Map)
	bs := slices.Clone(b.Map)
	SortEntries(as)
	SortEntries(bs)

	minLen := min(len(as), len(bs))
	for i := 0; i < minLen; i++ {
		if c := CompareKeys(as[i].Key, bs[i].Key); c != 0 {
			return c
		}
		if c := Compare(as[i].Value, bs[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}
