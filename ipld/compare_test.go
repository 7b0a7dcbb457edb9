package ipld

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Kind Ranking: Null < Bool < Int < Float < Bytes < String < List < Map < Link
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Int", FromBool(true), FromInt(1), -1},
		{"Int < Float", FromInt(1), FromFloat(1.0), -1},
		{"Float < Bytes", FromFloat(1.0), FromBytes(nil), -1},
		{"Bytes < String", FromBytes([]byte("a")), FromString("a"), -1},
		{"String < List", FromString("a"), FromList(nil), -1},
		{"List < Map", FromList(nil), FromMap(nil), -1},

		// Bool Comparison
		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// Int Comparison
		{"1 < 2", FromInt(1), FromInt(2), -1},
		{"-2 < -1", FromInt(-2), FromInt(-1), -1},
		{"-1 < 0", FromInt(-1), FromInt(0), -1},
		{"uint range", FromInt(1), FromUint(1<<63 + 1), -1},

		// Float and bytes
		{"1.5 < 2.5", FromFloat(1.5), FromFloat(2.5), -1},
		{"bytes prefix", FromBytes([]byte{1}), FromBytes([]byte{1, 2}), -1},

		// List Comparison
		{"empty lists", FromList(nil), FromList(nil), 0},
		{"short list first", FromList([]*Node{FromInt(1)}), FromList([]*Node{FromInt(1), FromInt(2)}), -1},
		{"list element", FromList([]*Node{FromInt(1)}), FromList([]*Node{FromInt(2)}), -1},

		// Map Comparison
		{"empty maps", FromMap(nil), FromMap(nil), 0},
		{"map key", FromMap(map[string]*Node{"a": FromInt(1)}), FromMap(map[string]*Node{"b": FromInt(1)}), -1},
		{"map value", FromMap(map[string]*Node{"a": FromInt(1)}), FromMap(map[string]*Node{"a": FromInt(2)}), -1},
		{"map size", FromMap(map[string]*Node{"a": FromInt(1)}), FromMap(map[string]*Node{"a": FromInt(1), "b": FromInt(2)}), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestEqualMapOrderInsensitive(t *testing.T) {
	a := &Node{Kind: MapKind, Map: []MapEntry{
		{Key: "xy", Value: FromInt(1)},
		{Key: "a", Value: FromInt(2)},
	}}
	b := &Node{Kind: MapKind, Map: []MapEntry{
		{Key: "a", Value: FromInt(2)},
		{Key: "xy", Value: FromInt(1)},
	}}
	if !Equal(a, b) {
		t.Errorf("maps with same entries in different order compare unequal")
	}
}
