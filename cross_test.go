package dagcbor

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/go-dagcbor/ipld"
)

// fxamacker's CTAP2 canonical mode matches dag-cbor on link-free
// values: minimal integer heads, full-width floats, length-first key
// order, no indefinite lengths, no tags. It serves as an independent
// oracle for both directions of the codec.
func ctap2Modes(t *testing.T) (cbor.EncMode, cbor.DecMode) {
	t.Helper()
	em, err := cbor.CTAP2EncOptions().EncMode()
	if err != nil {
		t.Fatal(err)
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		t.Fatal(err)
	}
	return em, dm
}

func crossVectors() []any {
	return []any{
		nil,
		true,
		false,
		int64(0),
		int64(23),
		int64(24),
		int64(255),
		int64(256),
		int64(65535),
		int64(65536),
		int64(1) << 32,
		int64(-1),
		int64(-24),
		int64(-25),
		int64(-256),
		int64(-257),
		float64(0),
		float64(0.5),
		float64(-1.25),
		float64(1e10),
		"",
		"a",
		"hello!",
		"héllo",
		[]byte{},
		[]byte{1, 2, 3},
		[]any{},
		[]any{int64(1), "x", nil},
		map[string]any{},
		map[string]any{"a": int64(12), "b": "hello!"},
		map[string]any{"aa": []any{int64(1)}, "b": map[string]any{"c": false}},
	}
}

func TestCrossEncode(t *testing.T) {
	em, _ := ctap2Modes(t)
	for i, v := range crossVectors() {
		node, err := ipld.FromGo(v)
		if err != nil {
			t.Fatalf("vector %d (%v): FromGo: %v", i, v, err)
		}
		ours, err := Encode(node)
		if err != nil {
			t.Fatalf("vector %d (%v): encode: %v", i, v, err)
		}
		theirs, err := em.Marshal(v)
		if err != nil {
			t.Fatalf("vector %d (%v): oracle encode: %v", i, v, err)
		}
		if !bytes.Equal(ours, theirs) {
			t.Errorf("vector %d (%v): encoded %x, oracle produced %x", i, v, ours, theirs)
		}
	}
}

func TestCrossDecode(t *testing.T) {
	em, dm := ctap2Modes(t)
	for i, v := range crossVectors() {
		theirs, err := em.Marshal(v)
		if err != nil {
			t.Fatalf("vector %d (%v): oracle encode: %v", i, v, err)
		}
		node, err := Decode(theirs)
		if err != nil {
			t.Fatalf("vector %d (%v): decode of oracle bytes %x: %v", i, v, theirs, err)
		}
		if diff := cmp.Diff(v, node.AsGo()); diff != "" {
			t.Errorf("vector %d: decoded value differs (-want +got):\n%s", i, diff)
		}
		// and the oracle accepts our bytes
		node2, err := ipld.FromGo(v)
		if err != nil {
			t.Fatal(err)
		}
		ours, err := Encode(node2)
		if err != nil {
			t.Fatal(err)
		}
		var back any
		if err := dm.Unmarshal(ours, &back); err != nil {
			t.Errorf("vector %d (%v): oracle rejects our bytes %x: %v", i, v, ours, err)
		}
	}
}
