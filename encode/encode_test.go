package encode

import (
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"

	"github.com/signadot/go-dagcbor/ipld"
)

func mustEncode(t *testing.T, n *ipld.Node, opts ...EncodeOption) string {
	t.Helper()
	bs, err := Encode(n, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return hex.EncodeToString(bs)
}

func bigInt(t *testing.T, s string) *ipld.Node {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big int %q", s)
	}
	n, err := ipld.FromBigInt(v)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		node *ipld.Node
		want string
	}{
		{"null", ipld.Null(), "f6"},
		{"false", ipld.FromBool(false), "f4"},
		{"true", ipld.FromBool(true), "f5"},
		{"float 0.5", ipld.FromFloat(0.5), "fb3fe0000000000000"},
		{"float 1.1", ipld.FromFloat(1.1), "fb3ff199999999999a"},
		{"float -0.75", ipld.FromFloat(-0.75), "fbbfe8000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustEncode(t, tt.node); got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeIntWidths(t *testing.T) {
	tests := []struct {
		name string
		node *ipld.Node
		want string
	}{
		{"0", ipld.FromInt(0), "00"},
		{"23", ipld.FromInt(23), "17"},
		{"24", ipld.FromInt(24), "1818"},
		{"255", ipld.FromInt(255), "18ff"},
		{"256", ipld.FromInt(256), "190100"},
		{"65535", ipld.FromInt(65535), "19ffff"},
		{"65536", ipld.FromInt(65536), "1a00010000"},
		{"4294967295", ipld.FromInt(4294967295), "1affffffff"},
		{"4294967296", ipld.FromInt(4294967296), "1b0000000100000000"},
		{"max uint64", ipld.FromUint(math.MaxUint64), "1bffffffffffffffff"},
		{"-1", ipld.FromInt(-1), "20"},
		{"-24", ipld.FromInt(-24), "37"},
		{"-25", ipld.FromInt(-25), "3818"},
		{"-256", ipld.FromInt(-256), "38ff"},
		{"-257", ipld.FromInt(-257), "390100"},
		{"-65537", ipld.FromInt(-65537), "3a00010000"},
		{"min", bigInt(t, "-18446744073709551616"), "3bffffffffffffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustEncode(t, tt.node); got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeStringsAndBytes(t *testing.T) {
	tests := []struct {
		name string
		node *ipld.Node
		want string
	}{
		{"empty string", ipld.FromString(""), "60"},
		{"a", ipld.FromString("a"), "6161"},
		{"hello!", ipld.FromString("hello!"), "6668656c6c6f21"},
		{"empty bytes", ipld.FromBytes(nil), "40"},
		{"bytes", ipld.FromBytes([]byte{1, 2, 3}), "43010203"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustEncode(t, tt.node); got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeContainers(t *testing.T) {
	list := ipld.FromList([]*ipld.Node{
		ipld.FromInt(1),
		ipld.FromInt(2),
		ipld.FromInt(3),
	})
	if got := mustEncode(t, list); got != "83010203" {
		t.Errorf("list = %s", got)
	}

	m := ipld.FromMap(map[string]*ipld.Node{
		"a": ipld.FromInt(12),
		"b": ipld.FromString("hello!"),
	})
	if got := mustEncode(t, m); got != "a261610c61626668656c6c6f21" {
		t.Errorf("map = %s", got)
	}
}

func TestEncodeMapOrderIndependence(t *testing.T) {
	// hand-assembled entries out of order encode identically
	unsorted := &ipld.Node{Kind: ipld.MapKind, Map: []ipld.MapEntry{
		{Key: "b", Value: ipld.FromString("hello!")},
		{Key: "a", Value: ipld.FromInt(12)},
	}}
	if got := mustEncode(t, unsorted); got != "a261610c61626668656c6c6f21" {
		t.Errorf("unsorted map = %s", got)
	}
}

func TestEncodeMapLengthFirstOrder(t *testing.T) {
	m := ipld.FromMap(map[string]*ipld.Node{
		"aa": ipld.FromInt(1),
		"b":  ipld.FromInt(2),
	})
	// "b" sorts before "aa": shorter key first
	if got := mustEncode(t, m); got != "a261620262616101" {
		t.Errorf("map = %s", got)
	}
}

func TestEncodeLink(t *testing.T) {
	mh, err := multihash.Sum([]byte("content"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatal(err)
	}
	c := cid.NewCidV1(uint64(multicodec.DagCbor), mh)

	bs, err := Encode(ipld.FromLink(c))
	if err != nil {
		t.Fatal(err)
	}
	cidBytes := c.Bytes()
	if bs[0] != 0xd8 || bs[1] != 0x2a {
		t.Fatalf("tag head = % x", bs[:2])
	}
	// byte string head for len(cid)+1, then the 0x00 marker
	if bs[2] != 0x58 || int(bs[3]) != len(cidBytes)+1 {
		t.Fatalf("payload head = % x (cid len %d)", bs[2:4], len(cidBytes))
	}
	if bs[4] != 0x00 {
		t.Fatalf("marker byte = %#x", bs[4])
	}
	if got := bs[5:]; string(got) != string(cidBytes) {
		t.Errorf("identifier bytes differ")
	}
}

func TestEncodeMulticodecPrefix(t *testing.T) {
	bs, err := Encode(ipld.FromInt(0), Multicodec(true))
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(bs) != "7100" {
		t.Errorf("Encode() = %x", bs)
	}
}

func TestEncodeToReportsBytesWritten(t *testing.T) {
	node := ipld.FromMap(map[string]*ipld.Node{
		"a": ipld.FromInt(12),
		"b": ipld.FromString("hello!"),
	})
	bs, err := Encode(node)
	if err != nil {
		t.Fatal(err)
	}
	var sink countWriter
	n, err := EncodeTo(node, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(bs) || sink.n != len(bs) {
		t.Errorf("EncodeTo wrote %d (sink %d), want %d", n, sink.n, len(bs))
	}
}

type countWriter struct{ n int }

func (w *countWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}

func TestEncodeNormalization(t *testing.T) {
	decomposed := "é" // NFD for é
	bs, err := Encode(ipld.FromString(decomposed), Normalization(ipld.NFC))
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(bs) != "62c3a9" {
		t.Errorf("Encode(NFD é, NFC) = %x", bs)
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Run("nan", func(t *testing.T) {
		_, err := Encode(ipld.FromFloat(math.NaN()))
		if !errors.Is(err, ErrDisallowedFloat) {
			t.Fatalf("err = %v, want ErrDisallowedFloat", err)
		}
	})
	t.Run("positive inf", func(t *testing.T) {
		_, err := Encode(ipld.FromFloat(math.Inf(1)))
		if !errors.Is(err, ErrDisallowedFloat) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("negative inf", func(t *testing.T) {
		_, err := Encode(ipld.FromFloat(math.Inf(-1)))
		if !errors.Is(err, ErrDisallowedFloat) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := Encode(ipld.FromString("bad \xff byte"))
		if !errors.Is(err, ErrInvalidString) {
			t.Fatalf("err = %v, want ErrInvalidString", err)
		}
	})
	t.Run("duplicate keys", func(t *testing.T) {
		node := &ipld.Node{Kind: ipld.MapKind, Map: []ipld.MapEntry{
			{Key: "k", Value: ipld.FromInt(1)},
			{Key: "k", Value: ipld.FromInt(2)},
		}}
		_, err := Encode(node)
		if !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("err = %v, want ErrDuplicateKey", err)
		}
	})
	t.Run("undefined link", func(t *testing.T) {
		_, err := Encode(ipld.FromLink(cid.Undef))
		if !errors.Is(err, ErrUndefinedLink) {
			t.Fatalf("err = %v, want ErrUndefinedLink", err)
		}
	})
	t.Run("nil child", func(t *testing.T) {
		_, err := Encode(ipld.FromList([]*ipld.Node{nil}))
		if !errors.Is(err, ipld.ErrUnsupported) {
			t.Fatalf("err = %v, want ErrUnsupported", err)
		}
	})
}

func TestEncodeErrorPath(t *testing.T) {
	node := ipld.FromList([]*ipld.Node{
		ipld.FromInt(0),
		ipld.FromMap(map[string]*ipld.Node{
			"x": ipld.FromFloat(math.NaN()),
		}),
	})
	_, err := Encode(node)
	var encErr *Error
	if !errors.As(err, &encErr) {
		t.Fatalf("err = %T", err)
	}
	if got := encErr.Path.String(); got != "[1].x" {
		t.Errorf("Path = %q, want %q", got, "[1].x")
	}
}

func TestEncodeNestingLimit(t *testing.T) {
	inner := ipld.FromInt(1)
	node := inner
	for i := 0; i < 5; i++ {
		node = ipld.FromList([]*ipld.Node{node})
	}
	if _, err := Encode(node); err != nil {
		t.Fatalf("depth 5: %v", err)
	}
	_, err := Encode(node, MaxNesting(3))
	if !errors.Is(err, ErrNestingLimit) {
		t.Fatalf("err = %v, want ErrNestingLimit", err)
	}
}
