package decode

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"

	"github.com/signadot/go-dagcbor/encode"
	"github.com/signadot/go-dagcbor/ipld"
)

func FuzzDecode(f *testing.F) {
	seeds := []string{
		"00",
		"17",
		"1818",
		"1bffffffffffffffff",
		"20",
		"3bffffffffffffffff",
		"f4",
		"f5",
		"f6",
		"fb3ff199999999999a",
		"40",
		"4401020304",
		"60",
		"6161",
		"62c3a9",
		"80",
		"83010203",
		"a0",
		"a261610c61626668656c6c6f21",
		"8301820203a161628100",
		"1817",
		"fb7ff8000000000000",
		"f7",
		"d829",
		"d82a01",
		"d82a40",
		"a2616101616102",
		"656869",
		"0102",
	}
	for _, s := range seeds {
		bs, err := hex.DecodeString(s)
		if err != nil {
			f.Fatalf("bad seed %q", s)
		}
		f.Add(bs)
	}
	mh, err := multihash.Sum([]byte("seed"), multihash.SHA2_256, -1)
	if err != nil {
		f.Fatal(err)
	}
	link, err := encode.Encode(ipld.FromLink(cid.NewCidV1(uint64(multicodec.DagCbor), mh)))
	if err != nil {
		f.Fatal(err)
	}
	f.Add(link)
	f.Fuzz(func(t *testing.T, data []byte) {
		node, err := Decode(data)
		if err != nil {
			// decode errors are expected for arbitrary input, but they
			// must be structured and carry a message
			var de *Error
			if !errors.As(err, &de) {
				t.Fatalf("Decode returned %T: %v", err, err)
			}
			if de.Error() == "" {
				t.Fatal("decode error with empty message")
			}
			if !errors.Is(de, ErrFormat) && !errors.Is(de, ErrCanonicalForm) && !errors.Is(de, ErrNestingLimit) {
				t.Fatalf("decode error outside both families: %v", de)
			}
			return
		}
		// canonical form means a decoded item re-encodes to the exact
		// input bytes
		out, err := encode.Encode(node)
		if err != nil {
			t.Fatalf("re-encode of decoded item failed: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Errorf("re-encode changed bytes: got %x, want %x", out, data)
		}
	})
}
