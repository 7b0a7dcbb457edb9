// Package dagcbor implements the strict, canonical subset of CBOR
// used for content-addressed data: one encoding per value, and a
// decoder that rejects every byte sequence the encoder could not have
// produced.
//
// # Usage
//
//	node := ipld.FromMap(map[string]*ipld.Node{
//	    "a": ipld.FromInt(12),
//	    "b": ipld.FromString("hello!"),
//	})
//	bs, err := dagcbor.Encode(node)
//	// bs = a2 61 61 0c 61 62 66 68 65 6c 6c 6f 21
//	back, err := dagcbor.Decode(bs)
//
// Values cover the nine IPLD data model kinds: null, bool, integers
// in [-2^64, 2^64-1], 64 bit floats, byte strings, text strings,
// lists, maps with text keys, and links (CIDs, encoded as tag 42).
// Canonical form means minimal-width head arguments, full-width
// floats with NaN and infinities excluded, map keys unique and sorted
// shortest first then bytewise, and a single top-level item.
//
// Content addressing needs the encoding to be a bijection on the
// value domain, so the decoder treats any deviation as an error
// rather than a variant: Decode(bs) succeeding implies
// Encode(Decode(bs)) == bs.
//
// Payloads framed with the dag-cbor multicodec code (a varint 0x71
// prefix) are produced with encode.Multicodec(true) and checked with
// decode.RequireMulticodec(true).
//
// The heavy lifting lives in the subpackages: ipld holds the value
// model, encode and decode the codec halves, and stream the byte
// position tracking behind decode's diagnostics. This package just
// re-exposes the codec entry points.
package dagcbor
