// Package ipld provides the value model for DAG-CBOR data.
//
// # Overview
//
// The package defines the tree representation shared by the encoder and
// the decoder. A value is one of nine kinds: null, boolean, integer,
// float, byte string, text string, list, map with text keys, or link
// (a content identifier, cid.Cid). Every value is an ipld.Node.
//
// The Node works as a recursive tagged union structure, where the value
// is placed in a field selected by the node kind.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ipld.FromString("hello")
//	num := ipld.FromInt(42)
//	obj := ipld.FromMap(map[string]*ipld.Node{
//	    "key": ipld.FromString("value"),
//	})
//	arr := ipld.FromList([]*ipld.Node{
//	    ipld.FromInt(1),
//	    ipld.FromInt(2),
//	})
//
// FromGo converts untyped data, such as the output of encoding/json or
// a YAML parser, in one call:
//
//	node, err := ipld.FromGo(map[string]any{"a": 12, "b": "hello!"})
//
// # Integers
//
// Integers cover [-2^64, 2^64-1], one bit more than both int64 and
// uint64. The Int type holds them as a sign and magnitude pair, and
// arbitrary precision input goes through IntFromBig, which fails with
// ErrIntRange outside the interval. The interval is exactly what the
// binary form can express, so a constructed node always encodes.
//
// # Maps
//
// Map keys are text strings. The canonical key order (CompareKeys)
// sorts shorter keys first and equal lengths bytewise. FromMap and
// FromEntries store entries canonically ordered; FromEntries rejects
// duplicate keys. Entries assembled by hand may be in any order, the
// encoder sorts on its own.
//
// # Paths
//
// A Path addresses a node inside a tree by map keys and list indexes,
// rendering as, for example, `a.b[0]`. Encoding errors carry Paths to
// pinpoint the offending value. Resolve walks a path down a tree.
//
// # Thread Safety
//
// Nodes are not synchronized. Share them between goroutines only while
// no goroutine mutates them.
package ipld
