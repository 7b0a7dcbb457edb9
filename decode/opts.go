package decode

import "github.com/signadot/go-dagcbor/ipld"

type DecodeOption func(*DecState)

// DecodeCallback observes decoded items. It runs once per item in
// post order with the number of bytes that item consumed.
type DecodeCallback func(n *ipld.Node, bytesRead int)

// AllowConcat leaves bytes after the first item unread instead of
// rejecting them, so several items can be decoded off one reader.
func AllowConcat(v bool) DecodeOption {
	return func(ds *DecState) { ds.allowConcat = v }
}

// RequireMulticodec demands the dag-cbor multicodec varint prefix
// before the item.
func RequireMulticodec(v bool) DecodeOption {
	return func(ds *DecState) { ds.requireMulticodec = v }
}

// Callback registers fn to observe every decoded item. Containers
// report their head bytes only and map keys report as string nodes. A
// link reports its tag head plus payload while the payload byte
// string itself stays silent, so the counts over one item always sum
// to its encoded length.
func Callback(fn DecodeCallback) DecodeOption {
	return func(ds *DecState) { ds.callback = fn }
}

// Normalization applies the given Unicode normalization form to every
// decoded text string, including map keys.
func Normalization(f ipld.Normalization) DecodeOption {
	return func(ds *DecState) { ds.norm = f }
}

// MaxNesting overrides the recursion depth limit.
func MaxNesting(n int) DecodeOption {
	return func(ds *DecState) { ds.maxNesting = n }
}
