// Package decode reads canonical DAG-CBOR back into ipld.Node trees,
// rejecting every input that Encode could not have produced.
//
// # Usage
//
//	node, err := decode.Decode(data)
//
// or, pulling from a stream:
//
//	node, err := decode.DecodeReader(r)
//
// By default the input must hold exactly one item. AllowConcat leaves
// the reader positioned after the item instead, so a concatenated
// sequence decodes with repeated calls:
//
//	for {
//	    node, err := decode.DecodeReader(r, decode.AllowConcat(true))
//	    ...
//	}
//
// # Errors
//
// Failures come in two families: ErrFormat for input that is not
// well-formed CBOR, and ErrCanonicalForm for well-formed CBOR that a
// canonical encoder would never emit, such as a non-minimal head
// argument or map keys out of order. Every error is an *Error whose
// Error() renders a multi-line diagnostic quoting the offending bytes
// and their stream positions:
//
//	_, err := decode.Decode(data)
//	if errors.Is(err, decode.ErrCanonicalForm) {
//	    fmt.Println(err)
//	}
//
// errors.Is also answers the specific violation, for example
// decode.ErrExcessiveInt or decode.ErrKeyOrder.
//
// # Related Packages
//
//   - github.com/signadot/go-dagcbor/ipld - decoded value model
//   - github.com/signadot/go-dagcbor/encode - the inverse operation
//   - github.com/signadot/go-dagcbor/stream - read position tracking
package decode
