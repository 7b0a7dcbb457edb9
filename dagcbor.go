package dagcbor

import (
	"io"

	"github.com/signadot/go-dagcbor/decode"
	"github.com/signadot/go-dagcbor/encode"
	"github.com/signadot/go-dagcbor/ipld"
)

// Encode returns the canonical encoding of node.
func Encode(node *ipld.Node, opts ...encode.EncodeOption) ([]byte, error) {
	return encode.Encode(node, opts...)
}

// EncodeTo writes the canonical encoding of node to w and returns the
// number of bytes written.
func EncodeTo(node *ipld.Node, w io.Writer, opts ...encode.EncodeOption) (int, error) {
	return encode.EncodeTo(node, w, opts...)
}

// Decode decodes a single item from data, rejecting non-canonical
// input and trailing bytes.
func Decode(data []byte, opts ...decode.DecodeOption) (*ipld.Node, error) {
	return decode.Decode(data, opts...)
}

// DecodeReader decodes a single item from r. See decode.AllowConcat
// for decoding a concatenated sequence of items.
func DecodeReader(r io.Reader, opts ...decode.DecodeOption) (*ipld.Node, error) {
	return decode.DecodeReader(r, opts...)
}
