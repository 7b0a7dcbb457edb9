// Package encode turns ipld.Node trees into their canonical binary
// form.
//
// # Usage
//
//	bs, err := encode.Encode(node)
//
// or, writing to a stream:
//
//	n, err := encode.EncodeTo(node, w)
//
// Every value has exactly one encoding: head arguments use the
// smallest width that holds them, floats are always 8 byte doubles,
// and map entries are emitted in canonical key order (shortest key
// first, ties bytewise). NaN and infinite floats, invalid UTF-8 and
// duplicate map keys have no encoding and fail with an *Error carrying
// the path of the offending value:
//
//	_, err := encode.Encode(node)
//	var encErr *encode.Error
//	if errors.As(err, &encErr) {
//	    fmt.Println(encErr.Path)
//	}
//
// Options add the multicodec prefix, apply Unicode normalization to
// text, or adjust the nesting limit:
//
//	bs, err := encode.Encode(node, encode.Multicodec(true))
package encode
