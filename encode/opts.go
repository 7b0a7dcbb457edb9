package encode

import "github.com/signadot/go-dagcbor/ipld"

type EncodeOption func(*EncState)

// Multicodec prefixes the output with the dag-cbor multicodec code as
// an unsigned varint.
func Multicodec(v bool) EncodeOption {
	return func(es *EncState) { es.multicodec = v }
}

// Normalization applies the given Unicode normalization form to every
// text string, including map keys, before encoding.
func Normalization(f ipld.Normalization) EncodeOption {
	return func(es *EncState) { es.norm = f }
}

// MaxNesting overrides the recursion depth limit.
func MaxNesting(n int) EncodeOption {
	return func(es *EncState) { es.maxNesting = n }
}
