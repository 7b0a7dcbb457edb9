package encode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"

	"github.com/signadot/go-dagcbor/ipld"
)

const (
	majorUint   = 0
	majorNegint = 1
	majorBytes  = 2
	majorText   = 3
	majorList   = 4
	majorMap    = 5
	majorTag    = 6
	majorSimple = 7
)

const (
	argUint8  = 24
	argUint16 = 25
	argUint32 = 26
	argUint64 = 27
)

const (
	simpleFalse = 20
	simpleTrue  = 21
)

const (
	simpleNull = 22
	linkTag    = 42
)

// DefaultMaxNesting bounds the recursion depth of the encoder.
const DefaultMaxNesting = 10000

type EncState struct {
	multicodec bool
	norm       ipld.Normalization
	maxNesting int

	path []ipld.Segment
}

// Encode returns the canonical binary form of node.
func Encode(node *ipld.Node, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := EncodeTo(node, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the canonical binary form of node to w and returns
// the number of bytes written.
func EncodeTo(node *ipld.Node, w io.Writer, opts ...EncodeOption) (int, error) {
	es := &EncState{
		maxNesting: DefaultMaxNesting,
	}
	for _, opt := range opts {
		opt(es)
	}
	total := 0
	if es.multicodec {
		n, err := w.Write(varint.ToUvarint(uint64(multicodec.DagCbor)))
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := encode(node, w, es)
	return total + n, err
}

func encode(node *ipld.Node, w io.Writer, es *EncState) (int, error) {
	if node == nil {
		return 0, es.errAt(fmt.Errorf("nil node: %w", ipld.ErrUnsupported))
	}
	switch node.Kind {
	case ipld.NullKind:
		return writeHead(w, majorSimple, simpleNull)
	case ipld.BoolKind:
		if node.Bool {
			return writeHead(w, majorSimple, simpleTrue)
		}
		return writeHead(w, majorSimple, simpleFalse)
	case ipld.IntKind:
		if node.Int.Neg {
			return writeHead(w, majorNegint, node.Int.Mag)
		}
		return writeHead(w, majorUint, node.Int.Mag)
	case ipld.FloatKind:
		return encodeFloat(node.Float, w, es)
	case ipld.BytesKind:
		n, err := writeHead(w, majorBytes, uint64(len(node.Bytes)))
		if err != nil {
			return n, err
		}
		m, err := w.Write(node.Bytes)
		return n + m, err
	case ipld.StringKind:
		return encodeString(node.String, w, es)
	case ipld.ListKind:
		return encodeList(node, w, es)
	case ipld.MapKind:
		return encodeMap(node, w, es)
	case ipld.LinkKind:
		return encodeLink(node, w, es)
	}
	return 0, es.errAt(fmt.Errorf("kind %s: %w", node.Kind, ipld.ErrUnsupported))
}

func encodeFloat(f float64, w io.Writer, es *EncState) (int, error) {
	if math.IsNaN(f) {
		return 0, es.errAt(fmt.Errorf("%w: NaN", ErrDisallowedFloat))
	}
	if math.IsInf(f, 1) {
		return 0, es.errAt(fmt.Errorf("%w: +Infinity", ErrDisallowedFloat))
	}
	if math.IsInf(f, -1) {
		return 0, es.errAt(fmt.Errorf("%w: -Infinity", ErrDisallowedFloat))
	}
	var scratch [9]byte
	scratch[0] = majorSimple<<5 | argUint64
	binary.BigEndian.PutUint64(scratch[1:], math.Float64bits(f))
	return w.Write(scratch[:])
}

func encodeString(s string, w io.Writer, es *EncState) (int, error) {
	if !utf8.ValidString(s) {
		return 0, es.errAt(ErrInvalidString)
	}
	s = es.norm.Apply(s)
	n, err := writeHead(w, majorText, uint64(len(s)))
	if err != nil {
		return n, err
	}
	m, err := io.WriteString(w, s)
	return n + m, err
}

func encodeList(node *ipld.Node, w io.Writer, es *EncState) (int, error) {
	if len(es.path) >= es.maxNesting {
		return 0, es.errAt(ErrNestingLimit)
	}
	total, err := writeHead(w, majorList, uint64(len(node.List)))
	if err != nil {
		return total, err
	}
	for i, item := range node.List {
		es.path = append(es.path, ipld.IndexSegment(i))
		n, err := encode(item, w, es)
		es.path = es.path[:len(es.path)-1]
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func encodeMap(node *ipld.Node, w io.Writer, es *EncState) (int, error) {
	if len(es.path) >= es.maxNesting {
		return 0, es.errAt(ErrNestingLimit)
	}
	// Sort a copy into canonical key order. Normalization happens
	// before sorting so the emitted order matches the emitted keys.
	entries := slices.Clone(node.Map)
	if es.norm != ipld.NoNormalization {
		for i := range entries {
			entries[i].Key = es.norm.Apply(entries[i].Key)
		}
	}
	ipld.SortEntries(entries)
	for i := 1; i < len(entries); i++ {
		if entries[i].Key == entries[i-1].Key {
			return 0, es.errAt(fmt.Errorf("key %q: %w", entries[i].Key, ErrDuplicateKey))
		}
	}
	total, err := writeHead(w, majorMap, uint64(len(entries)))
	if err != nil {
		return total, err
	}
	for i := range entries {
		es.path = append(es.path, ipld.KeySegment(entries[i].Key))
		n, err := encodeString(entries[i].Key, w, es)
		total += n
		if err == nil {
			var m int
			m, err = encode(entries[i].Value, w, es)
			total += m
		}
		es.path = es.path[:len(es.path)-1]
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func encodeLink(node *ipld.Node, w io.Writer, es *EncState) (int, error) {
	if !node.Link.Defined() {
		return 0, es.errAt(ErrUndefinedLink)
	}
	total, err := writeHead(w, majorTag, linkTag)
	if err != nil {
		return total, err
	}
	// The identifier is wrapped as a byte string with one leading
	// 0x00 marker byte.
	cidBytes := node.Link.Bytes()
	var scratch [10]byte
	n := putHead(scratch[:], majorBytes, uint64(len(cidBytes)+1))
	scratch[n] = 0x00
	n, err = w.Write(scratch[:n+1])
	total += n
	if err != nil {
		return total, err
	}
	n, err = w.Write(cidBytes)
	return total + n, err
}

// putHead writes a data item head into dst using the smallest argument
// width that holds arg, returning the number of bytes used.
func putHead(dst []byte, major byte, arg uint64) int {
	switch {
	case arg < 24:
		dst[0] = major<<5 | byte(arg)
		return 1
	case arg <= math.MaxUint8:
		dst[0] = major<<5 | argUint8
		dst[1] = byte(arg)
		return 2
	case arg <= math.MaxUint16:
		dst[0] = major<<5 | argUint16
		binary.BigEndian.PutUint16(dst[1:], uint16(arg))
		return 3
	case arg <= math.MaxUint32:
		dst[0] = major<<5 | argUint32
		binary.BigEndian.PutUint32(dst[1:], uint32(arg))
		return 5
	default:
		dst[0] = major<<5 | argUint64
		binary.BigEndian.PutUint64(dst[1:], arg)
		return 9
	}
}

func writeHead(w io.Writer, major byte, arg uint64) (int, error) {
	var scratch [9]byte
	n := putHead(scratch[:], major, arg)
	return w.Write(scratch[:n])
}

func (es *EncState) errAt(err error) error {
	return &Error{Err: err, Path: ipld.NewPath(es.path...)}
}
