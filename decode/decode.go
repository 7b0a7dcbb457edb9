package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
	"github.com/signadot/go-dagcbor/ipld"
	"github.com/signadot/go-dagcbor/stream"
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
	simpleNull  = 22

	linkTag = 42
)

// DefaultMaxNesting bounds the recursion depth of the decoder.
const DefaultMaxNesting = 10000

// bodyChunk caps how much a single string read allocates up front, so
// a declared length near 2^64 cannot force a giant allocation before
// the input runs out.
const bodyChunk = 1 << 16

// DecState carries the decoding options through one Decode call.
type DecState struct {
	allowConcat       bool
	requireMulticodec bool
	callback          DecodeCallback
	norm              ipld.Normalization
	maxNesting        int
}

// Decode decodes a single DAG-CBOR item from data. Unless AllowConcat
// is set, data must contain exactly one item.
func Decode(data []byte, opts ...DecodeOption) (*ipld.Node, error) {
	return DecodeReader(bytes.NewReader(data), opts...)
}

// DecodeReader decodes a single DAG-CBOR item from r. Unless
// AllowConcat is set the reader is drained and any trailing byte is an
// error; with AllowConcat the reader is left positioned after the item
// so repeated calls decode a concatenated sequence.
func DecodeReader(r io.Reader, opts ...DecodeOption) (*ipld.Node, error) {
	ds := &DecState{maxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(ds)
	}
	s := stream.New(r)
	if ds.requireMulticodec {
		if err := readMulticodec(s); err != nil {
			return nil, err
		}
	}
	node, _, err := decodeItem(ds, s, 0)
	if err != nil {
		return nil, err
	}
	if !ds.allowConcat {
		rest, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		if len(rest) > 0 {
			return nil, errTrailingData(s)
		}
	}
	return node, nil
}

// readMulticodec consumes the varint multicodec prefix and checks it
// names dag-cbor. The prefix goes through the stream so positions in
// later diagnostics account for it.
func readMulticodec(s *stream.Stream) error {
	res, err := s.Read(1)
	if err != nil {
		return err
	}
	if len(res) < 1 {
		return errUnexpectedEOF(s, "leading byte of multicodec prefix", 1, false)
	}
	for res[0]&0x80 != 0 {
		if s.Current().Len() >= varint.MaxLenUvarint63 {
			break
		}
		res, err = s.ReadExtend(1)
		if err != nil {
			return err
		}
		if len(res) < 1 {
			return errUnexpectedEOF(s, "continuation byte of multicodec prefix", 1, true)
		}
	}
	code, _, err := varint.FromUvarint(s.Current().Bytes())
	if err != nil || code != uint64(multicodec.DagCbor) {
		return errRequiredMulticodec(s)
	}
	return nil
}

// decodeItem decodes one item. depth counts the containers enclosing
// it. The int returned is the byte count reported to the callback:
// full size for scalars and strings, head only for lists and maps,
// head plus payload for links.
func decodeItem(ds *DecState, s *stream.Stream, depth int) (*ipld.Node, int, error) {
	major, arg, isFloat, headLen, err := decodeHead(s)
	if err != nil {
		return nil, 0, err
	}
	var node *ipld.Node
	total := headLen
	switch {
	case isFloat:
		f := math.Float64frombits(arg)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, 0, errDisallowedFloat(s, f)
		}
		node = ipld.FromFloat(f)
	case major == majorUint:
		node = ipld.FromUint(arg)
	case major == majorNegint:
		node = &ipld.Node{Kind: ipld.IntKind, Int: ipld.Int{Neg: true, Mag: arg}}
	case major == majorBytes:
		body, err := readBody(s, arg, "byte string")
		if err != nil {
			return nil, 0, err
		}
		node = ipld.FromBytes(body)
		total += len(body)
	case major == majorText:
		raw, text, err := readText(ds, s, arg)
		if err != nil {
			return nil, 0, err
		}
		node = ipld.FromString(text)
		total += len(raw)
	case major == majorList:
		node, err = decodeList(ds, s, arg, depth)
		if err != nil {
			return nil, 0, err
		}
	case major == majorMap:
		node, err = decodeMap(ds, s, arg, depth)
		if err != nil {
			return nil, 0, err
		}
	case major == majorTag:
		var n int
		node, n, err = decodeLink(ds, s, arg, depth)
		if err != nil {
			return nil, 0, err
		}
		total += n
	default:
		switch arg {
		case simpleFalse:
			node = ipld.FromBool(false)
		case simpleTrue:
			node = ipld.FromBool(true)
		case simpleNull:
			node = ipld.Null()
		default:
			return nil, 0, errSimpleValue(s, arg)
		}
	}
	if ds.callback != nil {
		ds.callback(node, total)
	}
	return node, total, nil
}

// decodeHead reads a data item head and enforces minimal-width
// encoding of the argument. The leading byte and the argument bytes
// are separate reads so failure diagnostics can show them apart. For
// major type 7 with a 8 byte argument, the argument holds float bits
// and isFloat is set.
func decodeHead(s *stream.Stream) (major byte, arg uint64, isFloat bool, n int, err error) {
	res, err := s.Read(1)
	if err != nil {
		return 0, 0, false, 0, err
	}
	if len(res) < 1 {
		return 0, 0, false, 0, errUnexpectedEOF(s, "leading byte of data item head", 1, false)
	}
	lead := res[0]
	major = lead >> 5
	info := lead & 0x1f
	if info < argUint8 {
		return major, uint64(info), false, 1, nil
	}
	if info > argUint64 || (major == majorSimple && info != argUint64) {
		return 0, 0, false, 0, errInvalidInfo(s, info, major)
	}
	nArg := 1 << (info - argUint8)
	res, err = s.Read(nArg)
	if err != nil {
		return 0, 0, false, 0, err
	}
	if len(res) < nArg {
		return 0, 0, false, 0, errUnexpectedEOF(s,
			fmt.Sprintf("%d byte argument of data item head", nArg), uint64(nArg), true)
	}
	switch info {
	case argUint8:
		arg = uint64(res[0])
		if arg < 24 {
			return 0, 0, false, 0, errExcessiveInt(s, arg, 1, 0)
		}
		return major, arg, false, 2, nil
	case argUint16:
		arg = uint64(binary.BigEndian.Uint16(res))
		if arg <= 255 {
			return 0, 0, false, 0, errExcessiveInt(s, arg, 2, 1)
		}
		return major, arg, false, 3, nil
	case argUint32:
		arg = uint64(binary.BigEndian.Uint32(res))
		if arg <= 65535 {
			if arg <= 255 {
				return 0, 0, false, 0, errExcessiveInt(s, arg, 4, 1)
			}
			return 0, 0, false, 0, errExcessiveInt(s, arg, 4, 2)
		}
		return major, arg, false, 5, nil
	}
	arg = binary.BigEndian.Uint64(res)
	if major == majorSimple {
		return major, arg, true, 9, nil
	}
	if arg <= 4294967295 {
		if arg <= 255 {
			return 0, 0, false, 0, errExcessiveInt(s, arg, 8, 1)
		}
		if arg <= 65535 {
			return 0, 0, false, 0, errExcessiveInt(s, arg, 8, 2)
		}
		return 0, 0, false, 0, errExcessiveInt(s, arg, 8, 4)
	}
	return major, arg, false, 9, nil
}

// readBody reads length payload bytes as one logical read, pulling in
// bounded chunks. The returned slice is the current snapshot's chunk.
func readBody(s *stream.Stream, length uint64, what string) ([]byte, error) {
	n := length
	if n > bodyChunk {
		n = bodyChunk
	}
	res, err := s.Read(int(n))
	if err != nil {
		return nil, err
	}
	got := uint64(len(res))
	short := got < n
	for !short && got < length {
		m := length - got
		if m > bodyChunk {
			m = bodyChunk
		}
		res, err = s.ReadExtend(int(m))
		if err != nil {
			return nil, err
		}
		got += uint64(len(res))
		short = uint64(len(res)) < m
	}
	if got < length {
		return nil, errUnexpectedEOF(s, fmt.Sprintf("%d bytes of %s", length, what), length, true)
	}
	return s.Current().Bytes(), nil
}

// readText reads a text string body, validates it and applies the
// configured normalization. raw is the string as read off the wire.
func readText(ds *DecState, s *stream.Stream, length uint64) (raw, text string, err error) {
	body, err := readBody(s, length, "string")
	if err != nil {
		return "", "", err
	}
	if start, end, reason, bad := utf8Fault(body); bad {
		return "", "", errInvalidUTF8(s, length, start, end, reason)
	}
	raw = string(body)
	text = raw
	if ds.norm != ipld.NoNormalization {
		text = ds.norm.Apply(text)
	}
	return raw, text, nil
}

func decodeList(ds *DecState, s *stream.Stream, length uint64, depth int) (*ipld.Node, error) {
	if depth >= ds.maxNesting {
		return nil, errNestingLimit(s, ds.maxNesting)
	}
	head := s.Current()
	elems := make([]*ipld.Node, 0, min(length, 1024))
	for idx := uint64(0); idx < length; idx++ {
		item, _, err := decodeItem(ds, s, depth+1)
		if err != nil {
			return nil, wrapNested(err, func(de *Error) *Error {
				return errListItem(head, idx, length, de)
			})
		}
		elems = append(elems, item)
	}
	return ipld.FromList(elems), nil
}

func decodeMap(ds *DecState, s *stream.Stream, length uint64, depth int) (*ipld.Node, error) {
	if depth >= ds.maxNesting {
		return nil, errNestingLimit(s, ds.maxNesting)
	}
	head := s.Current()
	entries := make([]ipld.MapEntry, 0, min(length, 1024))
	rawKeys := make([]string, 0, min(length, 1024))
	seen := make(map[string]struct{}, min(length, 1024))
	for idx := uint64(0); idx < length; idx++ {
		key, raw, err := decodeMapKey(ds, s)
		if err != nil {
			return nil, wrapNested(err, func(de *Error) *Error {
				return errMapItem(head, "key", idx, length, de)
			})
		}
		if _, dup := seen[key]; dup {
			return nil, errDuplicateKey(head, s, key, idx, length)
		}
		seen[key] = struct{}{}
		val, _, err := decodeItem(ds, s, depth+1)
		if err != nil {
			return nil, wrapNested(err, func(de *Error) *Error {
				return errMapItem(head, "value", idx, length, de)
			})
		}
		entries = append(entries, ipld.MapEntry{Key: key, Value: val})
		rawKeys = append(rawKeys, raw)
	}
	// keys must arrive in canonical order of their wire bytes
	sorted := slices.Clone(rawKeys)
	slices.SortFunc(sorted, ipld.CompareKeys)
	for idx0 := range rawKeys {
		if rawKeys[idx0] != sorted[idx0] {
			kb1 := sorted[idx0]
			idx1 := slices.Index(rawKeys, kb1)
			return nil, errKeyOrder(head, rawKeys[idx0], idx0, kb1, idx1, length)
		}
	}
	return &ipld.Node{Kind: ipld.MapKind, Map: entries}, nil
}

// decodeMapKey decodes one map key, which must be a text string. It
// reports the key to the callback itself and returns both the
// normalized key and the raw wire form used for order checking.
func decodeMapKey(ds *DecState, s *stream.Stream) (key, raw string, err error) {
	major, arg, _, headLen, err := decodeHead(s)
	if err != nil {
		return "", "", err
	}
	if major != majorText {
		return "", "", errKeyType(s, major)
	}
	raw, key, err = readText(ds, s, arg)
	if err != nil {
		return "", "", err
	}
	if ds.callback != nil {
		ds.callback(ipld.FromString(key), headLen+len(raw))
	}
	return key, raw, nil
}

// decodeLink decodes a tag item, which must be tag 42 carrying a byte
// string of the 0x00 multibase prefix followed by the binary CID. The
// payload's own callback is suppressed; the link reports the tag head
// plus the payload item. n is the payload item's byte count.
func decodeLink(ds *DecState, s *stream.Stream, tag uint64, depth int) (*ipld.Node, int, error) {
	if depth >= ds.maxNesting {
		return nil, 0, errNestingLimit(s, ds.maxNesting)
	}
	if tag != linkTag {
		return nil, 0, errInvalidTag(s, tag)
	}
	tagHead := []stream.Snapshot{s.Previous(), s.Current()}
	inner := *ds
	inner.callback = nil
	payload, n, err := decodeItem(&inner, s, depth+1)
	if err != nil {
		return nil, 0, wrapNested(err, func(de *Error) *Error {
			return errLink(tagHead, de)
		})
	}
	if payload.Kind != ipld.BytesKind {
		return nil, 0, errLinkPayload(tagHead, s, payload.Kind)
	}
	pb := payload.Bytes
	if len(pb) == 0 {
		return nil, 0, errLinkMarker(tagHead, s, true)
	}
	if pb[0] != 0 {
		return nil, 0, errLinkMarker(tagHead, s, false)
	}
	c, err := cid.Cast(pb[1:])
	if err != nil {
		return nil, 0, errLinkCid(tagHead, s, err)
	}
	return ipld.FromLink(c), n, nil
}

// wrapNested decides whether a child failure gets another layer of
// container context. Reader failures pass through untouched, the
// nesting guard stays bare, and causes that already carry
// maxCauseLines of context stop accumulating more.
func wrapNested(err error, wrap func(*Error) *Error) error {
	de, ok := err.(*Error)
	if !ok {
		return err
	}
	if errors.Is(de.Err, ErrNestingLimit) {
		return de
	}
	if strings.Count(de.text, "\n")+1 > maxCauseLines {
		return de
	}
	return wrap(de)
}

// utf8Fault scans b for the first byte sequence that is not valid
// UTF-8. start is the index of the first byte of the rejected
// sequence and end the index after its last byte, following the
// maximal subpart convention.
func utf8Fault(b []byte) (start, end int, reason string, bad bool) {
	i := 0
	for i < len(b) {
		c := b[i]
		if c < 0x80 {
			i++
			continue
		}
		var size int
		var lo, hi byte = 0x80, 0xbf
		switch {
		case c < 0xc2:
			return i, i + 1, "invalid start byte", true
		case c < 0xe0:
			size = 2
		case c < 0xf0:
			size = 3
			if c == 0xe0 {
				lo = 0xa0
			} else if c == 0xed {
				hi = 0x9f
			}
		case c < 0xf5:
			size = 4
			if c == 0xf0 {
				lo = 0x90
			} else if c == 0xf4 {
				hi = 0x8f
			}
		default:
			return i, i + 1, "invalid start byte", true
		}
		for j := 1; j < size; j++ {
			if i+j >= len(b) {
				return i, len(b), "unexpected end of data", true
			}
			if cc := b[i+j]; cc < lo || cc > hi {
				return i, i + j, "invalid continuation byte", true
			}
			lo, hi = 0x80, 0xbf
		}
		i += size
	}
	return 0, 0, "", false
}
