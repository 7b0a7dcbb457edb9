package decode

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
	"github.com/signadot/go-dagcbor/ipld"
	"github.com/signadot/go-dagcbor/stream"
)

// The two error families. Every decode failure except the nesting
// guard matches exactly one of them under errors.Is.
var (
	// ErrFormat covers input that is not well-formed CBOR at all.
	ErrFormat = errors.New("invalid CBOR")

	// ErrCanonicalForm covers input that is well-formed CBOR but not
	// canonical DAG-CBOR.
	ErrCanonicalForm = errors.New("not canonical DAG-CBOR")
)

var (
	ErrUnexpectedEOF = fmt.Errorf("%w: %w", ErrFormat, io.ErrUnexpectedEOF)
	ErrInvalidInfo   = fmt.Errorf("%w: invalid additional info", ErrFormat)
	ErrInvalidUTF8   = fmt.Errorf("%w: string is not valid utf-8", ErrFormat)

	ErrExcessiveInt    = fmt.Errorf("%w: integer not minimally encoded", ErrCanonicalForm)
	ErrDisallowedFloat = fmt.Errorf("%w: disallowed float value", ErrCanonicalForm)
	ErrInvalidSimple   = fmt.Errorf("%w: invalid simple value", ErrCanonicalForm)
	ErrKeyType         = fmt.Errorf("%w: map key is not a string", ErrCanonicalForm)
	ErrDuplicateKey    = fmt.Errorf("%w: duplicate map key", ErrCanonicalForm)
	ErrKeyOrder        = fmt.Errorf("%w: map keys out of canonical order", ErrCanonicalForm)
	ErrInvalidTag      = fmt.Errorf("%w: tag other than 42", ErrCanonicalForm)
	ErrLinkPayload     = fmt.Errorf("%w: CID payload is not a byte string", ErrCanonicalForm)
	ErrLinkMarker      = fmt.Errorf("%w: CID missing identity multibase prefix", ErrCanonicalForm)
	ErrLinkCid         = fmt.Errorf("%w: invalid CID bytes", ErrCanonicalForm)
	ErrNoMulticodec    = fmt.Errorf("%w: dag-cbor multicodec code required", ErrCanonicalForm)
	ErrTrailingData    = fmt.Errorf("%w: multiple top-level items", ErrCanonicalForm)

	// ErrItem marks a failure inside a list, map or link. The wrapped
	// cause carries the family.
	ErrItem = errors.New("nested item error")

	// ErrNestingLimit reports that the depth guard fired. It is a
	// resource limit, deliberately outside both families.
	ErrNestingLimit = errors.New("nesting depth limit exceeded")
)

// Error is the error type returned by Decode and DecodeReader. Err
// holds the sentinel identifying the violation, Offset the stream
// position of the first byte shown in the diagnostic, and the
// remaining fields qualify specific violations. Error() renders the
// full multi-line diagnostic as captured at failure time.
type Error struct {
	Err    error
	Offset int
	Used   int    // argument bytes consumed by a non-minimal integer
	Min    int    // argument bytes that would have sufficed
	Index  int    // container slot at which the failure occurred
	Total  int    // container length
	Key    string // offending map key
	Cause  error  // nested failure for container and link errors

	text string
}

func (e *Error) Error() string {
	return e.text
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func newError(kind error, msg string, snaps []stream.Snapshot, o lineOpts) *Error {
	lines := []string{msg}
	off := 0
	if len(snaps) > 0 {
		lines = append(lines, snapshotLines(snaps, o)...)
		off = snaps[0].Start() + o.start
	}
	return &Error{Err: kind, Offset: off, text: strings.Join(lines, "\n")}
}

func errRequiredMulticodec(s *stream.Stream) *Error {
	curr := s.Current()
	exp := varint.ToUvarint(uint64(multicodec.DagCbor))
	plural := ""
	if curr.Len() > 1 {
		plural = "s"
	}
	return newError(ErrNoMulticodec, "Required 'dag-cbor' multicodec code.",
		[]stream.Snapshot{curr},
		lineOpts{details: fmt.Sprintf("byte%s should be 0x%s.", plural, hex.EncodeToString(exp))})
}

func errTrailingData(s *stream.Stream) *Error {
	return newError(ErrTrailingData, "Decode must operate on a single top-level CBOR object.",
		[]stream.Snapshot{s.Current()},
		lineOpts{details: "unexpected start byte of a second top-level CBOR object"})
}

func errDisallowedFloat(s *stream.Stream, f float64) *Error {
	name := "NaN"
	if !math.IsNaN(f) {
		if math.Signbit(f) {
			name = "-Infinity"
		} else {
			name = "Infinity"
		}
	}
	prev := s.Previous()
	return newError(ErrDisallowedFloat, name+" is not an allowed float value.",
		[]stream.Snapshot{prev, s.Current()},
		lineOpts{details: "float64 bits of " + name, hlStart: prev.Len()})
}

func errUnexpectedEOF(s *stream.Stream, what string, want uint64, includePrev bool) *Error {
	curr := s.Current()
	snaps := []stream.Snapshot{curr}
	hl := 0
	if includePrev {
		snaps = []stream.Snapshot{s.Previous(), curr}
		hl = s.Previous().Len()
	}
	return newError(ErrUnexpectedEOF,
		fmt.Sprintf("Unexpected EOF while attempting to read %s.", what),
		snaps,
		lineOpts{details: fmt.Sprintf("%d bytes read, out of %d expected.", curr.Len(), want), hlStart: hl})
}

func errInvalidInfo(s *stream.Stream, info, major byte) *Error {
	var details string
	if major == majorSimple {
		details = fmt.Sprintf("lower 5 bits are %05b, expected from %05b to %05b, or %05b.", info, 0, 23, 27)
	} else {
		details = fmt.Sprintf("lower 5 bits are %05b, expected from %05b to %05b.", info, 0, 27)
	}
	return newError(ErrInvalidInfo,
		fmt.Sprintf("Invalid additional info %d in data item head for major type 0x%x.", info, major),
		[]stream.Snapshot{s.Current()}, lineOpts{details: details})
}

func errExcessiveInt(s *stream.Stream, arg uint64, used, min int) *Error {
	usedPlural, minPlural, bytePlural := "s", "s", ""
	if used == 1 {
		usedPlural = ""
	}
	if min == 1 {
		minPlural = ""
	}
	if min > 1 {
		bytePlural = "s"
	}
	prev := s.Previous()
	e := newError(ErrExcessiveInt,
		fmt.Sprintf("Integer %d was encoded using %d byte%s, while %d byte%s would have been enough.",
			arg, used, usedPlural, min, minPlural),
		[]stream.Snapshot{prev, s.Current()},
		lineOpts{details: fmt.Sprintf("same as byte%s 0x%0*x", bytePlural, 2*min, arg), hlStart: prev.Len()})
	e.Used, e.Min = used, min
	return e
}

func errInvalidUTF8(s *stream.Stream, length uint64, start, end int, reason string) *Error {
	prev, curr := s.Previous(), s.Current()
	lines := []string{"String bytes are not valid utf-8 bytes."}
	lines = append(lines, snapshotLines([]stream.Snapshot{prev, curr},
		lineOpts{details: fmt.Sprintf("string of length %d", length), hlLen: 1})...)
	lines = append(lines, snapshotLines([]stream.Snapshot{curr},
		lineOpts{details: reason, start: start, end: end, padStart: start + prev.Len()})...)
	return &Error{Err: ErrInvalidUTF8, Offset: prev.Start(), text: strings.Join(lines, "\n")}
}

func errListItem(head stream.Snapshot, idx, total uint64, cause *Error) *Error {
	lines := []string{"Error while decoding list."}
	lines = append(lines, snapshotLines([]stream.Snapshot{head},
		lineOpts{details: fmt.Sprintf("list of length %d", total), dots: true})...)
	lines = append(lines, fmt.Sprintf("Error occurred while decoding item at position %d: further details below.", idx))
	lines = append(lines, causeLines(cause)...)
	return &Error{
		Err: ErrItem, Offset: head.Start(),
		Index: int(idx), Total: int(total), Cause: cause,
		text: strings.Join(lines, "\n"),
	}
}

func errKeyType(s *stream.Stream, major byte) *Error {
	return newError(ErrKeyType, "Map key is not of string type.",
		[]stream.Snapshot{s.Current()},
		lineOpts{details: fmt.Sprintf("major type is 0x%x, should be 0x3 (string) instead.", major), hlLen: 1, dots: true})
}

func errMapItem(head stream.Snapshot, what string, idx, total uint64, cause *Error) *Error {
	lines := []string{"Error while decoding map."}
	lines = append(lines, snapshotLines([]stream.Snapshot{head},
		lineOpts{details: fmt.Sprintf("map of length %d", total), dots: true})...)
	lines = append(lines, fmt.Sprintf("Error occurred while decoding %s at position %d: further details below.", what, idx))
	lines = append(lines, causeLines(cause)...)
	return &Error{
		Err: ErrItem, Offset: head.Start(),
		Index: int(idx), Total: int(total), Cause: cause,
		text: strings.Join(lines, "\n"),
	}
}

func errDuplicateKey(head stream.Snapshot, s *stream.Stream, key string, idx, total uint64) *Error {
	lines := []string{"Error while decoding map."}
	lines = append(lines, snapshotLines([]stream.Snapshot{head},
		lineOpts{details: fmt.Sprintf("map of length %d", total), dots: true})...)
	lines = append(lines, fmt.Sprintf("Duplicate key is found at position %d.", idx))
	lines = append(lines, snapshotLines([]stream.Snapshot{s.Current()},
		lineOpts{details: fmt.Sprintf("decodes to key %q", key)})...)
	return &Error{
		Err: ErrDuplicateKey, Offset: head.Start(),
		Index: int(idx), Total: int(total), Key: key,
		text: strings.Join(lines, "\n"),
	}
}

func errKeyOrder(head stream.Snapshot, kb0 string, idx0 int, kb1 string, idx1 int, total uint64) *Error {
	pad := len(strconv.Itoa(idx0))
	if n := len(strconv.Itoa(idx1)); n > pad {
		pad = n
	}
	lines := []string{"Error while decoding map."}
	lines = append(lines, snapshotLines([]stream.Snapshot{head},
		lineOpts{details: fmt.Sprintf("map of length %d", total), dots: true})...)
	lines = append(lines,
		"Map keys not in canonical order.",
		fmt.Sprintf("  Key at pos #%*d: %s", pad, idx0, hexBytes([]byte(kb0))),
		fmt.Sprintf("  Key at pos #%*d: %s", pad, idx1, hexBytes([]byte(kb1))))
	return &Error{
		Err: ErrKeyOrder, Offset: head.Start(),
		Index: idx0, Total: int(total), Key: kb0,
		text: strings.Join(lines, "\n"),
	}
}

func errInvalidTag(s *stream.Stream, tag uint64) *Error {
	prev := s.Previous()
	return newError(ErrInvalidTag,
		"Error while decoding item of major type 0x6: only tag 42 is allowed.",
		[]stream.Snapshot{prev, s.Current()},
		lineOpts{details: fmt.Sprintf("tag %d", tag), hlStart: prev.Len()})
}

func errLink(tagHead []stream.Snapshot, cause *Error) *Error {
	lines := linkErrorLines(tagHead, causeLines(cause)...)
	return &Error{Err: ErrItem, Offset: tagHead[0].Start(), Cause: cause, text: strings.Join(lines, "\n")}
}

func errLinkPayload(tagHead []stream.Snapshot, s *stream.Stream, kind ipld.Kind) *Error {
	expl := []string{"CID bytes did not decode to an item of kind Bytes."}
	expl = append(expl, snapshotLines([]stream.Snapshot{s.Current()},
		lineOpts{details: fmt.Sprintf("decodes to an item of kind %s", kind)})...)
	lines := linkErrorLines(tagHead, expl...)
	return &Error{Err: ErrLinkPayload, Offset: tagHead[0].Start(), text: strings.Join(lines, "\n")}
}

func errLinkMarker(tagHead []stream.Snapshot, s *stream.Stream, empty bool) *Error {
	var expl []string
	if empty {
		expl = []string{"CID byte string is empty."}
		expl = append(expl, snapshotLines([]stream.Snapshot{s.Previous(), s.Current()},
			lineOpts{details: "expected the 0x00 multibase prefix"})...)
	} else {
		prev := s.Previous()
		expl = []string{"CID does not start with the identity Multibase prefix."}
		expl = append(expl, snapshotLines([]stream.Snapshot{prev, s.Current()},
			lineOpts{details: "byte should be 0x00", hlStart: prev.Len(), hlLen: 1})...)
	}
	lines := linkErrorLines(tagHead, expl...)
	return &Error{Err: ErrLinkMarker, Offset: tagHead[0].Start(), text: strings.Join(lines, "\n")}
}

func errLinkCid(tagHead []stream.Snapshot, s *stream.Stream, cause error) *Error {
	expl := []string{"CID bytes do not decode to a valid CID."}
	expl = append(expl, snapshotLines([]stream.Snapshot{s.Current()},
		lineOpts{details: cause.Error()})...)
	lines := linkErrorLines(tagHead, expl...)
	return &Error{Err: ErrLinkCid, Offset: tagHead[0].Start(), Cause: cause, text: strings.Join(lines, "\n")}
}

func errSimpleValue(s *stream.Stream, arg uint64) *Error {
	return newError(ErrInvalidSimple,
		"Error while decoding major type 0x7: allowed simple values are 0x14, 0x15 and 0x16.",
		[]stream.Snapshot{s.Current()},
		lineOpts{details: fmt.Sprintf("simple value is %d", arg)})
}

func errNestingLimit(s *stream.Stream, limit int) *Error {
	lines := []string{fmt.Sprintf("Exceeded maximum nesting depth %d.", limit)}
	lines = append(lines, snapshotLines([]stream.Snapshot{s.Current()}, lineOpts{dots: true})...)
	return &Error{Err: ErrNestingLimit, Offset: s.Current().Start(), text: strings.Join(lines, "\n")}
}
