package ipld

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Segment addresses one step into a composite node: a list index or a
// map key.
type Segment struct {
	key   string
	index int
	isKey bool
}

func KeySegment(k string) Segment {
	return Segment{key: k, isKey: true}
}

func IndexSegment(i int) Segment {
	return Segment{index: i}
}

func (s Segment) Key() (string, bool) {
	return s.key, s.isKey
}

func (s Segment) Index() (int, bool) {
	if s.isKey {
		return 0, false
	}
	return s.index, true
}

func (s Segment) String() string {
	if s.isKey {
		if pathKeyNeedsQuote(s.key) {
			return strconv.Quote(s.key)
		}
		return s.key
	}
	return "[" + strconv.Itoa(s.index) + "]"
}

// Path names a location in a node tree from its root. The zero value is
// the root path. Paths are immutable, Child returns extended copies.
type Path struct {
	segs []Segment
}

func NewPath(segs ...Segment) Path {
	return Path{segs: slices.Clone(segs)}
}

func (p Path) Len() int {
	return len(p.segs)
}

func (p Path) Segments() []Segment {
	return slices.Clone(p.segs)
}

func (p Path) Child(s Segment) Path {
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = s
	return Path{segs: segs}
}

// String renders the path in kinded form: map keys joined with dots,
// list indexes in brackets, e.g. `a.b[0].c`. Keys holding separator or
// non-printable characters are quoted. The root path renders as "".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p.segs {
		if seg.isKey {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.String())
			continue
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

func pathKeyNeedsQuote(k string) bool {
	if k == "" {
		return true
	}
	for _, r := range k {
		if r == '.' || r == '[' || r == ']' || r == '"' || r <= ' ' || !strconv.IsPrint(r) {
			return true
		}
	}
	return false
}

// ParsePath parses the rendering produced by String.
func ParsePath(s string) (Path, error) {
	var segs []Segment
	i := 0
	for i < len(s) {
		switch s[i] {
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return Path{}, fmt.Errorf("unterminated index at offset %d: %w", i, ErrPathSyntax)
			}
			idx, err := strconv.Atoi(s[i+1 : i+j])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("bad index %q: %w", s[i+1:i+j], ErrPathSyntax)
			}
			segs = append(segs, IndexSegment(idx))
			i += j + 1
		case '.':
			if i == 0 || i+1 == len(s) || s[i+1] == '.' || s[i+1] == '[' {
				return Path{}, fmt.Errorf("empty segment at offset %d: %w", i, ErrPathSyntax)
			}
			i++
		case '"':
			q, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return Path{}, fmt.Errorf("bad quoted key at offset %d: %w", i, ErrPathSyntax)
			}
			key, err := strconv.Unquote(q)
			if err != nil {
				return Path{}, fmt.Errorf("bad quoted key at offset %d: %w", i, ErrPathSyntax)
			}
			segs = append(segs, KeySegment(key))
			i += len(q)
		default:
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			segs = append(segs, KeySegment(s[i:j]))
			i = j
		}
	}
	return Path{segs: segs}, nil
}

// Resolve walks the path from n, returning the addressed node.
// Addressing a key in a non-map or an index in a non-list fails with
// ErrWrongKind; a missing key or out of range index fails with
// ErrNotFound.
func (p Path) Resolve(n *Node) (*Node, error) {
	res := n
	for i, seg := range p.segs {
		at := Path{segs: p.segs[:i]}
		if res == nil {
			return nil, fmt.Errorf("nil node at %q: %w", at, ErrNotFound)
		}
		if seg.isKey {
			if res.Kind != MapKind {
				return nil, fmt.Errorf("key %q addresses %s node at %q: %w", seg.key, res.Kind, at, ErrWrongKind)
			}
			v := Get(res, seg.key)
			if v == nil {
				return nil, fmt.Errorf("key %q at %q: %w", seg.key, at, ErrNotFound)
			}
			res = v
			continue
		}
		if res.Kind != ListKind {
			return nil, fmt.Errorf("index %d addresses %s node at %q: %w", seg.index, res.Kind, at, ErrWrongKind)
		}
		if seg.index < 0 || seg.index >= len(res.List) {
			return nil, fmt.Errorf("index %d out of range (len %d) at %q: %w", seg.index, len(res.List), at, ErrNotFound)
		}
		res = res.List[seg.index]
	}
	return res, nil
}
