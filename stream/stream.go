package stream

import (
	"io"
)

// Snapshot records one read from a Stream: the bytes obtained by the
// latest read and the stream position after it. Snapshots are values;
// a Stream replaces them wholesale and never mutates bytes a snapshot
// already exposes. The zero value is an empty snapshot at position 0.
type Snapshot struct {
	chunk []byte
	end   int
}

// Bytes returns the bytes obtained by the latest read. The slice must
// not be modified.
func (s Snapshot) Bytes() []byte {
	return s.chunk
}

func (s Snapshot) Len() int {
	return len(s.chunk)
}

// Start returns the stream offset of the first byte of the latest read.
func (s Snapshot) Start() int {
	return s.end - len(s.chunk)
}

// End returns the number of bytes consumed from the stream after the
// latest read.
func (s Snapshot) End() int {
	return s.end
}

// Stream pulls bytes from a reader while keeping the two most recent
// read snapshots around for error reporting.
type Stream struct {
	r    io.Reader
	prev Snapshot
	curr Snapshot
}

func New(r io.Reader) *Stream {
	return &Stream{r: r}
}

// Read performs a fresh read of up to n bytes: the current snapshot is
// demoted to previous and the bytes read become the new current
// snapshot. Fewer than n bytes come back at end of input; that is not
// an error, callers detect truncation from the returned length. Reader
// failures other than end of input propagate.
func (st *Stream) Read(n int) ([]byte, error) {
	buf := make([]byte, n)
	m, err := io.ReadFull(st.r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	st.prev = st.curr
	st.curr = Snapshot{chunk: buf[:m], end: st.curr.end + m}
	if err != nil {
		return nil, err
	}
	return buf[:m], nil
}

// ReadExtend reads up to n more bytes and appends them to the current
// snapshot, leaving the previous snapshot untouched. The current chunk
// is reallocated on every extend so snapshot values taken earlier keep
// the bytes they had.
func (st *Stream) ReadExtend(n int) ([]byte, error) {
	buf := make([]byte, n)
	m, err := io.ReadFull(st.r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	chunk := st.curr.chunk
	grown := make([]byte, len(chunk)+m)
	copy(grown, chunk)
	copy(grown[len(chunk):], buf[:m])
	st.curr = Snapshot{chunk: grown, end: st.curr.end + m}
	if err != nil {
		return nil, err
	}
	return buf[:m], nil
}

// ReadAll drains the source as one fresh read.
func (st *Stream) ReadAll() ([]byte, error) {
	bs, err := io.ReadAll(st.r)
	st.prev = st.curr
	st.curr = Snapshot{chunk: bs, end: st.curr.end + len(bs)}
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (st *Stream) Current() Snapshot {
	return st.curr
}

func (st *Stream) Previous() Snapshot {
	return st.prev
}

// Position returns the total number of bytes consumed so far.
func (st *Stream) Position() int {
	return st.curr.end
}
