// Package stream wraps a byte source with read snapshots for error
// reporting.
//
// # Overview
//
// A Stream hands out bytes from an io.Reader while remembering the two
// most recent reads as Snapshots: the bytes of the read and the stream
// position after it. When a consumer hits malformed input, the
// snapshots let it point at the offending bytes with their absolute
// offsets without buffering anything beyond the last two reads.
//
// # Usage
//
//	st := stream.New(r)
//	head, err := st.Read(1)        // fresh read, demotes the snapshot
//	arg, err := st.Read(8)         // head is now in st.Previous()
//	more, err := st.ReadExtend(1)  // grows st.Current() in place
//
// Short reads are not errors: a Read near end of input returns what is
// left, and callers decide whether truncation is a failure.
package stream
