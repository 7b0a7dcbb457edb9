package decode

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/go-dagcbor/stream"
)

// truncBytes bounds how many bytes a diagnostic line spells out before
// eliding the middle.
const truncBytes = 16

// maxCauseLines bounds how many lines of nested context an error keeps
// when a container wraps a child failure.
const maxCauseLines = 48

func hexBytes(bs []byte) string {
	if len(bs) <= truncBytes {
		return hex.EncodeToString(bs)
	}
	return hex.EncodeToString(bs[:1]) + "..." + hex.EncodeToString(bs[len(bs)-1:])
}

// lineOpts adjusts how snapshotLines presents the collated bytes.
type lineOpts struct {
	details  string // annotation under the bytes, empty for no second line
	start    int    // skip this many collated bytes
	end      int    // stop before this collated offset, 0 for no cut
	padStart int    // two-space units before the bytes, aligns across line groups
	hlStart  int    // first highlighted byte
	hlLen    int    // highlighted byte count, 0 extends to the last byte
	dots     bool   // mark the byte run as continuing
}

// snapshotLines renders one or two message lines from consecutive read
// snapshots: the collated bytes prefixed with the stream position of
// the first one and, when details are given, a caret line marking the
// highlighted range followed by the details. An empty byte run renders
// as <EOF>.
func snapshotLines(snaps []stream.Snapshot, o lineOpts) []string {
	var joined []byte
	for _, sn := range snaps {
		joined = append(joined, sn.Bytes()...)
	}
	end := len(joined)
	if o.end > 0 && o.end < end {
		end = o.end
	}
	start := o.start
	if start > end {
		start = end
	}
	bs := joined[start:end]
	pos := snaps[0].Start() + o.start
	bsStr := hexBytes(bs)
	truncated := len(bsStr) != 2*len(bs)
	var tab string
	if len(bs) == 0 {
		bsStr = "<EOF>"
		tab = "^^^^^"
	} else {
		hlLen := o.hlLen
		if hlLen == 0 {
			hlLen = len(bs) - o.hlStart
			if hlLen < 0 {
				hlLen = 0
			}
		}
		if truncated && !(hlLen == 1 && (o.hlStart == 0 || o.hlStart == len(bs)-1)) {
			tab = strings.Repeat("^", len(bsStr))
		} else {
			tab = strings.Repeat("  ", o.hlStart) + strings.Repeat("^^", hlLen)
		}
	}
	pad := strings.Repeat("  ", o.padStart)
	line := "At byte #" + strconv.Itoa(pos) + ": " + pad + bsStr
	if truncated {
		line += fmt.Sprintf(" (last byte #%d)", pos+len(bs)-1)
	}
	if o.dots {
		line += "..."
	}
	lines := []string{line}
	if o.details != "" {
		lines = append(lines, fmt.Sprintf("         %s  %s%s %s",
			strings.Repeat(" ", len(strconv.Itoa(pos))), pad, tab, o.details))
	}
	return lines
}

// causeLines reindents a nested error's message so it reads as the
// explanation of the error wrapping it.
func causeLines(err error) []string {
	lines := strings.Split(err.Error(), "\n")
	for i, ln := range lines {
		if i == 0 {
			lines[i] = `\ ` + ln
		} else {
			lines[i] = "  " + ln
		}
	}
	return lines
}

// linkErrorLines frames an explanation with the tag head that opened
// the CID being decoded.
func linkErrorLines(tagHead []stream.Snapshot, explanation ...string) []string {
	lines := []string{"Error while decoding CID."}
	lines = append(lines, snapshotLines(tagHead, lineOpts{details: "CID tag", dots: true})...)
	return append(lines, explanation...)
}
