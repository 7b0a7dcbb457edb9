package ipld

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Normalization selects a Unicode normalization form applied to text
// strings by the codec. The zero value applies none.
type Normalization int

const (
	NoNormalization Normalization = iota
	NFC
	NFD
	NFKC
	NFKD
)

func (n Normalization) Apply(s string) string {
	switch n {
	case NFC:
		return norm.NFC.String(s)
	case NFD:
		return norm.NFD.String(s)
	case NFKC:
		return norm.NFKC.String(s)
	case NFKD:
		return norm.NFKD.String(s)
	}
	return s
}

func (n Normalization) String() string {
	switch n {
	case NoNormalization:
		return "none"
	case NFC:
		return "nfc"
	case NFD:
		return "nfd"
	case NFKC:
		return "nfkc"
	case NFKD:
		return "nfkd"
	}
	return "<unknown normalization>"
}

func ParseNormalization(s string) (Normalization, error) {
	switch s {
	case "", "none":
		return NoNormalization, nil
	case "nfc", "NFC":
		return NFC, nil
	case "nfd", "NFD":
		return NFD, nil
	case "nfkc", "NFKC":
		return NFKC, nil
	case "nfkd", "NFKD":
		return NFKD, nil
	}
	return NoNormalization, fmt.Errorf("unrecognized normalization %q", s)
}
