package ipld

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Int is an integer in the interval [-2^64, 2^64-1], the exact range
// expressible by one unsigned 64 bit head argument under major type 0
// or 1. Values outside the interval are not representable.
type Int struct {
	// Neg selects the negative range. When set the value is -1-Mag,
	// otherwise the value is Mag.
	Neg bool
	Mag uint64
}

var bigOne = big.NewInt(1)

func IntOf(v int64) Int {
	if v < 0 {
		return Int{Neg: true, Mag: uint64(-(v + 1))}
	}
	return Int{Mag: uint64(v)}
}

func IntOfUint(v uint64) Int {
	return Int{Mag: v}
}

// IntFromBig converts an arbitrary precision integer, failing with
// ErrIntRange outside [-2^64, 2^64-1].
func IntFromBig(v *big.Int) (Int, error) {
	if v.Sign() >= 0 {
		if !v.IsUint64() {
			return Int{}, fmt.Errorf("integer %s: %w", v, ErrIntRange)
		}
		return Int{Mag: v.Uint64()}, nil
	}
	m := new(big.Int).Neg(v)
	m.Sub(m, bigOne)
	if !m.IsUint64() {
		return Int{}, fmt.Errorf("integer %s: %w", v, ErrIntRange)
	}
	return Int{Neg: true, Mag: m.Uint64()}, nil
}

func (i Int) Int64() (int64, bool) {
	if i.Mag > math.MaxInt64 {
		return 0, false
	}
	if i.Neg {
		return -1 - int64(i.Mag), true
	}
	return int64(i.Mag), true
}

func (i Int) Uint64() (uint64, bool) {
	if i.Neg {
		return 0, false
	}
	return i.Mag, true
}

func (i Int) Big() *big.Int {
	b := new(big.Int).SetUint64(i.Mag)
	if i.Neg {
		b.Neg(b)
		b.Sub(b, bigOne)
	}
	return b
}

func (i Int) Sign() int {
	if i.Neg {
		return -1
	}
	if i.Mag == 0 {
		return 0
	}
	return 1
}

// Cmp returns an integer comparing two Ints numerically.
func (i Int) Cmp(j Int) int {
	if i.Neg != j.Neg {
		if i.Neg {
			return -1
		}
		return 1
	}
	if i.Neg {
		return -cmp.Compare(i.Mag, j.Mag)
	}
	return cmp.Compare(i.Mag, j.Mag)
}

func (i Int) String() string {
	if v, ok := i.Int64(); ok {
		return strconv.FormatInt(v, 10)
	}
	if !i.Neg {
		return strconv.FormatUint(i.Mag, 10)
	}
	return i.Big().String()
}
