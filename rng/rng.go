// Package rng provides the random sources for scrambling the recovery
// matrix and choosing fake words.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math"
)

// Device draws from the operating system random source.
type Device struct {
	// Reader overrides crypto/rand.Reader when non-nil.
	Reader io.Reader
}

func (d Device) Uint32() uint32 {
	r := d.Reader
	if r == nil {
		r = rand.Reader
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint32(buf[:])
}

// Intn returns a uniform number in [0,n). Values in the incomplete
// tail of the 32-bit range are rejected to avoid modulo bias.
func (d Device) Intn(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		panic("rng: invalid argument to Intn")
	}
	limit := math.MaxUint32 / uint32(n) * uint32(n)
	for {
		x := d.Uint32()
		if x < limit {
			return int(x % uint32(n))
		}
	}
}
