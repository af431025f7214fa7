package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// Seeded is a xoshiro256** generator for reproducible sessions. It
// must not be used for a real recovery.
type Seeded struct {
	state [4]uint64
}

// NewSeeded returns a generator seeded with the SHA-256 hash of seed.
func NewSeeded(seed string) *Seeded {
	s := new(Seeded)
	s.Seed(sha256.Sum256([]byte(seed)))
	return s
}

func (s *Seeded) Seed(seed [32]byte) {
	for i := range s.state {
		s.state[i] = binary.BigEndian.Uint64(seed[i*8:])
	}
}

func (s *Seeded) Uint64() uint64 {
	result := rotl(s.state[1]*5, 7) * 9

	t := s.state[1] << 17

	s.state[2] ^= s.state[0]
	s.state[3] ^= s.state[1]
	s.state[1] ^= s.state[2]
	s.state[0] ^= s.state[3]

	s.state[2] ^= t

	s.state[3] = rotl(s.state[3], 45)

	return result
}

// Intn returns a uniform number in [0,n).
func (s *Seeded) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}
	limit := math.MaxUint64 - math.MaxUint64%uint64(n)
	for {
		if x := s.Uint64(); x < limit {
			return int(x % uint64(n))
		}
	}
}

func rotl(x uint64, k int) uint64 {
	return (x << k) | (x >> (64 - k))
}
