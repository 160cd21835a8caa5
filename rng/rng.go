// SPDX-License-Identifier: MIT
// Package: optmath/rng
//
// rng.go - the reproducibility controller: one seed, one stream.
//
// Contract:
//   - FromSeed(s) is the only stream constructor the pipeline uses; every
//     stage draws from that single *rand.Rand, so equal seeds yield
//     byte-identical instances end to end.
//   - Seed 0 is a real seed, not a sentinel. Callers who want fresh entropy
//     ask for it explicitly via EntropySeed and record the value themselves.
//   - DeriveSeed(s, i) gives statistically independent per-unit seeds for
//     batch runs (SplitMix64 mixing), so unit i's stream never overlaps
//     unit j's and each unit stays individually replayable.

// Package rng owns seeding policy for the generators: deterministic
// stream construction, explicit entropy seeding, and SplitMix64 sub-seed
// derivation for batch work.
package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// SplitMix64 constants (Steele, Lea, Flood 2014).
const (
	smGamma = 0x9e3779b97f4a7c15
	smMixA  = 0xbf58476d1ce4e5b9
	smMixB  = 0x94d049bb133111eb
)

// FromSeed returns a deterministic stream for seed. Equal seeds give equal
// streams on every platform.
func FromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// EntropySeed returns a seed drawn from the operating system's entropy pool.
// Callers record the returned value so the run stays replayable.
func EntropySeed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		// The OS entropy pool is assumed available; failing it is fatal.
		panic("rng: EntropySeed: " + err.Error())
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// DeriveSeed mixes a base seed with a unit index into an independent
// sub-seed. The mapping is injective in idx for a fixed base, so batch units
// never share a stream, and it is pure, so any unit can be regenerated alone.
func DeriveSeed(seed int64, idx uint64) int64 {
	z := uint64(seed) + (idx+1)*smGamma
	z = (z ^ (z >> 30)) * smMixA
	z = (z ^ (z >> 27)) * smMixB
	return int64(z ^ (z >> 31))
}

// Derive is FromSeed composed with DeriveSeed.
func Derive(seed int64, idx uint64) *rand.Rand {
	return FromSeed(DeriveSeed(seed, idx))
}
