// Package rng holds the engine's deterministic pseudo-randomness. Every
// function here is pure: given the same integer seed it always returns the
// same output, and nothing in this package consults the OS RNG or any
// process-wide state. World-affecting randomness is always derived from a
// mix of (home position, current position, tick) so that a save/reload at
// tick N reproduces identical output on replay.
package rng

import (
	"github.com/cespare/xxhash/v2"
	"github.com/segmentio/fasthash/fnv1a"
	"github.com/tile-ward/gridworld/cube"
)

// Randomize runs x through a 32-bit xorshift/multiply cascade (three
// xor-shifts interleaved with two odd-constant multiplies), turning a low-entropy counter-like seed
// into a well-mixed pseudo-random value.
func Randomize(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// MixPos folds a Pos's two components into a single seed before mixing.
func MixPos(p cube.Pos) uint32 {
	return Randomize(uint32(int64(p.X)*0x9e3779b1) ^ uint32(int64(p.Y)*0x85ebca6b))
}

// MixString hashes s with xxhash (fast over arbitrary-length UTF-8 byte
// sequences, such as player names or inspection text) and folds the 64-bit
// digest into the 32-bit mixed domain used everywhere else in this package.
func MixString(s string) uint32 {
	h := xxhash.Sum64String(s)
	return Randomize(uint32(h) ^ uint32(h>>32))
}

// Seed derives the canonical per-call-site seed from a creature's home
// position, its current position and the current tick, as required by every
// planning rule in the engine: `seed = mix(home, pos, tick, salt)`. salt
// distinguishes multiple independent draws made within the same tick by the
// same creature (for example "which direction to walk" vs. "should I wander
// at all").
func Seed(home, pos cube.Pos, now cube.Timestamp, salt uint32) uint32 {
	s := MixPos(home)
	s = Randomize(s ^ MixPos(pos))
	s = Randomize(s ^ now.RandomSeed())
	s = Randomize(s ^ salt)
	return s
}

// IdentitySeed derives a seed for one-shot identity-style randomness (spawn
// identity, wound rind) using an independent FNV-1a mixer so that these
// draws never share a hash family with the tick-cadence mixer above; two
// unrelated pure-random domains should not be able to correlate by accident.
func IdentitySeed(home, pos cube.Pos, now cube.Timestamp, salt uint32) uint32 {
	h := fnv1a.Init32
	h = fnv1a.AddUint32(h, uint32(home.X))
	h = fnv1a.AddUint32(h, uint32(home.Y))
	h = fnv1a.AddUint32(h, uint32(pos.X))
	h = fnv1a.AddUint32(h, uint32(pos.Y))
	h = fnv1a.AddUint32(h, uint32(now))
	h = fnv1a.AddUint32(h, salt)
	return h
}

// Percentage reports whether a draw from seed falls under an n% probability
// (n in [0,100]).
func Percentage(seed uint32, n int) bool {
	if n <= 0 {
		return false
	}
	if n >= 100 {
		return true
	}
	return Randomize(seed)%100 < uint32(n)
}

// Pick selects one element of a non-empty slice deterministically from seed.
// The caller guarantees len(s) > 0.
func Pick[T any](seed uint32, s []T) T {
	return s[Randomize(seed)%uint32(len(s))]
}
