// SPDX-License-Identifier: MIT
// Package: epiagents/ensemble
//
// rng.go - per-member random streams.
//
// Goals:
//   - Determinism: the same base seed gives the same member streams.
//   - Independence: every member gets its own *rand.Rand; no stream is shared.
//   - No clock: nothing in this package reads the time. Drivers choose seeds.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each member owns its stream.

package ensemble

import "math/rand"

// defaultSeed is used when callers pass seed==0 or no seed at all.
const defaultSeed int64 = 1

// resolveSeed applies the seed==0 policy.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return defaultSeed
	}
	return seed
}

// memberSeed mixes the base seed with a member index into a new 64-bit seed.
// It is the SplitMix64 finalizer (Vigna 2014) with the canonical golden-ratio
// increment and multipliers, so adjacent members get decorrelated streams.
func memberSeed(base int64, member uint64) int64 {
	x := uint64(base) ^ (member + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// memberRand returns the deterministic stream for one member.
func memberRand(base int64, member int) (*rand.Rand, int64) {
	s := memberSeed(base, uint64(member))
	return rand.New(rand.NewSource(s)), s
}
