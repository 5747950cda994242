// Package rng implements the counter-based pseudo-random source (C1) that
// every Ray carries: a 32-bit seed paired with a 16-bit running dimension
// index, expanded into uniform floats via the Tiny Encryption Algorithm.
//
// Grounded on _examples/original_source/raymond/raymond/gpu/random.hpp.
package rng

import "math"

// State is the per-ray PRNG state. It is small and carried by value inside
// the wavefront ray buffers so that kernels never share mutable RNG state.
type State struct {
	Seed  uint32
	Index uint16
}

// New returns a PRNG state keyed by (seed, dimension stream). Two states
// with the same pair always produce identical draws.
func New(seed uint32, startIndex uint16) State {
	return State{Seed: seed, Index: startIndex}
}

const teaRounds = 6

// sampleTEA32 runs the Tiny Encryption Algorithm for the requested number of
// rounds and returns the raw 32-bit output.
func sampleTEA32(v0, v1 uint32, rounds int) uint32 {
	var sum uint32
	for i := 0; i < rounds; i++ {
		sum += 0x9e3779b9
		v0 += ((v1 << 4) + 0xa341316c) ^ (v1 + sum) ^ ((v1 >> 5) + 0xc8013ea4)
		v1 += ((v0 << 4) + 0xad90777d) ^ (v0 + sum) ^ ((v0 >> 5) + 0x7e95761e)
	}
	return v1
}

// sampleTEAFloat32 maps the TEA output's top 23 bits onto [0,1) by building
// an IEEE-754 float in [1,2) and subtracting one.
func sampleTEAFloat32(v0, v1 uint32, rounds int) float32 {
	raw := (sampleTEA32(v0, v1, rounds) >> 9) | 0x3f800000
	return math.Float32frombits(raw) - 1
}

// Sample1 draws the next scalar dimension, advancing the running index.
func (s *State) Sample1() float32 {
	v := sampleTEAFloat32(s.Seed, uint32(s.Index), teaRounds)
	s.Index++
	return v
}

// Sample2 draws the next two scalar dimensions as a pair.
func (s *State) Sample2() [2]float32 {
	return [2]float32{s.Sample1(), s.Sample1()}
}

// Sample3 draws the next three scalar dimensions as a triple.
func (s *State) Sample3() [3]float32 {
	return [3]float32{s.Sample1(), s.Sample1(), s.Sample1()}
}

// SampleInt draws a uniformly distributed integer in [0, max).
func (s *State) SampleInt(max int) int {
	if max <= 0 {
		return 0
	}
	n := int(s.Sample1() * float32(max))
	if n >= max {
		n = max - 1
	}
	return n
}
