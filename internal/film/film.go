// Package film implements the floating point accumulation buffer (C15) that
// path-traced samples are summed into across frames, and the resolve step
// that divides by the sample count to produce a radiance image.
//
// Grounded on the accumulate/clear-accumulator buffer pair the teacher's
// OpenCL pipeline drives (tracer/opencl/pipeline.go's ClearAccumulator and
// AccumulateEmissiveSamples stages); this package reproduces the same
// two-step (accumulate, then resolve) shape on the CPU side.
package film

import (
	"sync"

	"github.com/achilleasa/go-pathtrace/types"
)

// Buffer accumulates per-pixel radiance across an arbitrary number of
// samples. It is safe for concurrent AddSample calls from multiple block
// workers as long as they target disjoint pixels; Resolve/Reset are not
// safe to call concurrently with AddSample.
type Buffer struct {
	w, h    uint32
	samples []float32 // 1 counter per pixel
	accum   []types.Vec3

	mu sync.Mutex
}

// New allocates a zeroed accumulation buffer for a frame of size w x h.
func New(w, h uint32) *Buffer {
	return &Buffer{
		w:       w,
		h:       h,
		samples: make([]float32, w*h),
		accum:   make([]types.Vec3, w*h),
	}
}

// Dim returns the buffer's width and height.
func (b *Buffer) Dim() (uint32, uint32) {
	return b.w, b.h
}

// AddSample adds a single radiance sample to pixel (x, y). Pixels are
// disjoint across concurrent callers by construction (each worker owns a
// distinct row block), so AddSample takes no lock; the buffer's mutex is
// only taken by Reset and AccumulateSynchronized.
func (b *Buffer) AddSample(x, y uint32, radiance types.Vec3) {
	idx := y*b.w + x
	b.accum[idx] = b.accum[idx].Add(radiance)
	b.samples[idx]++
}

// BeginSample marks that a new path sample has started for pixel (x, y),
// incrementing its sample count without depositing any radiance. The
// wavefront driver calls this once per pixel when it generates that
// sample's primary ray; the bounces that follow deposit their individual
// contributions through Accumulate/AccumulateSynchronized instead, which
// leave the counter untouched so a multi-bounce path is still counted as
// exactly one sample.
func (b *Buffer) BeginSample(x, y uint32) {
	b.samples[y*b.w+x]++
}

// Accumulate adds radiance to pixel (x, y) without incrementing its sample
// count. Same disjoint-pixel concurrency contract as AddSample; pair with
// BeginSample when a sample's contribution arrives in more than one piece
// across several bounces.
func (b *Buffer) Accumulate(x, y uint32, radiance types.Vec3) {
	idx := y*b.w + x
	b.accum[idx] = b.accum[idx].Add(radiance)
}

// AccumulateSynchronized is Accumulate guarded by the buffer's mutex, for
// passes where more than one in-flight ray may deposit into the same pixel
// within a single wavefront stage -- the shadow-ray bulk pass and
// NEE-no-shadow deposits MUST use this instead of the disjoint-pixel fast
// path.
func (b *Buffer) AccumulateSynchronized(x, y uint32, radiance types.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := y*b.w + x
	b.accum[idx] = b.accum[idx].Add(radiance)
}

// Reset zeroes the buffer in place, reusing its backing storage.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.accum {
		b.accum[i] = types.Vec3{}
		b.samples[i] = 0
	}
}

// Resolve averages the accumulated radiance by the per-pixel sample count
// and returns the result as a flat row-major RGB float32 slice.
func (b *Buffer) Resolve() []float32 {
	out := make([]float32, 3*b.w*b.h)
	for i, c := range b.accum {
		n := b.samples[i]
		if n <= 0 {
			continue
		}
		out[i*3+0] = c[0] / n
		out[i*3+1] = c[1] / n
		out[i*3+2] = c[2] / n
	}
	return out
}

// SampleCount returns the number of samples accumulated for pixel (x, y).
func (b *Buffer) SampleCount(x, y uint32) float32 {
	return b.samples[y*b.w+x]
}

// Mean returns the averaged radiance accumulated so far for pixel (x, y).
func (b *Buffer) Mean(x, y uint32) types.Vec3 {
	idx := y*b.w + x
	n := b.samples[idx]
	if n <= 0 {
		return types.Vec3{}
	}
	return b.accum[idx].Mul(1 / n)
}
