package wavefront

import (
	"sync/atomic"

	"github.com/achilleasa/go-pathtrace/internal/intersect"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/internal/rng"
	"github.com/achilleasa/go-pathtrace/types"
)

// PathRay is one surviving path carried between bounce generations: the
// continuation ray plus the throughput and MIS bookkeeping a recursive
// tracer would otherwise keep on the call stack. State points at the
// per-pixel PRNG slot the wavefront driver owns for the lifetime of a block,
// so every bounce of every sample for a given pixel draws from the same
// advancing stream a straight-line implementation would.
type PathRay struct {
	Ray          intersect.Ray
	Throughput   types.Vec3
	PrevPdf      float32
	PrevSpecular bool
	Flags        raykind.Flags
	PixelX       uint32
	PixelY       uint32
	State        *rng.State
}

// ShadowRay is a deferred next-event-estimation occlusion test: the shading
// pass enqueues one of these instead of tracing the any-hit query inline, so
// every shadow ray generated by a bounce can be traced together in a single
// bulk pass.
type ShadowRay struct {
	Ray          intersect.Ray
	Contribution types.Vec3
	PixelX       uint32
	PixelY       uint32
}

// rayGeneration is a preallocated, append-only buffer of in-flight path rays
// for one bounce. push uses atomic.AddInt32 as a compaction counter (the
// wavefront fetch_add idiom) rather than a mutex or channel, so concurrent
// shading workers can append survivors from disjoint goroutines without
// contending on a lock. Capacity is fixed at construction (at most one ray
// per pixel survives into any given generation), so push never grows the
// backing slice.
type rayGeneration struct {
	rays []PathRay
	n    int32
}

func newRayGeneration(capacity int) *rayGeneration {
	return &rayGeneration{rays: make([]PathRay, capacity)}
}

// reset drops the generation's contents, ready for reuse by the next bounce.
func (g *rayGeneration) reset() {
	atomic.StoreInt32(&g.n, 0)
}

// push appends r, claiming its slot via an atomic fetch-add.
func (g *rayGeneration) push(r PathRay) {
	idx := atomic.AddInt32(&g.n, 1) - 1
	g.rays[idx] = r
}

// slice returns the rays appended so far.
func (g *rayGeneration) slice() []PathRay {
	return g.rays[:atomic.LoadInt32(&g.n)]
}

// shadowGeneration is rayGeneration's counterpart for deferred shadow rays.
type shadowGeneration struct {
	rays []ShadowRay
	n    int32
}

func newShadowGeneration(capacity int) *shadowGeneration {
	return &shadowGeneration{rays: make([]ShadowRay, capacity)}
}

func (g *shadowGeneration) reset() {
	atomic.StoreInt32(&g.n, 0)
}

func (g *shadowGeneration) push(r ShadowRay) {
	idx := atomic.AddInt32(&g.n, 1) - 1
	g.rays[idx] = r
}

func (g *shadowGeneration) slice() []ShadowRay {
	return g.rays[:atomic.LoadInt32(&g.n)]
}
