package wavefront

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/film"
	"github.com/achilleasa/go-pathtrace/internal/intersect"
	"github.com/achilleasa/go-pathtrace/internal/lights"
	"github.com/achilleasa/go-pathtrace/internal/raykind"
	"github.com/achilleasa/go-pathtrace/internal/rng"
	"github.com/achilleasa/go-pathtrace/internal/sampling"
	"github.com/achilleasa/go-pathtrace/internal/shading"
	"github.com/achilleasa/go-pathtrace/internal/tonemap"
	"github.com/achilleasa/go-pathtrace/tracer"
	"github.com/achilleasa/go-pathtrace/types"
)

// CPUTracer implements tracer.Tracer as a goroutine-parallel pure-Go path
// tracer: each Enqueue call drives its assigned row block through
// runGeneration's per-sample wavefront (primary rays, then a trace/shade/
// shadow-pass cycle per bounce, each stage fanned out across
// runtime.NumCPU() workers), accumulating into a persistent film.Buffer
// before resolving and tonemapping the affected rows directly into the
// caller-owned buffers from Setup.
//
// No OpenCL/device pipeline existed for this generation to adapt (the
// achilleasa/go-pathtrace asset/* generation predates tracer/opencl's
// retirement in this module, see DESIGN.md); this is a from-scratch backend
// satisfying the same tracer.Tracer contract.
type CPUTracer struct {
	id string

	sc        *scene.Scene
	pool      *lights.Pool
	tex       shading.TextureSampler
	tonemapOp tonemap.Kind

	params Params

	mu          sync.Mutex
	frameW      uint32
	frameH      uint32
	accumBuffer []float32
	frameBuffer []uint8
	buf         *film.Buffer

	statsMu sync.Mutex
	stats   tracer.Stats
}

// New builds a CPU tracer for the given (already compiled) scene.
func New(id string, sc *scene.Scene, pool *lights.Pool, tex shading.TextureSampler, params Params, tonemapOp tonemap.Kind) *CPUTracer {
	return &CPUTracer{
		id:        id,
		sc:        sc,
		pool:      pool,
		tex:       tex,
		params:    params,
		tonemapOp: tonemapOp,
	}
}

func (t *CPUTracer) Id() string { return t.id }

func (t *CPUTracer) Close() {}

// SpeedEstimate reports a flat baseline; a CPU backend has no device
// enumeration step to derive a relative throughput figure from.
func (t *CPUTracer) SpeedEstimate() float32 { return 1.0 }

func (t *CPUTracer) Setup(frameW, frameH uint32, accumBuffer []float32, frameBuffer []uint8) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if uint32(len(accumBuffer)) < frameW*frameH*3 {
		return fmt.Errorf("wavefront: accum buffer too small for %dx%d frame", frameW, frameH)
	}
	if uint32(len(frameBuffer)) < frameW*frameH*3 {
		return fmt.Errorf("wavefront: frame buffer too small for %dx%d frame", frameW, frameH)
	}

	t.frameW = frameW
	t.frameH = frameH
	t.accumBuffer = accumBuffer
	t.frameBuffer = frameBuffer
	t.buf = film.New(frameW, frameH)
	return nil
}

func (t *CPUTracer) AppendChange(kind tracer.ChangeType, payload interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch kind {
	case tracer.UpdateCamera:
		if cam, ok := payload.(*scene.Camera); ok {
			t.sc.Camera = cam
		}
	default:
		// The CPU tracer reads the BVH, primitive and material arrays
		// directly out of the shared *scene.Scene rather than a
		// separate device-side copy, so there is nothing to re-upload
		// for SetBvhNodes/SetPrimitivies/SetMaterials/
		// SetEmissiveLightIndices -- the scene mutation is already
		// visible to the next Enqueue call.
	}
}

func (t *CPUTracer) ApplyPendingChanges() error { return nil }

func (t *CPUTracer) Stats() *tracer.Stats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	s := t.stats
	return &s
}

// Enqueue renders BlockRequest.BlockH rows starting at BlockY, then resolves
// and tonemaps the block directly into the Setup-provided buffers. It
// signals completion on req.DoneChan (or an error on req.ErrChan) so callers
// can enqueue several tracers/blocks and wait on whichever finishes.
//
// Rendering itself is driven by runGeneration: one full wavefront pass (all
// pixels, every bounce) per sample index, so that within a single sample no
// pixel is ever written by more than one ray at a time -- the invariant
// film.Buffer's disjoint-pixel fast path depends on. Samples do not
// themselves run concurrently with each other; the parallelism is across
// pixels within each bounce's trace/shade stage instead, fanned out over
// runtime.NumCPU() workers.
func (t *CPUTracer) Enqueue(req tracer.BlockRequest) {
	go func() {
		start := time.Now()

		t.mu.Lock()
		frameW := t.frameW
		buf := t.buf
		accum := t.accumBuffer
		frame := t.frameBuffer
		cam := t.sc.Camera
		t.mu.Unlock()

		if cam == nil {
			if req.ErrChan != nil {
				req.ErrChan <- fmt.Errorf("wavefront: scene has no camera configured")
			}
			return
		}

		t.runGeneration(cam, frameW, req, buf)

		op := tonemap.New(t.tonemapOp, req.Exposure)
		for y := req.BlockY; y < req.BlockY+req.BlockH; y++ {
			for x := uint32(0); x < frameW; x++ {
				idx := y*frameW + x
				radiance := buf.Mean(x, y)
				accum[idx*3+0] = radiance[0]
				accum[idx*3+1] = radiance[1]
				accum[idx*3+2] = radiance[2]

				mapped := op.Map(radiance)
				frame[idx*3+0] = to8Bit(mapped[0])
				frame[idx*3+1] = to8Bit(mapped[1])
				frame[idx*3+2] = to8Bit(mapped[2])
			}
		}

		t.statsMu.Lock()
		t.stats = tracer.Stats{BlockH: req.BlockH, BlockTime: time.Since(start).Nanoseconds()}
		t.statsMu.Unlock()

		if req.DoneChan != nil {
			req.DoneChan <- req.BlockH
		}
	}()
}

// runGeneration drives the per-block wavefront: a persistent per-pixel PRNG
// stream (states) that advances across the whole sample loop exactly like a
// recursive tracer's per-ray state would, and a ping-ponged pair of
// rayGenerations that each bounce compacts into as rays miss, terminate or
// lose Russian roulette.
func (t *CPUTracer) runGeneration(cam *scene.Camera, frameW uint32, req tracer.BlockRequest, buf *film.Buffer) {
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}

	numPixels := int(frameW) * int(req.BlockH)
	states := make([]rng.State, numPixels)
	for y := uint32(0); y < req.BlockH; y++ {
		for x := uint32(0); x < frameW; x++ {
			py := req.BlockY + y
			states[y*frameW+x] = rng.New(req.Seed, uint16((py*frameW+x)%65536))
		}
	}

	genA := newRayGeneration(numPixels)
	genB := newRayGeneration(numPixels)
	shadow := newShadowGeneration(numPixels)

	for s := uint32(0); s < req.SamplesPerPixel; s++ {
		genA.reset()
		t.generatePrimaryRays(cam, frameW, req, buf, states, genA)

		for bounce := uint32(0); bounce <= t.params.NumBounces; bounce++ {
			current := genA.slice()
			if len(current) == 0 {
				break
			}

			shadow.reset()
			genB.reset()
			t.shadeGeneration(current, bounce, buf, shadow, genB)
			t.traceShadowGeneration(buf, shadow.slice())

			genA, genB = genB, genA
		}
	}
}

// generatePrimaryRays draws one camera sample per pixel in the block (the
// wavefront's primary ray generation stage) and seeds the film's sample
// counter for each, fanned out over numWorkers goroutines.
func (t *CPUTracer) generatePrimaryRays(cam *scene.Camera, frameW uint32, req tracer.BlockRequest, buf *film.Buffer, states []rng.State, gen *rayGeneration) {
	frameH := t.frameH
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}

	rows := int(req.BlockH)
	chunk := (rows + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > rows {
			hi = rows
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for row := lo; row < hi; row++ {
				y := req.BlockY + uint32(row)
				for x := uint32(0); x < frameW; x++ {
					idx := uint32(row)*frameW + x
					state := &states[idx]

					jitter := state.Sample2()
					u := (float32(x) + jitter[0]) / float32(frameW)
					v := (float32(y) + jitter[1]) / float32(frameH)

					lensRnd := state.Sample2()
					lensSample := sampling.UniformSquareToDisk(types.XY(lensRnd[0], lensRnd[1]))

					origin, dir := cam.PrimaryRay(u, v, lensSample)
					buf.BeginSample(x, y)
					gen.push(PathRay{
						Ray:          intersect.Ray{Origin: origin, Dir: dir.Normalize(), TMin: 0, TMax: maxRayDistance},
						Throughput:   types.XYZ(1, 1, 1),
						PrevPdf:      1,
						PrevSpecular: true,
						Flags:        raykind.Camera,
						PixelX:       x,
						PixelY:       y,
						State:        state,
					})
				}
			}
		}(lo, hi)
	}
	wg.Wait()
}

// shadeGeneration runs shadeRay for every ray in gen, fanned out over
// runtime.NumCPU() workers; each worker owns a contiguous slice of gen so
// its writes into shadow/next never race with another worker's.
func (t *CPUTracer) shadeGeneration(gen []PathRay, bounce uint32, buf *film.Buffer, shadow *shadowGeneration, next *rayGeneration) {
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}
	n := len(gen)
	chunk := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				shadeRay(t.sc, t.pool, t.tex, t.params, buf, gen[i], bounce, shadow, next)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// traceShadowGeneration is the wavefront's separate bulk shadow-ray pass: it
// any-hit traces every deferred NEE occlusion test accumulated this bounce
// and deposits the ones that cleared (were not occluded), fanned out over
// runtime.NumCPU() workers. Deposits go through AccumulateSynchronized since
// shadow rays from different path rays may legitimately target the same
// pixel within one bounce.
func (t *CPUTracer) traceShadowGeneration(buf *film.Buffer, gen []ShadowRay) {
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}
	n := len(gen)
	chunk := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				sr := gen[i]
				if !intersect.AnyHit(t.sc, sr.Ray) {
					buf.AccumulateSynchronized(sr.PixelX, sr.PixelY, sr.Contribution)
				}
			}
		}(lo, hi)
	}
	wg.Wait()
}

func to8Bit(c float32) uint8 {
	v := c*255 + 0.5
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
