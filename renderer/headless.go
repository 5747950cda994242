package renderer

import (
	"image"
	"time"

	"github.com/achilleasa/go-pathtrace/asset/scene"
	"github.com/achilleasa/go-pathtrace/internal/lights"
	"github.com/achilleasa/go-pathtrace/internal/shading"
	"github.com/achilleasa/go-pathtrace/internal/tonemap"
	"github.com/achilleasa/go-pathtrace/internal/wavefront"
	"github.com/achilleasa/go-pathtrace/tracer"
	"github.com/achilleasa/go-pathtrace/types"
)

// Headless renders a still frame entirely off-screen, driving one or more
// tracer.Tracer backends through a tracer.BlockScheduler and resolving the
// result into an RGBA image instead of a window surface.
//
// No renderer.NewDefault/defaultRenderer implementation was ever retrieved
// for either the asset/* or legacy scene/* generation of this module (see
// DESIGN.md); this is a new implementation of the Renderer interface, built
// against the same Options/FrameStats contracts the rest of this package
// already defines.
type Headless struct {
	sc        *scene.Scene
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer
	opts      Options
	tonemapOp tonemap.Kind

	accumBuffer []float32
	frameBuffer []uint8

	stats FrameStats
}

// materialEmission bridges a material node index back to the radiance it
// emits, for use as the light pool's NEE shading callback. It samples with
// a zero UV since analytic/mesh lights in this module carry a constant
// radiance rather than an emission texture.
func materialEmission(sc *scene.Scene, tex shading.TextureSampler) lights.Emitter {
	return func(shaderIndex int32, position, wo types.Vec3) types.Vec3 {
		mat := shading.Evaluate(sc.MaterialNodeList, shaderIndex, types.Vec2{}, nil, tex)
		return mat.Emission
	}
}

// NewHeadless builds a Headless renderer for sc, attaching a single
// goroutine-parallel CPU tracer (internal/wavefront.CPUTracer). The CPU
// tracer already fans its assigned rows out across every available core, so
// a single tracer instance is this backend's one "device".
func NewHeadless(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options, tonemapOp tonemap.Kind) (*Headless, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}

	sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))

	tex := shading.NewSceneTextureSampler(sc)
	envResolution := 64
	pool := lights.BuildPoolFromScene(sc, materialEmission(sc, tex), envResolution)

	params := wavefront.Params{NumBounces: opts.NumBounces, MinBouncesForRR: opts.MinBouncesForRR}
	cpu := wavefront.New("cpu-0", sc, pool, tex, params, tonemapOp)

	accumBuffer := make([]float32, opts.FrameW*opts.FrameH*3)
	frameBuffer := make([]uint8, opts.FrameW*opts.FrameH*3)
	if err := cpu.Setup(opts.FrameW, opts.FrameH, accumBuffer, frameBuffer); err != nil {
		return nil, err
	}

	return &Headless{
		sc:          sc,
		scheduler:   scheduler,
		tracers:     []tracer.Tracer{cpu},
		opts:        opts,
		tonemapOp:   tonemapOp,
		accumBuffer: accumBuffer,
		frameBuffer: frameBuffer,
	}, nil
}

// Render dispatches one block per attached tracer (sized by the
// BlockScheduler), waits for every block to finish, and records per-tracer
// timing in Stats().
func (r *Headless) Render() error {
	if len(r.tracers) == 0 {
		return ErrNoTracers
	}

	start := time.Now()

	blockHeights := r.scheduler.Schedule(r.tracers, r.opts.FrameH, r.stats.RenderTime.Nanoseconds())

	done := make(chan uint32, len(r.tracers))
	errCh := make(chan error, len(r.tracers))

	var blockY uint32
	for i, tr := range r.tracers {
		h := blockHeights[i]
		if blockY+h > r.opts.FrameH {
			h = r.opts.FrameH - blockY
		}
		tr.Enqueue(tracer.BlockRequest{
			BlockY:          blockY,
			BlockH:          h,
			SamplesPerPixel: r.opts.SamplesPerPixel,
			Exposure:        r.opts.Exposure,
			Seed:            uint32(i) + 1,
			FrameCount:      1,
			DoneChan:        done,
			ErrChan:         errCh,
		})
		blockY += h
	}

	tracerStats := make([]TracerStat, 0, len(r.tracers))
	for i := 0; i < len(r.tracers); i++ {
		select {
		case err := <-errCh:
			return err
		case h := <-done:
			stats := r.tracers[i].Stats()
			tracerStats = append(tracerStats, TracerStat{
				Id:           r.tracers[i].Id(),
				IsPrimary:    i == 0,
				BlockH:       h,
				FramePercent: 100 * float32(h) / float32(r.opts.FrameH),
				RenderTime:   time.Duration(stats.BlockTime),
			})
		}
	}

	r.stats = FrameStats{Tracers: tracerStats, RenderTime: time.Since(start)}
	return nil
}

func (r *Headless) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
}

func (r *Headless) Stats() FrameStats { return r.stats }

// Frame converts the resolved, tonemapped frame buffer into an image.RGBA
// ready for PNG encoding.
func (r *Headless) Frame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(r.opts.FrameW), int(r.opts.FrameH)))
	for i := uint32(0); i < r.opts.FrameW*r.opts.FrameH; i++ {
		img.Pix[i*4+0] = r.frameBuffer[i*3+0]
		img.Pix[i*4+1] = r.frameBuffer[i*3+1]
		img.Pix[i*4+2] = r.frameBuffer[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img
}
