package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/achilleasa/go-pathtrace/asset/scene/reader"
	"github.com/achilleasa/go-pathtrace/internal/tonemap"
	"github.com/achilleasa/go-pathtrace/renderer"
	"github.com/achilleasa/go-pathtrace/tracer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// parseTonemap maps the CLI operator name to its internal/tonemap.Kind.
func parseTonemap(name string) (tonemap.Kind, error) {
	switch name {
	case "linear":
		return tonemap.Linear, nil
	case "reinhard":
		return tonemap.Reinhard, nil
	case "hable":
		return tonemap.Hable, nil
	case "aces":
		return tonemap.ACES, nil
	default:
		return tonemap.Linear, fmt.Errorf("unknown tonemap operator %q", name)
	}
}

// RenderFrame renders a single still frame and writes it out as a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:          uint32(ctx.Int("width")),
		FrameH:          uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		Exposure:        float32(ctx.Float64("exposure")),
		NumBounces:      uint32(ctx.Int("num-bounces")),
		MinBouncesForRR: uint32(ctx.Int("rr-bounces")),
	}

	if opts.MinBouncesForRR == 0 || opts.MinBouncesForRR >= opts.NumBounces {
		logger.Notice("disabling RR for path elimination")
		opts.MinBouncesForRR = opts.NumBounces + 1
	}

	op, err := parseTonemap(ctx.String("tonemap"))
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	r, err := renderer.NewHeadless(sc, tracer.NewPerfectScheduler(), opts, op)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Print("rendering frame")
	start := time.Now()
	if err := r.Render(); err != nil {
		return err
	}
	logger.Noticef("rendered frame in %d ms", time.Since(start).Nanoseconds()/1000000)

	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, r.Frame()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", imgFile)

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Primary", "Block height", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%t", stat.IsPrimary),
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
