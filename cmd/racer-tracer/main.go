// Command racer-tracer is the composition root: it wires configuration,
// scene loading, the event buses, the BVH, the renderer and the image
// pipeline together and drives one full render to completion.
//
// A real interactive window backend is out of scope (§6): Display is a
// stubbed interface here, so this entry point runs the render loop
// headlessly — scene mutation and camera movement still flow through
// the same controller and bus wiring a window-backed run would use, but
// no interactive input drives them.
package main

import (
	"log/slog"
	"math/rand"
	"os"

	"github.com/sakarias88/racer-tracer/background"
	"github.com/sakarias88/racer-tracer/bvh"
	"github.com/sakarias88/racer-tracer/camera"
	"github.com/sakarias88/racer-tracer/config"
	"github.com/sakarias88/racer-tracer/controller"
	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/imagebuf"
	"github.com/sakarias88/racer-tracer/imageaction"
	"github.com/sakarias88/racer-tracer/render"
	"github.com/sakarias88/racer-tracer/scene"
	"github.com/sakarias88/racer-tracer/sceneloader"
	"github.com/sakarias88/racer-tracer/tonemap"
	"github.com/sakarias88/racer-tracer/tracerr"
	"github.com/sakarias88/racer-tracer/vec3"
)

func main() {
	if err := run(); err != nil {
		if te, ok := err.(*tracerr.Error); ok {
			if te.Expected() {
				os.Exit(te.ExitCode())
			}
			slog.Error(te.Error(), "kind", te.Kind)
			os.Exit(te.ExitCode())
		}
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	args := config.ParseArgs()
	cfg, err := config.Resolve(args)
	if err != nil {
		return err
	}
	config.Configure(&cfg)

	rng := rand.New(rand.NewSource(1))

	sceneBus := databus.New[scene.ObjectEvent]("scene")
	s, err := loadScene(cfg, sceneBus.GetWriter(), rng)
	if err != nil {
		return err
	}

	bounds := bvh.New(s.Objects(), sceneBus.GetReader(), 0, 0, rng.Int63())

	image := imagebuf.New(cfg.Screen.Width, cfg.Screen.Height)
	aspect := image.AspectRatio

	cameraBus := databus.New[camera.SharedData]("camera")
	cam := camera.New(camera.Params{
		LookFrom:      cfg.Camera.Pos,
		LookAt:        cfg.Camera.LookAt,
		SceneUp:       vec3.New(0, 1, 0),
		VFov:          cfg.Camera.VFov,
		AspectRatio:   aspect,
		Aperture:      cfg.Camera.Aperture,
		FocusDistance: cfg.Camera.FocusDistance,
	}, cameraBus.GetWriter())
	if err := cameraBus.Update(); err != nil {
		return err
	}
	shared := camera.NewShared(cam.Data(), cameraBus.GetReader())

	bg := background.DefaultSky()
	toneMap := resolveToneMap(cfg.ToneMap)

	// radianceBuf is the bus the renderer's workers publish raw per-tile
	// radiance onto; screen subscribes to its reader, tone maps each
	// tile, and republishes the mapped result onto displayBus for
	// whatever is showing pixels on screen (a stubbed sink here, since a
	// real window backend is out of scope for this headless run).
	radianceBuf := imagebuf.NewImageBuffer(image)
	displayBus := databus.New[imagebuf.TileEvent]("display")
	screen := imagebuf.NewScreenBuffer(image, radianceBuf.GetDataReader(), imagebuf.NewWriter(displayBus.GetWriter()), toneMap)

	ctrl := controller.New(cfg)
	ctrl.Stop() // headless run: no interactive frames follow; the single pass below calls the full renderer directly.

	rd := render.RenderData{
		Scene:      bounds,
		CameraData: shared.Data(),
		Image:      image,
		Background: bg,
		Config: render.Config{
			Samples:        cfg.Render.Samples,
			MaxDepth:       cfg.Render.MaxDepth,
			NumThreadsWide: cfg.Render.NumThreadsWide,
			NumThreadsHigh: cfg.Render.NumThreadsHigh,
			Scale:          cfg.Render.Scale,
		},
		Writer: radianceBuf.GetWriter(),
		Seed:   rng.Int63(),
	}

	full := render.NewCpu()
	slog.Info("rendering", "width", image.Width, "height", image.Height, "samples", rd.Config.Samples)
	if err := full.Render(rd); err != nil {
		return err
	}
	if err := radianceBuf.Update(); err != nil {
		return err
	}
	if err := screen.Update(); err != nil {
		return err
	}
	slog.Info("render complete")

	return imageaction.FromConfig(cfg.ImageAction).Action(toARGB(screen.RGB()), image.Width, image.Height, cfg)
}

func loadScene(cfg config.Config, writer databus.DataWriter[scene.ObjectEvent], rng *rand.Rand) (*scene.Scene, error) {
	switch cfg.Loader.Kind {
	case config.SceneLoaderYml:
		return sceneloader.FromFile(cfg.Loader.Path, writer, 0, 0, rng)
	case config.SceneLoaderRandom:
		return sceneloader.NewRandom(writer, 0, 0, rng), nil
	case config.SceneLoaderSandbox:
		return sceneloader.NewSandbox(writer, 0, 0), nil
	default:
		return scene.New(writer, 0, 0), nil
	}
}

func resolveToneMap(c config.ToneMapConfig) tonemap.ToneMap {
	switch c.Kind {
	case config.ToneMapReinhard:
		maxWhite := c.MaxWhite
		if maxWhite == 0 {
			maxWhite = 25
		}
		return tonemap.NewReinhard(maxWhite)
	case config.ToneMapHable:
		exposureBias := c.ExposureBias
		if exposureBias == 0 {
			exposureBias = 2
		}
		whitePoint := c.LinearWhitePoint
		if whitePoint == 0 {
			whitePoint = 11.2
		}
		return tonemap.NewHable(tonemap.DefaultHableData(), exposureBias, whitePoint)
	case config.ToneMapAces:
		return tonemap.NewAces(tonemap.DefaultAcesInput(), tonemap.DefaultAcesOutput())
	default:
		return tonemap.NewNone()
	}
}

// toARGB packs tone-mapped linear colors into the 0xAARRGGBB layout the
// image action expects, clamping each channel to [0,255].
func toARGB(rgb []vec3.Color) []uint32 {
	buf := make([]uint32, len(rgb))
	for i, c := range rgb {
		r := clampByte(c.X())
		g := clampByte(c.Y())
		b := clampByte(c.Z())
		buf[i] = 0xff000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return buf
}

func clampByte(v float64) uint32 {
	v *= 255.999
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v)
}
