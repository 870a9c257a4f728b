// Package render implements the tile-parallel CPU path tracer: the
// recursive ray_color shading function and the two Renderer
// implementations (full and scaled preview) that drive it across a
// worker pool.
package render

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/sakarias88/racer-tracer/background"
	"github.com/sakarias88/racer-tracer/camera"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/imagebuf"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/tracerr"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Hittable is the ray-scene intersection contract both the brute-force
// Scene and the BVH satisfy; the renderer only ever needs this much.
type Hittable interface {
	Hit(r ray.Ray, tMin, tMax float64) (geometry.HitRecord, bool)
}

// Config bundles the sampling parameters for one render pass. Preview
// and full renders use independently configured values of this type.
type Config struct {
	Samples         int
	MaxDepth        int
	NumThreadsWide  int
	NumThreadsHigh  int

	// Scale is the block size a CpuPreview renderer replicates each
	// sampled pixel across. Unused by the full Cpu renderer.
	Scale int
}

// RenderData bundles everything one render pass needs: the scene to
// trace against, a snapshot of the camera, the target image geometry,
// the miss-ray background, sampling config, the tile output writer and
// an optional cancellation check consulted between tile rows.
type RenderData struct {
	Scene      Hittable
	CameraData camera.SharedData
	Image      imagebuf.Image
	Background background.Background
	Config     Config
	Writer     imagebuf.Writer
	Seed       int64
	Cancel     func() bool
}

func (rd RenderData) canceled() bool {
	return rd.Cancel != nil && rd.Cancel()
}

// Renderer drives one full pass over an image, publishing finished
// tiles as it goes.
type Renderer interface {
	Render(rd RenderData) error
}

// rayColor recursively shades one ray: a miss is colored by the
// background, an absorbed ray returns only its hit point's emission, and
// a scattered ray adds the scattering material's emission to its
// attenuated recursive contribution. depth reaching zero terminates the
// recursion with black, bounding worst-case cost.
func rayColor(rng *rand.Rand, scene Hittable, bg background.Background, r ray.Ray, depth int) vec3.Color {
	if depth <= 0 {
		return vec3.Vec3{}
	}

	rec, ok := scene.Hit(r, 0.001, math.Inf(1))
	if !ok {
		return bg.Color(r)
	}

	emitted := rec.Material.Emitted(rec.U, rec.V, rec.Point)
	scattered, attenuation, ok := rec.Material.Scatter(r, rec, rng)
	if !ok {
		return emitted
	}
	return emitted.Add(attenuation.Mul(rayColor(rng, scene, bg, scattered, depth-1)))
}

// scaleSqrt divides each channel of the accumulated color by the sample
// count and applies gamma-2 correction (sqrt), matching the reference
// implementation's `scale_sqrt`.
func scaleSqrt(c vec3.Color, samples int) vec3.Color {
	scale := 1.0 / float64(samples)
	return vec3.New(
		math.Sqrt(c.X()*scale),
		math.Sqrt(c.Y()*scale),
		math.Sqrt(c.Z()*scale),
	)
}

// prepareTiles partitions the image into NumThreadsWide*NumThreadsHigh
// rectangular tiles. The last row/column of tiles absorbs any remainder
// so the partition always covers the full image exactly once.
func prepareTiles(rd RenderData) []imagebuf.SubImage {
	widthStep := rd.Image.Width / rd.Config.NumThreadsWide
	heightStep := rd.Image.Height / rd.Config.NumThreadsHigh

	tiles := make([]imagebuf.SubImage, 0, rd.Config.NumThreadsWide*rd.Config.NumThreadsHigh)
	for ws := 0; ws < rd.Config.NumThreadsWide; ws++ {
		width := widthStep
		if ws == rd.Config.NumThreadsWide-1 {
			width = rd.Image.Width - widthStep*ws
		}
		for hs := 0; hs < rd.Config.NumThreadsHigh; hs++ {
			height := heightStep
			if hs == rd.Config.NumThreadsHigh-1 {
				height = rd.Image.Height - heightStep*hs
			}
			tiles = append(tiles, imagebuf.SubImage{
				X:            widthStep * ws,
				Y:            heightStep * hs,
				ScreenWidth:  rd.Image.Width,
				ScreenHeight: rd.Image.Height,
				Width:        width,
				Height:       height,
				Writer:       rd.Writer,
			})
		}
	}
	return tiles
}

// tileSeed derives a per-tile PRNG seed from the render's base seed so
// each worker gets its own *rand.Rand and no global generator needs a
// lock, while still being reproducible for a fixed base seed.
func tileSeed(base int64, tile imagebuf.SubImage) int64 {
	return base + int64(tile.Y)*int64(tile.ScreenWidth) + int64(tile.X) + 1
}

// Cpu is the full-resolution CPU renderer: every pixel is sampled
// Config.Samples times independently.
type Cpu struct{}

// NewCpu returns the full-resolution renderer.
func NewCpu() *Cpu { return &Cpu{} }

func (c *Cpu) raytraceTile(rd RenderData, tile imagebuf.SubImage) error {
	rng := rand.New(rand.NewSource(tileSeed(rd.Seed, tile)))
	colors := make([]vec3.Color, tile.Width*tile.Height)

	for row := 0; row < tile.Height; row++ {
		for col := 0; col < tile.Width; col++ {
			var accum vec3.Color
			for s := 0; s < rd.Config.Samples; s++ {
				u := (float64(tile.X+col) + rng.Float64()) / float64(tile.ScreenWidth-1)
				v := (float64(tile.Y+row) + rng.Float64()) / float64(tile.ScreenHeight-1)
				r := rd.CameraData.GetRay(u, v, rng)
				accum = accum.Add(rayColor(rng, rd.Scene, rd.Background, r, rd.Config.MaxDepth))
			}
			colors[row*tile.Width+col] = scaleSqrt(accum, rd.Config.Samples)
		}
		if rd.canceled() {
			return tracerr.Cancel()
		}
	}

	if rd.canceled() {
		return tracerr.Cancel()
	}
	return tile.Writer.Write(colors, tile.Y, tile.X, tile.Width, tile.Height)
}

// Render implements Renderer: every tile is raytraced concurrently, and
// once every tile goroutine has returned the pass returns the first tile
// error (cancellation or a bus write failure), per the errgroup idiom.
func (c *Cpu) Render(rd RenderData) error {
	if rd.canceled() {
		return tracerr.Cancel()
	}
	tiles := prepareTiles(rd)

	g, _ := errgroup.WithContext(context.Background())
	for _, tile := range tiles {
		tile := tile
		g.Go(func() error {
			return c.raytraceTile(rd, tile)
		})
	}
	return g.Wait()
}

// highestDivisor returns the largest divisor of value that is <= div,
// so a preview's block size never straddles a tile boundary.
func highestDivisor(value, div int) int {
	if div > value {
		div = value
	}
	for div > 1 && value%div != 0 {
		div--
	}
	return div
}

// CpuPreview is the scaled preview renderer: it samples one pixel per
// Config.Scale x Config.Scale block and replicates the result across
// the whole block, trading resolution for a much cheaper pass.
type CpuPreview struct{}

// NewCpuPreview returns the scaled preview renderer.
func NewCpuPreview() *CpuPreview { return &CpuPreview{} }

func (c *CpuPreview) raytraceTile(rd RenderData, tile imagebuf.SubImage, scaleW, scaleH int) error {
	rng := rand.New(rand.NewSource(tileSeed(rd.Seed, tile)))
	scaledWidth := tile.Width / scaleW
	scaledHeight := tile.Height / scaleH
	colors := make([]vec3.Color, scaledWidth*scaledHeight)

	for row := 0; row < scaledHeight; row++ {
		for col := 0; col < scaledWidth; col++ {
			var accum vec3.Color
			for s := 0; s < rd.Config.Samples; s++ {
				u := (float64(tile.X+col*scaleW) + rng.Float64()) / float64(tile.ScreenWidth-1)
				v := (float64(tile.Y+row*scaleH) + rng.Float64()) / float64(tile.ScreenHeight-1)
				r := rd.CameraData.GetRay(u, v, rng)
				accum = accum.Add(rayColor(rng, rd.Scene, rd.Background, r, rd.Config.MaxDepth))
			}
			colors[row*scaledWidth+col] = scaleSqrt(accum, rd.Config.Samples)
		}
		if rd.canceled() {
			return tracerr.Cancel()
		}
	}

	if rd.canceled() {
		return tracerr.Cancel()
	}

	full := make([]vec3.Color, tile.Width*tile.Height)
	for sr := 0; sr < scaledHeight; sr++ {
		for sc := 0; sc < scaledWidth; sc++ {
			color := colors[sr*scaledWidth+sc]
			for bh := 0; bh < scaleH; bh++ {
				for bw := 0; bw < scaleW; bw++ {
					row := sr*scaleH + bh
					col := sc*scaleW + bw
					full[row*tile.Width+col] = color
				}
			}
		}
	}
	return tile.Writer.Write(full, tile.Y, tile.X, tile.Width, tile.Height)
}

// Render implements Renderer.
func (c *CpuPreview) Render(rd RenderData) error {
	if rd.canceled() {
		return tracerr.Cancel()
	}
	widthStep := rd.Image.Width / rd.Config.NumThreadsWide
	heightStep := rd.Image.Height / rd.Config.NumThreadsHigh
	scaleW := highestDivisor(widthStep, rd.Config.Scale)
	scaleH := highestDivisor(heightStep, rd.Config.Scale)

	tiles := prepareTiles(rd)
	g, _ := errgroup.WithContext(context.Background())
	for _, tile := range tiles {
		tile := tile
		g.Go(func() error {
			return c.raytraceTile(rd, tile, scaleW, scaleH)
		})
	}
	return g.Wait()
}
