// Package imagebuf assembles per-tile radiance output from the renderer
// into full image-sized buffers, and applies tone mapping on the way to
// the display surface.
//
// Two buffers sit in a pipeline: the renderer publishes TileEvents onto
// an ImageBuffer (linear radiance), and a ScreenBuffer subscribes to
// those events, tone maps each tile, and republishes the tone-mapped
// tiles for whatever is showing pixels on screen.
package imagebuf

import (
	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/tonemap"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Image describes the full render target's dimensions.
type Image struct {
	Width, Height int
	AspectRatio   float64
}

// New returns an Image with AspectRatio derived from width/height.
func New(width, height int) Image {
	return Image{
		Width:       width,
		Height:      height,
		AspectRatio: float64(width) / float64(height),
	}
}

// ScreenToUV converts a screen-space pixel coordinate to the [0,1] UV
// space the camera's ray generation expects.
func (i Image) ScreenToUV(screenX, screenY float64) (float64, float64) {
	return screenX / float64(i.Width), screenY / float64(i.Height)
}

// TileEvent carries one rectangular block of colors, positioned at
// (R,C) within the full screen-sized image.
type TileEvent struct {
	RGB           []vec3.Color
	R, C          int
	Width, Height int
}

// SubImage is one worker's assigned render region: its placement and
// extent within the full screen, plus the writer it publishes finished
// tiles through.
type SubImage struct {
	X, Y                       int
	ScreenWidth, ScreenHeight  int
	Width, Height              int
	Writer                     Writer
}

// Writer publishes finished tiles onto an image buffer's bus.
type Writer struct {
	writer databus.DataWriter[TileEvent]
}

// NewWriter wraps a raw TileEvent writer.
func NewWriter(w databus.DataWriter[TileEvent]) Writer {
	return Writer{writer: w}
}

// Write publishes one tile. rgb is row-major, width*height long.
func (w Writer) Write(rgb []vec3.Color, r, c, width, height int) error {
	return w.writer.Write(TileEvent{RGB: rgb, R: r, C: c, Width: width, Height: height})
}

// ImageBuffer is the radiance-tile bus the renderer's workers publish
// onto. It owns no pixel storage of its own; readers assemble the
// full-image view themselves from the tile stream.
type ImageBuffer struct {
	bus   *databus.DataBus[TileEvent]
	image Image
}

// NewImageBuffer returns an ImageBuffer sized for image.
func NewImageBuffer(image Image) *ImageBuffer {
	return &ImageBuffer{
		image: image,
		bus:   databus.New[TileEvent]("ImageBuffer"),
	}
}

// GetWriter returns a writer publishing tiles onto this buffer.
func (b *ImageBuffer) GetWriter() Writer {
	return NewWriter(b.bus.GetWriter())
}

// GetReader returns a reader that assembles tiles into a full-image
// grid as Update is called.
func (b *ImageBuffer) GetReader() *Reader {
	return NewReader(b.image, b.bus.GetReader())
}

// GetDataReader exposes the raw event reader, for components (such as
// ScreenBuffer) that need to forward tiles rather than assemble them.
func (b *ImageBuffer) GetDataReader() databus.DataReader[TileEvent] {
	return b.bus.GetReader()
}

// Update drains the intake queue and broadcasts to every reader.
func (b *ImageBuffer) Update() error {
	return b.bus.Update()
}

// Reader assembles a stream of tile events into a linear, row-major
// grid the size of the full image.
type Reader struct {
	reader      databus.DataReader[TileEvent]
	changed     bool
	imageWidth  int
	rgb         []vec3.Color
}

// NewReader returns a Reader that assembles tiles for an image-sized
// grid.
func NewReader(image Image, reader databus.DataReader[TileEvent]) *Reader {
	return &Reader{
		imageWidth: image.Width,
		rgb:        make([]vec3.Color, image.Width*image.Height),
		reader:     reader,
	}
}

// Update drains pending tile events into the assembled grid.
func (r *Reader) Update() error {
	messages, err := r.reader.GetMessages()
	if err != nil {
		return err
	}
	r.changed = len(messages) > 0
	for _, event := range messages {
		for row := 0; row < event.Height; row++ {
			for col := 0; col < event.Width; col++ {
				bufIndex := row*event.Width + col
				index := (event.R+row)*r.imageWidth + event.C + col
				r.rgb[index] = event.RGB[bufIndex]
			}
		}
	}
	return nil
}

// Changed reports whether the last Update applied any tiles, and
// clears the flag.
func (r *Reader) Changed() bool {
	res := r.changed
	r.changed = false
	return res
}

// RGB returns the assembled image, row-major.
func (r *Reader) RGB() []vec3.Color {
	return r.rgb
}

// ScreenBuffer sits downstream of an ImageBuffer: it tone maps each
// incoming radiance tile and republishes the result for display
// consumers. It has no intake bus of its own — it reads from the
// upstream ImageBuffer's own DataReader (ImageBuffer.GetDataReader),
// so the radiance tiles it tone maps are exactly the ones the renderer
// published, drained once the ImageBuffer's own Update has broadcast
// them.
type ScreenBuffer struct {
	buffer  []vec3.Color
	out     Writer
	reader  databus.DataReader[TileEvent]
	image   Image
	toneMap tonemap.ToneMap
}

// NewScreenBuffer returns a ScreenBuffer that tone maps radiance tiles
// drained from in (an upstream ImageBuffer's DataReader) and republishes
// the tone-mapped result through out.
func NewScreenBuffer(image Image, in databus.DataReader[TileEvent], out Writer, toneMap tonemap.ToneMap) *ScreenBuffer {
	return &ScreenBuffer{
		buffer:  make([]vec3.Color, image.Width*image.Height),
		out:     out,
		image:   image,
		reader:  in,
		toneMap: toneMap,
	}
}

// RGB returns the tone-mapped, assembled image, row-major.
func (s *ScreenBuffer) RGB() []vec3.Color {
	return s.buffer
}

// Update drains the upstream radiance reader, tone maps each tile,
// stores it into the assembled image buffer, and republishes the
// tone-mapped tile through out. The caller is responsible for having
// already called the upstream ImageBuffer's Update so the tiles this
// drains are current.
func (s *ScreenBuffer) Update() error {
	messages, err := s.reader.GetMessages()
	if err != nil {
		return err
	}
	for _, event := range messages {
		mapped := make([]vec3.Color, len(event.RGB))
		for row := 0; row < event.Height; row++ {
			for col := 0; col < event.Width; col++ {
				idx := row*event.Width + col
				c := s.toneMap.ToneMap(event.RGB[idx])
				mapped[idx] = c
				s.buffer[(event.R+row)*s.image.Width+event.C+col] = c
			}
		}
		if err := s.out.Write(mapped, event.R, event.C, event.Width, event.Height); err != nil {
			return err
		}
	}
	return nil
}
