// Package imageaction implements what happens to the finished screen
// buffer once a render completes: either wait for an interactive
// resume signal, or hash and save it as a PNG.
package imageaction

import (
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakarias88/racer-tracer/config"
	"github.com/sakarias88/racer-tracer/tracerr"
)

const imageActionPrefix = "imageaction: "

func newSaveErr(format string, args ...any) error {
	return tracerr.New(tracerr.KindImageSave, imageActionPrefix+format, args...)
}

// ImageAction is invoked once a render's screen buffer is ready.
// argb is the screen-sized ARGB8 pixel buffer; width/height describe
// its dimensions.
type ImageAction interface {
	Action(argb []uint32, width, height int, cfg config.Config) error
}

// FromConfig returns the ImageAction variant selected by cfg.
func FromConfig(kind config.ImageActionKind) ImageAction {
	switch kind {
	case config.ImageActionSavePng:
		return NewSavePng()
	default:
		return NewWaitForSignal()
	}
}

// argbToImage converts a packed ARGB8 buffer into an image.NRGBA, the
// byte layout the reference's manual ARGB->RGBA shuffle produces by
// hand; image/png already knows how to encode NRGBA directly.
func argbToImage(argb []uint32, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, v := range argb {
		a := uint8((v >> 24) & 0xff)
		r := uint8((v >> 16) & 0xff)
		g := uint8((v >> 8) & 0xff)
		b := uint8(v & 0xff)
		img.SetNRGBA(i%width, i/width, color.NRGBA{R: r, G: g, B: b, A: a})
	}
	return img
}

// SavePng hashes the screen buffer's bytes with SHA-256 and writes it
// to config.ImageOutputDir as `<hash>.png`. If ImageOutputDir is unset,
// Action is a no-op, matching the reference's `None => Ok(())` branch.
type SavePng struct{}

// NewSavePng returns the SavePng action.
func NewSavePng() *SavePng { return &SavePng{} }

// Action implements ImageAction.
func (a *SavePng) Action(argb []uint32, width, height int, cfg config.Config) error {
	if cfg.ImageOutputDir == "" {
		return nil
	}

	slog.Info("saving image...")

	buf := make([]byte, 0, len(argb)*4)
	for _, v := range argb {
		al := uint8((v >> 24) & 0xff)
		r := uint8((v >> 16) & 0xff)
		g := uint8((v >> 8) & 0xff)
		b := uint8(v & 0xff)
		buf = append(buf, r, g, b, al)
	}
	sum := sha256.Sum256(buf)
	filePath := filepath.Join(cfg.ImageOutputDir, fmt.Sprintf("%X.png", sum))

	f, err := os.Create(filePath)
	if err != nil {
		return newSaveErr("%s: %v", filePath, err)
	}
	defer f.Close()

	if err := png.Encode(f, argbToImage(argb, width, height)); err != nil {
		return newSaveErr("%s: %v", filePath, err)
	}

	slog.Info("saved image", "path", filePath)
	return nil
}

// WaitForSignal is the default image action: it logs a prompt and
// relies on the caller (the scene controller) to have already blocked
// until the resume signal arrived before invoking Action, matching the
// reference's `event.wait()`/`event.reset()` pair.
type WaitForSignal struct{}

// NewWaitForSignal returns the WaitForSignal action.
func NewWaitForSignal() *WaitForSignal { return &WaitForSignal{} }

// Action implements ImageAction.
func (a *WaitForSignal) Action([]uint32, int, int, config.Config) error {
	slog.Info("press R to resume")
	return nil
}
