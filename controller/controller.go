// Package controller implements the interactive scene controller: it
// turns per-frame input into camera/scene mutation, decides whether a
// frame triggers a cheap preview render or a full progressive render,
// and owns the render-request, render-cancel and stop signals that
// coordinate with the renderer. It keeps no image-ready signal: a
// completed full render is reported only through Render's return values.
package controller

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sakarias88/racer-tracer/camera"
	"github.com/sakarias88/racer-tracer/config"
	"github.com/sakarias88/racer-tracer/imageaction"
	"github.com/sakarias88/racer-tracer/render"
	"github.com/sakarias88/racer-tracer/scene"
	"github.com/sakarias88/racer-tracer/vec3"
	"github.com/sakarias88/racer-tracer/window"
)

// State is the controller's render state machine.
type State int

const (
	StateIdle State = iota
	StatePreviewRendering
	StateFinalRendering
	StateCancelled
)

// signal is a manual-reset event, the Go equivalent of the reference's
// synchronoise::SignalEvent: set marks it, status reports it without
// clearing it, and reset clears it.
type signal struct {
	flag atomic.Bool
}

func (s *signal) set()        { s.flag.Store(true) }
func (s *signal) status() bool { return s.flag.Load() }
func (s *signal) reset()      { s.flag.Store(false) }

// Input is one frame's collected keyboard/mouse state. PickX/PickY are
// the mouse's normalized (u,v) screen position, sampled every frame
// regardless of whether KeyQ was released this frame.
type Input struct {
	Held, Released map[window.Key]bool
	MouseLeftDX, MouseLeftDY   float64
	MouseRightDX, MouseRightDY float64
	PickX, PickY               float64
}

// Interactive is the default (and only) SceneController implementation:
// it drives camera movement, object picking/translation/removal, and the
// preview-vs-full render decision. It has no field-of-view or aperture
// controls.
type Interactive struct {
	cfg                        config.Config
	cameraSpeed, cameraSens    float64
	objectMoveSpeed            float64
	renderRequested            signal
	cancelRequested            signal
	stopRequested              signal
	renderer, previewRenderer  render.Renderer
	imageAction                imageaction.ImageAction
	state                      State
}

// New returns an Interactive controller configured from cfg.
func New(cfg config.Config) *Interactive {
	renderer := render.Renderer(render.NewCpu())
	if cfg.Renderer == config.RendererCpuPreview {
		renderer = render.NewCpuPreview()
	}
	preview := render.Renderer(render.NewCpuPreview())
	if cfg.PreviewRenderer == config.RendererCpu {
		preview = render.NewCpu()
	}

	return &Interactive{
		cfg:             cfg,
		cameraSpeed:     cfg.Camera.Speed,
		cameraSens:      cfg.Camera.Sensitivity,
		objectMoveSpeed: 0.000001,
		renderer:        renderer,
		previewRenderer: preview,
		imageAction:     imageaction.FromConfig(cfg.ImageAction),
		state:           StateIdle,
	}
}

// Update applies one frame of input to camera and scene.
func (c *Interactive) Update(dt float64, in Input, cam *camera.Camera, s *scene.Scene) {
	if in.Released[window.KeyR] {
		c.renderRequested.set()
	}
	if in.Released[window.KeyEscape] {
		c.stopRequested.set()
		c.cancelRequested.set()
	}
	if in.Released[window.KeyQ] {
		if _, ok := s.PickAt(cam.Data().Origin, pickDirection(cam.Data(), in.PickX, in.PickY)); !ok {
			slog.Debug("pick missed")
		}
	}
	if in.Released[window.KeyE] {
		if id, ok := s.Selected(); ok {
			if err := s.Remove(id); err != nil {
				slog.Debug("remove failed", "error", err)
			}
		}
	}

	if in.Held[window.KeyLeft] {
		translateSelected(s, cam.Data().Right.Scale(-dt*c.objectMoveSpeed))
	}
	if in.Held[window.KeyRight] {
		translateSelected(s, cam.Data().Right.Scale(dt*c.objectMoveSpeed))
	}
	if in.Held[window.KeyUp] {
		translateSelected(s, cam.Data().Forward.Scale(-dt*c.objectMoveSpeed))
	}
	if in.Held[window.KeyDown] {
		translateSelected(s, cam.Data().Forward.Scale(dt*c.objectMoveSpeed))
	}

	if in.Held[window.KeyW] {
		cam.GoForward(-dt * c.cameraSpeed)
	}
	if in.Held[window.KeyS] {
		cam.GoForward(dt * c.cameraSpeed)
	}
	if in.Held[window.KeyA] {
		cam.GoRight(-dt * c.cameraSpeed)
	}
	if in.Held[window.KeyD] {
		cam.GoRight(dt * c.cameraSpeed)
	}

	if in.MouseLeftDX != 0 || in.MouseLeftDY != 0 {
		cam.Rotate(in.MouseLeftDX*c.cameraSens, in.MouseLeftDY*c.cameraSens)
	}
	if in.MouseRightDX != 0 || in.MouseRightDY != 0 {
		delta := cam.Data().Up.Scale(in.MouseRightDY * dt * c.objectMoveSpeed).
			Add(cam.Data().Right.Scale(-in.MouseRightDX * dt * c.objectMoveSpeed))
		translateSelected(s, delta)
	}
}

func translateSelected(s *scene.Scene, delta vec3.Vec3) {
	if err := s.TranslateSelected(delta); err != nil {
		slog.Debug("translate selected failed", "error", err)
	}
}

// pickDirection derives a pick ray's direction through normalized
// screen coordinates (u,v), the same camera-basis mapping GetRay uses
// for a primary sample ray but through the lens center rather than a
// jittered lens sample, since a pick ray has no depth-of-field blur to
// reproduce.
func pickDirection(data camera.SharedData, u, v float64) vec3.Vec3 {
	return data.UpperLeftCorner.
		Add(data.Horizontal.Scale(u)).
		Sub(data.Vertical.Scale(v)).
		Sub(data.Origin)
}

// State returns the controller's current render state.
func (c *Interactive) State() State { return c.state }

// Stop marks the controller stopped and raises the render-request signal.
// It does not raise the cancel signal, so a render already in flight runs
// to completion.
func (c *Interactive) Stop() {
	c.renderRequested.set()
	c.stopRequested.set()
}

// RequestRender marks a full render as pending, as if the user had
// pressed the resume-render key. The next call to Render performs a
// full pass rather than a preview.
func (c *Interactive) RequestRender() {
	c.renderRequested.set()
}

// Render decides, based on scene/camera change and an explicit render
// request, whether to run a cheap preview pass or a full progressive
// pass, and runs it. It returns the elapsed render time for a full
// pass's logging, or zero for a preview.
func (c *Interactive) Render(sceneChanged bool, rd render.RenderData) (time.Duration, error) {
	if !sceneChanged && !c.renderRequested.status() {
		return 0, nil
	}

	if !c.renderRequested.status() {
		c.state = StatePreviewRendering
		rd.Cancel = nil
		err := c.previewRenderer.Render(rd)
		c.state = StateIdle
		return 0, err
	}

	c.state = StateFinalRendering
	c.renderRequested.reset()
	start := time.Now()
	rd.Cancel = c.cancelRequested.status
	err := c.renderer.Render(rd)
	elapsed := time.Since(start)
	if c.cancelRequested.status() {
		c.state = StateCancelled
		c.cancelRequested.reset()
	} else {
		c.state = StateIdle
	}
	return elapsed, err
}
