// Package window defines the display and input contracts the
// interactive scene controller depends on, without committing to any
// particular windowing backend — a real one (GLFW, minifb-equivalent,
// etc.) can satisfy Display and drive KeyInputs without the renderer or
// controller changing.
package window

import "log/slog"

// Display is the minimal surface a windowing backend must expose: push
// a screen-sized pixel buffer and report whether the user asked to
// close it.
type Display interface {
	Blit(buf []uint32, width, height int) error
	ShouldClose() bool
}

// Key identifies a keyboard key the controller cares about.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyR
	KeyE
	KeyQ
	KeyEscape
)

// Callback runs in response to a key event, receiving the frame's delta
// time in seconds. An error is logged but never aborts the run.
type Callback func(dt float64) error

// KeyInputs is a small callback registry: Down-registered callbacks run
// every frame a key is held, Release-registered callbacks run once when
// a key is released. It mirrors the reference's closure-map input
// dispatcher without binding to any specific backend's key-state query.
type KeyInputs struct {
	down    map[Key][]Callback
	release map[Key][]Callback
}

// NewKeyInputs returns an empty registry.
func NewKeyInputs() *KeyInputs {
	return &KeyInputs{
		down:    make(map[Key][]Callback),
		release: make(map[Key][]Callback),
	}
}

// Down registers a callback invoked every frame key is held down.
func (k *KeyInputs) Down(key Key, cb Callback) {
	k.down[key] = append(k.down[key], cb)
}

// Release registers a callback invoked once when key is released.
func (k *KeyInputs) Release(key Key, cb Callback) {
	k.release[key] = append(k.release[key], cb)
}

// Update runs every callback whose key state matches, given the sets of
// keys currently held and released this frame.
func (k *KeyInputs) Update(heldKeys, releasedKeys map[Key]bool, dt float64) {
	for key, callbacks := range k.down {
		if !heldKeys[key] {
			continue
		}
		for _, cb := range callbacks {
			if err := cb(dt); err != nil {
				slog.Error("key callback error", "key", key, "error", err)
			}
		}
	}
	for key, callbacks := range k.release {
		if !releasedKeys[key] {
			continue
		}
		for _, cb := range callbacks {
			if err := cb(dt); err != nil {
				slog.Error("key callback error", "key", key, "error", err)
			}
		}
	}
}
