// Package input handles SDL2 input events.
//
// Events are drained once per frame by Update and consumed by the viewer
// between frames; nothing is delivered through callbacks.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKey
	EventMouseMove
)

// Key is a viewer key, independent of keyboard layout.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyJ
	KeyK
	Key1
	Key2
	Key3
	Key4
)

var scancodeKeys = map[sdl.Scancode]Key{
	sdl.SCANCODE_ESCAPE: KeyEscape,
	sdl.SCANCODE_W:      KeyW,
	sdl.SCANCODE_A:      KeyA,
	sdl.SCANCODE_S:      KeyS,
	sdl.SCANCODE_D:      KeyD,
	sdl.SCANCODE_J:      KeyJ,
	sdl.SCANCODE_K:      KeyK,
	sdl.SCANCODE_1:      Key1,
	sdl.SCANCODE_2:      Key2,
	sdl.SCANCODE_3:      Key3,
	sdl.SCANCODE_4:      Key4,
}

// Action is what happened to a key.
type Action int

const (
	ActionPress Action = iota
	ActionRepeat
	ActionRelease
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Action Action
	Width  int
	Height int
	// Pointer position in window pixels.
	X float64
	Y float64
}

// Input handles all input processing.
type Input struct {
	events []Event

	// relative is set while the cursor is captured; pointer positions are
	// then accumulated from motion deltas.
	relative bool
	x, y     float64
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// SetRelative switches pointer tracking to accumulated deltas, starting
// from (x, y).
func (i *Input) SetRelative(relative bool, x, y float64) {
	i.relative = relative
	i.x, i.y = x, y
}

// Update polls SDL events and converts them to viewer events.
// Returns true if a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := i.translate(event)
		if !ok {
			continue
		}
		if e.Type == EventQuit {
			quit = true
		}
		i.events = append(i.events, e)
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func (i *Input) translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		key, known := scancodeKeys[e.Keysym.Scancode]
		if !known {
			return Event{}, false
		}
		action := ActionPress
		switch {
		case e.Type == sdl.KEYUP:
			action = ActionRelease
		case e.Repeat != 0:
			action = ActionRepeat
		}
		return Event{Type: EventKey, Key: key, Action: action}, true

	case *sdl.MouseMotionEvent:
		if i.relative {
			i.x += float64(e.XRel)
			i.y += float64(e.YRel)
		} else {
			i.x, i.y = float64(e.X), float64(e.Y)
		}
		return Event{Type: EventMouseMove, X: i.x, Y: i.y}, true
	}

	return Event{}, false
}
