package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name   string
		event  *sdl.KeyboardEvent
		key    Key
		action Action
	}{
		{
			name:   "press",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
			key:    KeyW,
			action: ActionPress,
		},
		{
			name:   "repeat",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_J}},
			key:    KeyJ,
			action: ActionRepeat,
		},
		{
			name:   "release",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
			key:    KeyEscape,
			action: ActionRelease,
		},
		{
			name:   "preset",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_3}},
			key:    Key3,
			action: ActionPress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			e, ok := in.translate(tt.event)
			assert.True(t, ok)
			assert.Equal(t, EventKey, e.Type)
			assert.Equal(t, tt.key, e.Key)
			assert.Equal(t, tt.action, e.Action)
		})
	}
}

func TestTranslateIgnoresUnmappedKeys(t *testing.T) {
	in := New()
	_, ok := in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}})
	assert.False(t, ok)
}

func TestTranslateQuitAndResize(t *testing.T) {
	in := New()

	e, ok := in.translate(&sdl.QuitEvent{Type: sdl.QUIT})
	assert.True(t, ok)
	assert.Equal(t, EventQuit, e.Type)

	e, ok = in.translate(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768})
	assert.True(t, ok)
	assert.Equal(t, Event{Type: EventWindowResize, Width: 1024, Height: 768}, e)

	_, ok = in.translate(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED})
	assert.False(t, ok)
}

func TestTranslateMouseAbsolute(t *testing.T) {
	in := New()

	e, ok := in.translate(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 120, Y: 40, XRel: 5, YRel: 5})
	assert.True(t, ok)
	assert.Equal(t, EventMouseMove, e.Type)
	assert.Equal(t, 120.0, e.X)
	assert.Equal(t, 40.0, e.Y)
}

func TestTranslateMouseRelative(t *testing.T) {
	in := New()
	in.SetRelative(true, 400, 400)

	in.translate(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 0, Y: 0, XRel: 10, YRel: -4})
	e, ok := in.translate(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 0, Y: 0, XRel: 5, YRel: 1})

	assert.True(t, ok)
	assert.Equal(t, 415.0, e.X)
	assert.Equal(t, 397.0, e.Y)
}
