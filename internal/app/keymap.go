package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/scenepick/internal/engine/input"
	"github.com/Faultbox/scenepick/internal/viewer"
)

// heldKeys are polled every frame.
var heldKeys = map[sdl.Scancode]viewer.Action{
	sdl.SCANCODE_W:        viewer.ActionForward,
	sdl.SCANCODE_S:        viewer.ActionBackward,
	sdl.SCANCODE_A:        viewer.ActionLeft,
	sdl.SCANCODE_D:        viewer.ActionRight,
	sdl.SCANCODE_E:        viewer.ActionUp,
	sdl.SCANCODE_Q:        viewer.ActionDown,
	sdl.SCANCODE_LEFT:     viewer.ActionLightXNeg,
	sdl.SCANCODE_RIGHT:    viewer.ActionLightXPos,
	sdl.SCANCODE_PAGEDOWN: viewer.ActionLightYNeg,
	sdl.SCANCODE_PAGEUP:   viewer.ActionLightYPos,
	sdl.SCANCODE_UP:       viewer.ActionLightZNeg,
	sdl.SCANCODE_DOWN:     viewer.ActionLightZPos,
	sdl.SCANCODE_KP_PLUS:  viewer.ActionIntensityUp,
	sdl.SCANCODE_EQUALS:   viewer.ActionIntensityUp,
	sdl.SCANCODE_KP_MINUS: viewer.ActionIntensityDown,
	sdl.SCANCODE_MINUS:    viewer.ActionIntensityDown,
}

// pressKeys fire once per key press.
var pressKeys = map[sdl.Scancode]viewer.Action{
	sdl.SCANCODE_ESCAPE: viewer.ActionQuit,
	sdl.SCANCODE_R:      viewer.ActionToggleRay,
	sdl.SCANCODE_B:      viewer.ActionToggleBounds,
	sdl.SCANCODE_P:      viewer.ActionTogglePickMode,
	sdl.SCANCODE_TAB:    viewer.ActionToggleCapture,
	sdl.SCANCODE_F:      viewer.ActionFrameScene,
	sdl.SCANCODE_F12:    viewer.ActionScreenshot,
}

func pollHeld(keys *viewer.KeyState) {
	*keys = viewer.KeyState{}
	for sc, action := range heldKeys {
		if input.IsKeyHeld(sc) {
			keys.Set(action, true)
		}
	}
}

// pressedActions returns the one-shot actions whose keys went down this frame.
func pressedActions(in *input.Input) []viewer.Action {
	var actions []viewer.Action
	for sc, action := range pressKeys {
		if in.IsKeyPressed(sc) {
			actions = append(actions, action)
		}
	}
	return actions
}
