package viewer

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota

	// Held actions, applied every frame while the key is down.
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionLightXNeg
	ActionLightXPos
	ActionLightYNeg
	ActionLightYPos
	ActionLightZNeg
	ActionLightZPos
	ActionIntensityUp
	ActionIntensityDown

	// One-shot actions, applied once per key press.
	ActionToggleRay
	ActionToggleBounds
	ActionTogglePickMode
	ActionToggleCapture
	ActionFrameScene
	ActionScreenshot
	ActionQuit

	actionCount
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionForward:        "forward",
	ActionBackward:       "backward",
	ActionLeft:           "left",
	ActionRight:          "right",
	ActionUp:             "up",
	ActionDown:           "down",
	ActionLightXNeg:      "light-x-",
	ActionLightXPos:      "light-x+",
	ActionLightYNeg:      "light-y-",
	ActionLightYPos:      "light-y+",
	ActionLightZNeg:      "light-z-",
	ActionLightZPos:      "light-z+",
	ActionIntensityUp:    "intensity+",
	ActionIntensityDown:  "intensity-",
	ActionToggleRay:      "toggle-ray",
	ActionToggleBounds:   "toggle-bounds",
	ActionTogglePickMode: "toggle-pick-mode",
	ActionToggleCapture:  "toggle-capture",
	ActionFrameScene:     "frame-scene",
	ActionScreenshot:     "screenshot",
	ActionQuit:           "quit",
}

func (a Action) String() string {
	if a >= 0 && a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// KeyState records which held actions are active this frame.
type KeyState [actionCount]bool

// Held reports whether a is active.
func (k *KeyState) Held(a Action) bool {
	return a > ActionNone && a < actionCount && k[a]
}

// Set marks a as held or released.
func (k *KeyState) Set(a Action, down bool) {
	if a > ActionNone && a < actionCount {
		k[a] = down
	}
}
