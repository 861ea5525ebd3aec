package picking

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/internal/engine/camera"
)

// Mode selects how a pick ray is produced.
type Mode int

const (
	// ModeScreen unprojects the clicked pixel.
	ModeScreen Mode = iota
	// ModeForward ignores the cursor and casts along the camera front (reticle picking).
	ModeForward
)

func (m Mode) String() string {
	switch m {
	case ModeScreen:
		return "screen"
	case ModeForward:
		return "forward"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a config value ("screen" or "forward").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "screen":
		return ModeScreen, nil
	case "forward":
		return ModeForward, nil
	default:
		return ModeScreen, fmt.Errorf("unknown picking mode %q", s)
	}
}

// PickRequest is everything a click needs to become a ray.
type PickRequest struct {
	Screen   mgl32.Vec2
	Viewport Viewport
	Camera   *camera.FlyCamera
}

// Raycaster produces pick rays in its configured mode.
type Raycaster struct {
	Mode Mode
}

// Cast returns the ray for req.
func (rc Raycaster) Cast(req PickRequest) Ray {
	if rc.Mode == ModeForward {
		return FromCamera(req.Camera)
	}
	cam := req.Camera
	return Unproject(req.Screen, cam.Projection(req.Viewport.Aspect()), cam.ViewMatrix(), req.Viewport)
}
