// Package camera provides the first-person fly camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Defaults for a freshly created camera.
const (
	DefaultYaw         float32 = 270
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultFOV         float32 = 45
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 100

	// MaxPitch keeps the front vector away from WorldUp so the basis never degenerates.
	MaxPitch float32 = 89
)

// FlyCamera is a free-flying camera driven by yaw/pitch Euler angles in degrees.
// Front, Right and Up are derived from Yaw and Pitch and are always unit length.
type FlyCamera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32

	FOV  float32
	Near float32
	Far  float32
}

// NewFlyCamera creates a camera at position looking along yaw/pitch.
func NewFlyCamera(position mgl32.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		FOV:              DefaultFOV,
		Near:             DefaultNear,
		Far:              DefaultFar,
	}
	c.SetOrientation(yaw, pitch)
	return c
}

// ApplyMouseDelta turns the camera by a raw screen-space mouse delta.
// Screen Y grows downward, so moving the mouse up pitches the camera up.
func (c *FlyCamera) ApplyMouseDelta(dx, dy float32) {
	c.SetOrientation(
		c.Yaw+dx*c.MouseSensitivity,
		c.Pitch-dy*c.MouseSensitivity,
	)
}

// SetOrientation sets yaw and pitch, clamping pitch to ±MaxPitch and
// wrapping yaw, then recomputes the basis vectors.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.Yaw = wrapYaw(yaw)
	c.Pitch = mgl32.Clamp(pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// wrapYaw snaps rather than taking a modulus: anything at or past a full
// turn restarts at 0, anything at or below 0 restarts at 360.
func wrapYaw(yaw float32) float32 {
	switch {
	case yaw >= 360:
		return 0
	case yaw <= 0:
		return 360
	}
	return yaw
}

func (c *FlyCamera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Move translates the camera for dt seconds. Forward and backward stay in
// the horizontal plane regardless of pitch; Up and Down follow WorldUp.
func (c *FlyCamera) Move(dir Direction, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.flatFront().Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.flatFront().Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

func (c *FlyCamera) flatFront() mgl32.Vec3 {
	flat := mgl32.Vec3{c.Front[0], 0, c.Front[2]}
	if flat.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return flat.Normalize()
}

// ViewMatrix returns the world-to-camera transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *FlyCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// FitToBounds backs the camera away from the box centre along its current
// front vector until the whole box fits the vertical field of view.
func (c *FlyCamera) FitToBounds(min, max mgl32.Vec3) {
	center := min.Add(max).Mul(0.5)
	radius := max.Sub(min).Len() / 2
	if radius < 1e-3 {
		radius = 1
	}
	distance := radius / math32.Tan(mgl32.DegToRad(c.FOV)/2)
	if distance > c.Far*0.9 {
		distance = c.Far * 0.9
	}
	c.Position = center.Sub(c.Front.Mul(distance))
}
