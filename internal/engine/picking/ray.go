// Package picking turns mouse clicks and the camera pose into world-space rays.
//
// Rays are produced only; testing them against scene geometry is left to callers.
package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/internal/engine/camera"
)

// DebugRayLength is the length of the line drawn to visualize a ray.
const DebugRayLength float32 = 10

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	if t == 0 {
		return r.Origin
	}
	return r.Origin.Add(r.Direction.Mul(t))
}

// DebugSegment returns the endpoints of the debug line for the ray.
func (r Ray) DebugSegment() (start, end mgl32.Vec3) {
	return r.Origin, r.At(DebugRayLength)
}

// Viewport is the size of the drawable area in pixels.
type Viewport struct {
	Width, Height float32
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Center returns the pixel coordinate of the viewport centre.
func (v Viewport) Center() mgl32.Vec2 {
	return mgl32.Vec2{v.Width / 2, v.Height / 2}
}

// Unproject converts a pixel coordinate (origin top-left) into a world-space
// ray leaving the camera described by view.
func Unproject(screen mgl32.Vec2, projection, view mgl32.Mat4, vp Viewport) Ray {
	var ndcX, ndcY float32
	if vp.Width > 0 && vp.Height > 0 {
		ndcX = 2*screen[0]/vp.Width - 1
		ndcY = 1 - 2*screen[1]/vp.Height
	}

	clip := mgl32.Vec4{ndcX, ndcY, -1, 1}
	eye := projection.Inv().Mul4x1(clip)
	eye = mgl32.Vec4{eye[0], eye[1], -1, 0}

	invView := view.Inv()
	world := invView.Mul4x1(eye).Vec3()

	return Ray{
		Origin:    invView.Col(3).Vec3(),
		Direction: world.Normalize(),
	}
}

// FromCamera returns the ray along the camera's line of sight.
func FromCamera(cam *camera.FlyCamera) Ray {
	return Ray{Origin: cam.Position, Direction: cam.Front}
}
