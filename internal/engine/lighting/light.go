// Package lighting describes scene lights and uploads them as shader uniforms.
package lighting

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies the light variant.
type Kind int

const (
	Point Kind = iota
	Directional
	Spot
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Directional:
		return "directional"
	case Spot:
		return "spot"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a config value.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "":
		return Point, nil
	case "directional", "dir", "sun":
		return Directional, nil
	case "spot":
		return Spot, nil
	default:
		return Point, fmt.Errorf("unknown light kind %q", s)
	}
}

// MaxIntensity bounds Light.Intensity.
const MaxIntensity float32 = 10

// UniformSetter receives light uniforms. shader.Program implements it.
type UniformSetter interface {
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
}

// Light is a point, directional, or spot light. Fields that do not apply to
// the Kind are ignored.
type Light struct {
	Kind      Kind
	Position  mgl32.Vec3 // point, spot
	Direction mgl32.Vec3 // directional, spot
	Color     mgl32.Vec3
	Intensity float32

	// Attenuation terms (point, spot).
	Constant  float32
	Linear    float32
	Quadratic float32

	// Cone half-angles in degrees (spot).
	CutOff      float32
	OuterCutOff float32
}

// NewPointLight returns a white point light with the usual short-range falloff.
func NewPointLight(position mgl32.Vec3) Light {
	return Light{
		Kind:      Point,
		Position:  position,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
		Constant:  1,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// AdjustIntensity adds delta to the intensity, keeping it within [0, MaxIntensity].
func (l *Light) AdjustIntensity(delta float32) {
	l.Intensity = mgl32.Clamp(l.Intensity+delta, 0, MaxIntensity)
}

// Apply uploads the light as the struct uniform called name.
// Color is premultiplied by intensity; spot cones are uploaded as cosines.
func (l Light) Apply(s UniformSetter, name string) {
	s.SetVec3(name+".color", l.Color.Mul(l.Intensity))

	switch l.Kind {
	case Point:
		s.SetVec3(name+".position", l.Position)
		l.applyAttenuation(s, name)
	case Directional:
		s.SetVec3(name+".direction", l.Direction)
	case Spot:
		s.SetVec3(name+".position", l.Position)
		s.SetVec3(name+".direction", l.Direction)
		s.SetFloat(name+".cutOff", cosDeg(l.CutOff))
		s.SetFloat(name+".outerCutOff", cosDeg(l.OuterCutOff))
		l.applyAttenuation(s, name)
	}
}

func (l Light) applyAttenuation(s UniformSetter, name string) {
	s.SetFloat(name+".constant", l.Constant)
	s.SetFloat(name+".linear", l.Linear)
	s.SetFloat(name+".quadratic", l.Quadratic)
}
