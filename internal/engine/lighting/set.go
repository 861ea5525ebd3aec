package lighting

import "fmt"

// MaxLightsPerKind is the array size of each light kind in the lighting shader.
const MaxLightsPerKind = 8

// Uniform array and count names used by the lighting shader.
const (
	PointArray       = "pointLights"
	DirectionalArray = "dirLights"
	SpotArray        = "spotLights"
)

// LightSet holds the scene lights.
type LightSet struct {
	Lights []Light
	counts [3]int
}

// NewLightSet creates an empty set.
func NewLightSet() *LightSet {
	return &LightSet{}
}

// Add appends a light. Returns false if the shader array for its kind is full.
func (s *LightSet) Add(l Light) bool {
	if l.Kind < Point || l.Kind > Spot {
		return false
	}
	if s.counts[l.Kind] >= MaxLightsPerKind {
		return false
	}
	s.counts[l.Kind]++
	s.Lights = append(s.Lights, l)
	return true
}

// Clear removes all lights.
func (s *LightSet) Clear() {
	s.Lights = s.Lights[:0]
	s.counts = [3]int{}
}

// Count returns how many lights of kind k are in the set.
func (s *LightSet) Count(k Kind) int {
	if k < Point || k > Spot {
		return 0
	}
	return s.counts[k]
}

// AdjustIntensity changes every light's intensity by delta.
func (s *LightSet) AdjustIntensity(delta float32) {
	for i := range s.Lights {
		s.Lights[i].AdjustIntensity(delta)
	}
}

// Apply uploads every light into its kind's uniform array, followed by the
// per-kind counts (numPointLights, numDirLights, numSpotLights).
func (s *LightSet) Apply(u UniformSetter) {
	var next [3]int
	for _, l := range s.Lights {
		if l.Kind < Point || l.Kind > Spot || next[l.Kind] >= MaxLightsPerKind {
			continue
		}
		idx := next[l.Kind]
		next[l.Kind]++
		l.Apply(u, fmt.Sprintf("%s[%d]", arrayName(l.Kind), idx))
	}
	u.SetInt("numPointLights", int32(next[Point]))
	u.SetInt("numDirLights", int32(next[Directional]))
	u.SetInt("numSpotLights", int32(next[Spot]))
}

func arrayName(k Kind) string {
	switch k {
	case Directional:
		return DirectionalArray
	case Spot:
		return SpotArray
	default:
		return PointArray
	}
}
