package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around Y, latitude is
// elevation above the horizon.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	lon := mgl32.DegToRad(longitude)
	lat := mgl32.DegToRad(latitude)
	return mgl32.Vec3{
		math32.Cos(lat) * math32.Sin(lon),
		math32.Sin(lat),
		math32.Cos(lat) * math32.Cos(lon),
	}
}

// NewSunLight returns a directional light shining from the sun position,
// i.e. along -SunDirection.
func NewSunLight(longitude, latitude float32, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Kind:      Directional,
		Direction: SunDirection(longitude, latitude).Mul(-1),
		Color:     color,
		Intensity: intensity,
	}
}

func cosDeg(deg float32) float32 {
	return math32.Cos(mgl32.DegToRad(deg))
}
