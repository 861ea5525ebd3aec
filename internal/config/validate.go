package config

import (
	"github.com/Faultbox/scenepick/internal/engine/lighting"
	"github.com/Faultbox/scenepick/internal/engine/picking"
)

// Validate normalizes out-of-range values in place. Values that cannot be
// used are replaced with defaults rather than rejected.
func (c *Config) Validate() {
	def := Default()

	if c.Graphics.Width <= 0 {
		c.Graphics.Width = def.Graphics.Width
	}
	if c.Graphics.Height <= 0 {
		c.Graphics.Height = def.Graphics.Height
	}

	if c.Camera.Speed <= 0 {
		c.Camera.Speed = def.Camera.Speed
	}
	if c.Camera.Sensitivity <= 0 {
		c.Camera.Sensitivity = def.Camera.Sensitivity
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = def.Camera.FOV
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = def.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near * 1000
	}

	if c.Assets.MaxTextureSize < 0 {
		c.Assets.MaxTextureSize = 0
	}
	for i := range c.Assets.Models {
		if c.Assets.Models[i].Scale == ([3]float32{}) {
			c.Assets.Models[i].Scale = [3]float32{1, 1, 1}
		}
	}

	// Stored in canonical form so later parsing cannot disagree.
	if mode, err := picking.ParseMode(c.Picking.Mode); err == nil {
		c.Picking.Mode = mode.String()
	} else {
		c.Picking.Mode = def.Picking.Mode
	}

	for i := range c.Lights {
		if c.Lights[i].Intensity < 0 {
			c.Lights[i].Intensity = 0
		}
		if c.Lights[i].Intensity > lighting.MaxIntensity {
			c.Lights[i].Intensity = lighting.MaxIntensity
		}
	}

	if c.Debug.ScreenshotDir == "" {
		c.Debug.ScreenshotDir = def.Debug.ScreenshotDir
	}

	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}
