// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Picking  PickingConfig  `yaml:"picking"`
	Lights   []LightConfig  `yaml:"lights"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// CameraConfig holds the fly camera's starting state and tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`   // degrees
	Pitch       float32    `yaml:"pitch"` // degrees
	Speed       float32    `yaml:"speed"` // units per second
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// ModelConfig places one asset in the scene.
type ModelConfig struct {
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position"`
	Scale    [3]float32 `yaml:"scale"`
	Rotation [3]float32 `yaml:"rotation"` // degrees around X, Y, Z
}

// AssetsConfig holds scene content settings.
type AssetsConfig struct {
	Models []ModelConfig `yaml:"models"`
	// MaxTextureSize downsizes decoded textures whose larger side exceeds it. 0 disables.
	MaxTextureSize int `yaml:"max_texture_size"`
	// ShowCube adds the lit reference cube below the origin.
	ShowCube bool `yaml:"show_cube"`
	// Skybox lists cubemap face images: right, left, top, bottom, front, back.
	// Empty disables the skybox.
	Skybox []string `yaml:"skybox"`
}

// PickingConfig selects the ray strategy used on click.
type PickingConfig struct {
	Mode string `yaml:"mode"` // "screen" or "forward"
}

// LightConfig describes one scene light.
type LightConfig struct {
	Kind        string     `yaml:"kind"` // "point", "directional" or "spot"
	Position    [3]float32 `yaml:"position"`
	Direction   [3]float32 `yaml:"direction"`
	Color       [3]float32 `yaml:"color"`
	Intensity   float32    `yaml:"intensity"`
	Constant    float32    `yaml:"constant"`
	Linear      float32    `yaml:"linear"`
	Quadratic   float32    `yaml:"quadratic"`
	CutOff      float32    `yaml:"cut_off"`       // degrees
	OuterCutOff float32    `yaml:"outer_cut_off"` // degrees
	// Longitude and Latitude place a directional light's sun when Direction is zero.
	Longitude float32 `yaml:"longitude"`
	Latitude  float32 `yaml:"latitude"`
}

// DebugConfig toggles debug overlays.
type DebugConfig struct {
	ShowRay    bool `yaml:"show_ray"`
	ShowBounds bool `yaml:"show_bounds"`
	LogPicks   bool `yaml:"log_picks"`
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [3]float32{0.1, 0.1, 0.1},
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 3},
			// 270 faces -Z like -90 would, without tripping the yaw snap on the first mouse move.
			Yaw:         270,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			FOV:         45,
			Near:        0.1,
			Far:         100,
		},
		Assets: AssetsConfig{
			MaxTextureSize: 4096,
			ShowCube:       true,
		},
		Picking: PickingConfig{
			Mode: "screen",
		},
		Lights: []LightConfig{
			{
				Kind:      "point",
				Position:  [3]float32{2, 1, 1},
				Color:     [3]float32{1, 1, 1},
				Intensity: 1,
				Constant:  1,
				Linear:    0.09,
				Quadratic: 0.032,
			},
		},
		Debug: DebugConfig{
			ShowRay:       true,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
