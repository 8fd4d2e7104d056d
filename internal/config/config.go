// Package config handles subdivtool configuration loading and management.
package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/subdivision/pkg/shapes"
	"github.com/Faultbox/subdivision/pkg/subdiv"
)

// Config holds all tool settings.
type Config struct {
	Subdivision SubdivisionConfig `yaml:"subdivision"`
	Input       InputConfig       `yaml:"input"`
	Preview     PreviewConfig     `yaml:"preview"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SubdivisionConfig selects the scheme and its tuning.
type SubdivisionConfig struct {
	Scheme         subdiv.Scheme   `yaml:"scheme"`
	Levels         int             `yaml:"levels"`
	Weld           bool            `yaml:"weld"`
	WeldTolerance  float64         `yaml:"weld_tolerance"` // used by validate -repair
	FixOrientation bool            `yaml:"fix_orientation"`
	Butterfly      ButterflyConfig `yaml:"butterfly"`
	Kobbelt        KobbeltConfig   `yaml:"kobbelt"`
}

// ButterflyConfig holds Butterfly scheme settings.
type ButterflyConfig struct {
	SeamTolerance float64 `yaml:"seam_tolerance"`
	BoundaryCurve bool    `yaml:"boundary_curve"`
}

// KobbeltConfig holds √3-Kobbelt scheme settings.
type KobbeltConfig struct {
	FlipEdges bool `yaml:"flip_edges"`
}

// InputConfig selects the procedural base mesh.
type InputConfig struct {
	Shape  string        `yaml:"shape"`
	Params shapes.Params `yaml:",inline"`
}

// PreviewConfig holds software renderer settings.
type PreviewConfig struct {
	Size        int     `yaml:"size"`        // output edge length in pixels
	Supersample int     `yaml:"supersample"` // render scale before downsampling
	Yaw         float64 `yaml:"yaw"`         // degrees
	Pitch       float64 `yaml:"pitch"`       // degrees
	Smooth      bool    `yaml:"smooth"`
	Output      string  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Subdivision: SubdivisionConfig{
			Scheme:         subdiv.Loop,
			Levels:         2,
			Weld:           true,
			WeldTolerance:  1e-6,
			FixOrientation: false,
			Butterfly: ButterflyConfig{
				SeamTolerance: 0,
				BoundaryCurve: false,
			},
			Kobbelt: KobbeltConfig{
				FlipEdges: true,
			},
		},
		Input: InputConfig{
			Shape: "icosahedron",
			Params: shapes.Params{
				Size:       1,
				Resolution: 4,
				Height:     0.5,
				Seed:       1,
			},
		},
		Preview: PreviewConfig{
			Size:        512,
			Supersample: 2,
			Yaw:         30,
			Pitch:       20,
			Smooth:      true,
			Output:      "preview.webp",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SubdivOptions maps the subdivision section onto subdiv.Options.
func (c *Config) SubdivOptions(log *zap.Logger) subdiv.Options {
	s := c.Subdivision
	return subdiv.Options{
		Logger:         log,
		Weld:           s.Weld,
		FixOrientation: s.FixOrientation,
		Butterfly: subdiv.ButterflyOptions{
			SeamTolerance: s.Butterfly.SeamTolerance,
			BoundaryCurve: s.Butterfly.BoundaryCurve,
		},
		Kobbelt: subdiv.KobbeltOptions{
			SkipFlip: !s.Kobbelt.FlipEdges,
		},
	}
}
