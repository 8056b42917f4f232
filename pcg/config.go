package pcg

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidExtent is returned by MaskConfig.Validate for non-positive mask sizes
var ErrInvalidExtent = errors.New("mask extent must be positive")

// NoiseConfig holds the fractal noise parameters shared by the coherent noise generators
type NoiseConfig struct {
	Octaves           int     `toml:"octaves" yaml:"octaves" json:"octaves"`
	AmplitudeFactor   float64 `toml:"amplitude_factor" yaml:"amplitude_factor" json:"amplitude_factor"`
	StartingFrequency float64 `toml:"starting_frequency" yaml:"starting_frequency" json:"starting_frequency"`
	Lacunarity        float64 `toml:"lacunarity" yaml:"lacunarity" json:"lacunarity"`
	Scale             float64 `toml:"scale" yaml:"scale" json:"scale"`

	// Seed feeds the permutation tables and the offset RNG (0 = time based)
	Seed int64 `toml:"seed" yaml:"seed" json:"seed"`
}

// DefaultNoiseConfig returns the island defaults
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Octaves:           4,
		AmplitudeFactor:   0.5,
		StartingFrequency: 1.0,
		Lacunarity:        2.0,
		Scale:             50.0,
	}
}

// withDefaults fills zero fields from DefaultNoiseConfig, Seed is left untouched
func (c NoiseConfig) withDefaults() NoiseConfig {
	d := DefaultNoiseConfig()
	if c.Octaves <= 0 {
		c.Octaves = d.Octaves
	}
	if c.AmplitudeFactor == 0 {
		c.AmplitudeFactor = d.AmplitudeFactor
	}
	if c.StartingFrequency == 0 {
		c.StartingFrequency = d.StartingFrequency
	}
	if c.Lacunarity == 0 {
		c.Lacunarity = d.Lacunarity
	}
	if c.Scale == 0 {
		c.Scale = d.Scale
	}
	return c
}

// MaskConfig describes one mask of a generator. Read-only at generation time
type MaskConfig struct {
	// IsNegative flips the sign of the mask output so it lowers terrain
	IsNegative bool      `toml:"is_negative" yaml:"is_negative" json:"is_negative"`
	MaskType   MaskType  `toml:"mask_type" yaml:"mask_type" json:"mask_type"`
	FaderType  FaderType `toml:"fader_type" yaml:"fader_type" json:"fader_type"`
	Center     Vec2      `toml:"center" yaml:"center" json:"center"`

	// SizeVariable1 is the radius for radial masks, the half width for rectangular ones
	SizeVariable1 float64 `toml:"size1" yaml:"size1" json:"size1"`
	// SizeVariable2 is the half height for rectangular masks, unused by radial ones
	SizeVariable2 float64 `toml:"size2" yaml:"size2" json:"size2"`

	// Gradient is the fader steepness, 0 means unconfigured (1.0)
	Gradient float64 `toml:"gradient,omitempty" yaml:"gradient,omitempty" json:"gradient,omitempty"`
}

// gradient returns the configured fader gradient or the 1.0 default
func (c MaskConfig) gradient() float64 {
	if c.Gradient == 0 || math.IsNaN(c.Gradient) {
		return 1.0
	}
	return c.Gradient
}

// Validate reports configurations that would make a mask divide by zero
// The generator itself does not call it: unvalidated masks propagate NaN/Inf
func (c MaskConfig) Validate() error {
	if int(c.MaskType) >= len(maskTypeNames) {
		return fmt.Errorf("unknown mask type %d", uint8(c.MaskType))
	}
	if int(c.FaderType) >= len(faderTypeNames) {
		return fmt.Errorf("unknown fader type %d", uint8(c.FaderType))
	}
	if c.Gradient < 0 {
		return fmt.Errorf("gradient %g must not be negative", c.Gradient)
	}

	switch c.MaskType {
	case MaskRadial:
		if !(c.SizeVariable1 > 0) {
			return fmt.Errorf("%s mask radius %g: %w", c.MaskType, c.SizeVariable1, ErrInvalidExtent)
		}
	case MaskRectangular:
		if !(c.SizeVariable1 > 0) || !(c.SizeVariable2 > 0) {
			return fmt.Errorf("%s mask size %gx%g: %w", c.MaskType, c.SizeVariable1, c.SizeVariable2, ErrInvalidExtent)
		}
	}
	return nil
}

// defaultMaskConfig builds geometry for the raw type constructor: centred on the extent
func defaultMaskConfig(width, height int, maskType MaskType, faderType FaderType) MaskConfig {
	cfg := MaskConfig{
		MaskType:      maskType,
		FaderType:     faderType,
		Center:        Vec2{X: float64(width) / 2, Y: float64(height) / 2},
		SizeVariable1: math.Min(float64(width), float64(height)) / 2,
		SizeVariable2: float64(height) / 2,
	}
	if maskType == MaskRectangular {
		cfg.SizeVariable1 = float64(width) / 2
	}
	return cfg
}
