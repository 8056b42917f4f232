// Package preset stores complete terrain setups as TOML or YAML documents
package preset

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/lixenwraith/evo-terrain/pcg"
	"github.com/lixenwraith/evo-terrain/quantize"
	"github.com/lixenwraith/evo-terrain/weather"
)

//go:embed presets/island.toml
var islandTOML []byte

// DefaultName is the name of the embedded preset
const DefaultName = "island"

var ErrInvalidSize = errors.New("setup size must be positive")

// Setup is everything needed to reproduce a map: extent, noise, masks and tile rules
type Setup struct {
	Name        string               `toml:"name" yaml:"name" json:"name"`
	Width       int                  `toml:"width" yaml:"width" json:"width"`
	Height      int                  `toml:"height" yaml:"height" json:"height"`
	Noise       pcg.NoiseType        `toml:"noise" yaml:"noise" json:"noise"`
	NoiseConfig pcg.NoiseConfig      `toml:"noise_config" yaml:"noise_config" json:"noise_config"`
	Climate     weather.Climate      `toml:"climate" yaml:"climate" json:"climate"`
	Masks       []pcg.MaskConfig     `toml:"masks" yaml:"masks" json:"masks"`
	Thresholds  []quantize.Threshold `toml:"thresholds" yaml:"thresholds" json:"thresholds"`
}

// Default returns a fresh copy of the embedded island preset
func Default() Setup {
	s, err := Decode(islandTOML, FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded preset: %v", err))
	}
	return s
}

// Validate checks extent, masks and thresholds
func (s Setup) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", s.Width, s.Height, ErrInvalidSize)
	}
	for i, m := range s.Masks {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mask %d: %w", i, err)
		}
	}
	if err := s.Quantizer().Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

// Generator builds a generator for the setup; opts are applied after the noise config
func (s Setup) Generator(opts ...pcg.Option) *pcg.Generator {
	opts = append([]pcg.Option{pcg.WithNoiseConfig(s.NoiseConfig)}, opts...)
	return pcg.NewGenerator(s.Width, s.Height, s.Noise, s.Masks, opts...)
}

// Scaled returns a copy resized to width x height with mask geometry and
// noise scale stretched to match, so the island keeps its shape
func (s Setup) Scaled(width, height int) Setup {
	if s.Width <= 0 || s.Height <= 0 || (width == s.Width && height == s.Height) {
		s.Width, s.Height = width, height
		return s
	}
	rx := float64(width) / float64(s.Width)
	ry := float64(height) / float64(s.Height)
	rmin := min(rx, ry)

	masks := make([]pcg.MaskConfig, len(s.Masks))
	for i, m := range s.Masks {
		m.Center = pcg.Vec2{X: m.Center.X * rx, Y: m.Center.Y * ry}
		switch m.MaskType {
		case pcg.MaskRectangular:
			m.SizeVariable1 *= rx
			m.SizeVariable2 *= ry
		default:
			m.SizeVariable1 *= rmin
		}
		masks[i] = m
	}

	s.Masks = masks
	s.NoiseConfig.Scale *= rmin
	s.Width, s.Height = width, height
	return s
}

// Quantizer returns the setup rules, or the default ladder when none are given
func (s Setup) Quantizer() *quantize.Quantizer {
	if len(s.Thresholds) == 0 {
		return quantize.New(quantize.DefaultThresholds()...)
	}
	return quantize.New(s.Thresholds...)
}
