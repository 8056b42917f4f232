package pcg

import (
	"fmt"
	"strings"
)

// Vec2 is a point in grid space
type Vec2 struct {
	X float64 `toml:"x" yaml:"x" json:"x"`
	Y float64 `toml:"y" yaml:"y" json:"y"`
}

// NormalizingValues is the range used to remap raw noise into [0,1]
type NormalizingValues struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NoiseType selects a noise generator in MakeNoiseGenerator
type NoiseType uint8

const (
	NoiseRandom NoiseType = iota
	NoisePerlin
	NoiseSimplex
)

var noiseTypeNames = []string{"random", "perlin", "simplex"}

func (t NoiseType) String() string {
	if int(t) < len(noiseTypeNames) {
		return noiseTypeNames[t]
	}
	return fmt.Sprintf("noise(%d)", uint8(t))
}

func (t NoiseType) MarshalText() ([]byte, error) {
	if int(t) >= len(noiseTypeNames) {
		return nil, fmt.Errorf("unknown noise type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *NoiseType) UnmarshalText(text []byte) error {
	i, err := lookupName(noiseTypeNames, string(text), "default")
	if err != nil {
		return fmt.Errorf("noise type: %w", err)
	}
	*t = NoiseType(i)
	return nil
}

// MaskType selects a mask in MakeMask
type MaskType uint8

const (
	MaskNone MaskType = iota
	MaskRadial
	MaskRectangular
	// MaskElliptical has no implementation; the factory falls back to NoMask
	MaskElliptical
)

var maskTypeNames = []string{"none", "radial", "rectangular", "elliptical"}

func (t MaskType) String() string {
	if int(t) < len(maskTypeNames) {
		return maskTypeNames[t]
	}
	return fmt.Sprintf("mask(%d)", uint8(t))
}

func (t MaskType) MarshalText() ([]byte, error) {
	if int(t) >= len(maskTypeNames) {
		return nil, fmt.Errorf("unknown mask type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *MaskType) UnmarshalText(text []byte) error {
	i, err := lookupName(maskTypeNames, string(text), "default")
	if err != nil {
		return fmt.Errorf("mask type: %w", err)
	}
	*t = MaskType(i)
	return nil
}

// FaderType selects a fader in MakeFader
type FaderType uint8

const (
	FaderNone FaderType = iota
	FaderLinear
	FaderHyperbolic
	FaderGaussian
)

var faderTypeNames = []string{"none", "linear", "hyperbolic", "gaussian"}

func (t FaderType) String() string {
	if int(t) < len(faderTypeNames) {
		return faderTypeNames[t]
	}
	return fmt.Sprintf("fader(%d)", uint8(t))
}

func (t FaderType) MarshalText() ([]byte, error) {
	if int(t) >= len(faderTypeNames) {
		return nil, fmt.Errorf("unknown fader type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *FaderType) UnmarshalText(text []byte) error {
	i, err := lookupName(faderTypeNames, string(text), "default")
	if err != nil {
		return fmt.Errorf("fader type: %w", err)
	}
	*t = FaderType(i)
	return nil
}

// lookupName resolves a case-insensitive enum name; alias and "" map to index 0
func lookupName(names []string, s, alias string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == alias {
		return 0, nil
	}
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown name %q (want one of %s)", s, strings.Join(names, ", "))
}
