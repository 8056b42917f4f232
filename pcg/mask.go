package pcg

import "math"

// Mask decides how much generated noise survives at a pixel
// Output lies in [-1,1]; negative masks lower terrain. Clamping happens when masks are combined
type Mask interface {
	Configure(cfg MaskConfig)
	PixelValue(x, y int) float64
}

// MakeMask returns an unconfigured mask owning fader
// Elliptical has no implementation and, like unknown types, falls back to NoMask
func MakeMask(t MaskType, fader Fader) Mask {
	if fader == nil {
		fader = NoFade{}
	}
	switch t {
	case MaskRadial:
		return &RadialMask{fader: fader}
	case MaskRectangular:
		return &RectangularMask{fader: fader}
	default:
		return &NoMask{fader: fader}
	}
}

// NewMask builds and configures a mask and its fader from cfg
func NewMask(cfg MaskConfig) Mask {
	fader := MakeFader(cfg.FaderType)
	fader.Configure(cfg)
	m := MakeMask(cfg.MaskType, fader)
	m.Configure(cfg)
	return m
}

// NoMask lets all noise through. The fader is held but never consulted
type NoMask struct {
	fader Fader
}

func (m *NoMask) Configure(MaskConfig) {}

func (m *NoMask) PixelValue(x, y int) float64 { return 1.0 }

// RadialMask is a circle around Center with radius SizeVariable1
type RadialMask struct {
	fader    Fader
	center   Vec2
	radius   float64
	negative bool
}

func (m *RadialMask) Configure(cfg MaskConfig) {
	m.center = cfg.Center
	m.radius = cfg.SizeVariable1
	m.negative = cfg.IsNegative
}

func (m *RadialMask) PixelValue(x, y int) float64 {
	distance := math.Hypot(float64(x)-m.center.X, float64(y)-m.center.Y)
	v := m.fader.Fade(distance/m.radius - 1.0)
	if m.negative {
		return -v
	}
	return v
}

// RectangularMask is an axis aligned box around Center
// x and y fade independently and multiply, giving a box shaped falloff
type RectangularMask struct {
	fader    Fader
	center   Vec2
	width    float64
	height   float64
	negative bool
}

func (m *RectangularMask) Configure(cfg MaskConfig) {
	m.center = cfg.Center
	m.width = cfg.SizeVariable1
	m.height = cfg.SizeVariable2
	m.negative = cfg.IsNegative
}

func (m *RectangularMask) PixelValue(x, y int) float64 {
	dx := math.Abs(float64(x)-m.center.X)/m.width - 1.0
	dy := math.Abs(float64(y)-m.center.Y)/m.height - 1.0
	v := m.fader.Fade(dx) * m.fader.Fade(dy)
	if m.negative {
		return -v
	}
	return v
}

// combineMasks sums every mask at (x,y) and clamps to [-1,1]; no masks yields 0
func combineMasks(masks []Mask, x, y int) float64 {
	var sum float64
	for _, m := range masks {
		sum += m.PixelValue(x, y)
	}
	return clamp(sum, -1, 1)
}
