package pcg

import "math"

// Fader maps a proportional distance to a mask boundary onto an attenuation factor
// distance is actual/extent - 1: negative inside the mask, 0 on the boundary, positive outside
type Fader interface {
	Configure(cfg MaskConfig)
	Fade(distance float64) float64
}

// MakeFader returns an unconfigured fader (gradient 1.0); unknown types get NoFade
func MakeFader(t FaderType) Fader {
	switch t {
	case FaderLinear:
		return &LinearFader{gradient: 1.0}
	case FaderHyperbolic:
		return &HyperbolicFader{gradient: 1.0}
	case FaderGaussian:
		return &GaussianFader{gradient: 1.0}
	default:
		return NoFade{}
	}
}

// NoFade is a hard cutoff at the mask boundary
type NoFade struct{}

func (NoFade) Configure(MaskConfig) {}

func (NoFade) Fade(distance float64) float64 {
	if distance <= 0 {
		return 1.0
	}
	return 0.0
}

// LinearFader ramps from 1 at the boundary to 0 at distance 1/gradient
type LinearFader struct {
	gradient float64
}

func (f *LinearFader) Configure(cfg MaskConfig) { f.gradient = cfg.gradient() }

func (f *LinearFader) Fade(distance float64) float64 {
	return clamp(1.0-distance*f.gradient, 0, 1)
}

// HyperbolicFader eases out of 1 and into 0 with a steep middle section
// Gradients below ~0.8 flatten the curve until the cutoffs at 0 and 1 dominate
type HyperbolicFader struct {
	gradient float64
}

func (f *HyperbolicFader) Configure(cfg MaskConfig) { f.gradient = cfg.gradient() }

func (f *HyperbolicFader) Fade(distance float64) float64 {
	if distance <= 0 {
		return 1.0
	}
	if distance >= 1 {
		return 0.0
	}
	g := f.gradient
	return clamp(0.5*math.Tanh(4*g*(1-distance)-2*g)+0.5, 0, 1)
}

// GaussianFader follows a bell curve centred on the boundary
// Gradient is inverted relative to the other faders: larger values give a flatter curve
// Intended range is 0.3-0.6; output is not clamped
type GaussianFader struct {
	gradient float64
}

func (f *GaussianFader) Configure(cfg MaskConfig) { f.gradient = cfg.gradient() }

func (f *GaussianFader) Fade(distance float64) float64 {
	if distance <= 0 {
		return 1.0
	}
	g := f.gradient
	coefficient := (2.5 * g) / (g * math.Sqrt(2*math.Pi))
	z := (1 - distance - 1) / g
	return coefficient * math.Exp(-0.5*z*z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// inverseLerp returns where v lies between a and b; 0 when a == b
func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return clamp((v-a)/(b-a), 0, 1)
}
