package pcg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func radial(cx, cy, r float64, fader FaderType, negative bool) MaskConfig {
	return MaskConfig{
		IsNegative:    negative,
		MaskType:      MaskRadial,
		FaderType:     fader,
		Center:        Vec2{X: cx, Y: cy},
		SizeVariable1: r,
	}
}

func TestMakeMask(t *testing.T) {
	assert.IsType(t, &NoMask{}, MakeMask(MaskNone, NoFade{}))
	assert.IsType(t, &RadialMask{}, MakeMask(MaskRadial, NoFade{}))
	assert.IsType(t, &RectangularMask{}, MakeMask(MaskRectangular, NoFade{}))

	// Elliptical is declared but unimplemented
	assert.IsType(t, &NoMask{}, MakeMask(MaskElliptical, NoFade{}))
	assert.IsType(t, &NoMask{}, MakeMask(MaskType(99), nil))
}

func TestNoMaskIgnoresFader(t *testing.T) {
	points := [][2]int{{360, 360}, {0, 720}, {720, 720}}
	for _, ft := range []FaderType{FaderNone, FaderLinear, FaderHyperbolic, FaderGaussian} {
		m := NewMask(MaskConfig{MaskType: MaskNone, FaderType: ft, IsNegative: true})
		for _, p := range points {
			assert.Equal(t, 1.0, m.PixelValue(p[0], p[1]), "%s fader at %v", ft, p)
		}
	}
}

func TestRadialMask(t *testing.T) {
	const cx, cy, r = 50.0, 50.0, 10.0
	inside := [2]int{int(cx - r*0.5), int(cy)}
	outside := [2]int{int(cx - r*1.3), int(cy)}

	pure := NewMask(radial(cx, cy, r, FaderNone, false))
	linear := NewMask(radial(cx, cy, r, FaderLinear, false))
	hyper := NewMask(radial(cx, cy, r, FaderHyperbolic, false))

	assert.Equal(t, 1.0, pure.PixelValue(inside[0], inside[1]))
	assert.Equal(t, 1.0, linear.PixelValue(inside[0], inside[1]))
	assert.Equal(t, 1.0, hyper.PixelValue(inside[0], inside[1]))

	assert.Equal(t, 0.0, pure.PixelValue(outside[0], outside[1]))
	assert.InDelta(t, 0.7, linear.PixelValue(outside[0], outside[1]), epsilon)

	hv := hyper.PixelValue(outside[0], outside[1])
	assert.InDelta(t, 0.5*math.Tanh(4*0.7-2)+0.5, hv, epsilon)
	assert.Greater(t, hv, 0.8)
}

func TestRadialMaskNegative(t *testing.T) {
	m := NewMask(radial(10, 10, 5, FaderLinear, true))
	assert.Equal(t, -1.0, m.PixelValue(10, 10))
	assert.InDelta(t, -0.6, m.PixelValue(17, 10), epsilon)
	assert.Equal(t, 0.0, math.Abs(m.PixelValue(40, 40)))
}

func TestRectangularMask(t *testing.T) {
	cfg := MaskConfig{
		MaskType:      MaskRectangular,
		FaderType:     FaderLinear,
		Center:        Vec2{X: 20, Y: 20},
		SizeVariable1: 10,
		SizeVariable2: 5,
	}
	m := NewMask(cfg)

	assert.Equal(t, 1.0, m.PixelValue(20, 20))
	assert.Equal(t, 1.0, m.PixelValue(29, 24))

	// x fades alone when y is inside
	assert.InDelta(t, 0.5, m.PixelValue(35, 20), epsilon)
	// y fades alone when x is inside
	assert.InDelta(t, 0.6, m.PixelValue(20, 27), epsilon)
	// both axes multiply
	assert.InDelta(t, 0.3, m.PixelValue(35, 27), epsilon)

	cfg.IsNegative = true
	assert.InDelta(t, -0.3, NewMask(cfg).PixelValue(5, 13), epsilon)
}

func TestCombinePositiveMasks(t *testing.T) {
	masks := []Mask{
		NewMask(radial(20, 20, 10, FaderNone, false)),
		NewMask(radial(30, 20, 10, FaderNone, false)),
	}

	// Each centre saturates, overlap clamps
	assert.Equal(t, 1.0, combineMasks(masks, 20, 20))
	assert.Equal(t, 1.0, combineMasks(masks, 30, 20))
	assert.Equal(t, 1.0, combineMasks(masks, 25, 20))

	// Inside only the first
	assert.Equal(t, 1.0, combineMasks(masks, 12, 20))

	// Outside both
	assert.Equal(t, 0.0, combineMasks(masks, 80, 80))
}

func TestCombineMixedSignMasks(t *testing.T) {
	masks := []Mask{
		NewMask(radial(20, 20, 10, FaderNone, true)),
		NewMask(radial(35, 20, 10, FaderNone, false)),
	}

	assert.Equal(t, -1.0, combineMasks(masks, 12, 20))
	assert.Equal(t, 1.0, combineMasks(masks, 43, 20))
	// Overlap cancels
	assert.Equal(t, 0.0, combineMasks(masks, 27, 20))
	assert.Equal(t, 0.0, combineMasks(masks, 90, 90))
}

func TestCombineNoMasks(t *testing.T) {
	assert.Equal(t, 0.0, combineMasks(nil, 3, 4))
}

func TestZeroExtentPropagatesNaN(t *testing.T) {
	m := NewMask(radial(5, 5, 0, FaderLinear, false))
	// 0/0 at the centre
	assert.True(t, math.IsNaN(m.PixelValue(5, 5)))
	assert.ErrorIs(t, radial(5, 5, 0, FaderLinear, false).Validate(), ErrInvalidExtent)
}
