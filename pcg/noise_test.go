package pcg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeNoiseGenerator(t *testing.T) {
	cfg := DefaultNoiseConfig()
	assert.IsType(t, &RandomNoise{}, MakeNoiseGenerator(NoiseRandom, cfg, nil))
	assert.IsType(t, &PerlinNoise{}, MakeNoiseGenerator(NoisePerlin, cfg, nil))
	assert.IsType(t, &SimplexNoise{}, MakeNoiseGenerator(NoiseSimplex, cfg, nil))
	assert.IsType(t, &RandomNoise{}, MakeNoiseGenerator(NoiseType(7), cfg, nil))
}

func TestRandomNoiseRange(t *testing.T) {
	n := NewRandomNoise(rand.New(rand.NewSource(1)))
	assert.Equal(t, NormalizingValues{Min: 0, Max: 1}, n.NormalizingValues(nil))
	for i := 0; i < 1000; i++ {
		v := n.Sample(i, i)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestPerlinNoiseDeterministic(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Seed = 11

	a := NewPerlinNoise(cfg, rand.New(rand.NewSource(3)))
	b := NewPerlinNoise(cfg, rand.New(rand.NewSource(99)))
	assert.NotEqual(t, a.Seed(), b.Seed())

	b.SetSeed(a.Seed())
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, a.Sample(x, y), b.Sample(x, y))
		}
	}
}

func TestFractalOctaves(t *testing.T) {
	cfg := DefaultNoiseConfig()
	f := fractal{cfg: cfg, seed: Vec2{X: 1, Y: 2}}

	var calls []Vec2
	sum := f.sample(50, 100, func(x, y float64) float64 {
		calls = append(calls, Vec2{X: x, Y: y})
		return 1
	})

	// Amplitudes 0.5 + 0.25 + 0.125 + 0.0625
	assert.InDelta(t, 0.9375, sum, epsilon)
	require.Len(t, calls, 4)
	assert.Equal(t, Vec2{X: 2, Y: 4}, calls[0])
	assert.Equal(t, Vec2{X: 3, Y: 6}, calls[1])
	assert.Equal(t, Vec2{X: 9, Y: 18}, calls[3])
}

// Range must only be read after the full scan: a partial buffer is never wider
func TestPerlinRangeNeedsFullScan(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Seed = 5
	n := NewPerlinNoise(cfg, nil)
	n.SetSeed(Vec2{X: 10, Y: 10})

	const w, h = 40, 40
	raw := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			raw = append(raw, n.Sample(x, y))
		}
	}

	full := n.NormalizingValues(raw)
	partial := n.NormalizingValues(raw[:w])
	assert.LessOrEqual(t, full.Min, partial.Min)
	assert.GreaterOrEqual(t, full.Max, partial.Max)
	assert.Greater(t, full.Max-full.Min, partial.Max-partial.Min)

	for _, v := range raw {
		assert.True(t, v >= full.Min && v <= full.Max)
	}
	assert.Equal(t, NormalizingValues{}, n.NormalizingValues(nil))
}

func TestNoiseBounds(t *testing.T) {
	for _, nt := range []NoiseType{NoiseRandom, NoisePerlin, NoiseSimplex} {
		g := NewMaskGenerator(40, 40, MaskNone, FaderNone,
			WithNoiseConfig(NoiseConfig{Seed: 21}))
		g.SetNoiseGenerator(MakeNoiseGenerator(nt, NoiseConfig{Seed: 21}.withDefaults(), nil))

		grid := g.GenerateNoiseArray()
		require.Len(t, grid, 40)
		for _, row := range grid {
			require.Len(t, row, 40)
			for _, v := range row {
				require.GreaterOrEqual(t, v, 0.0, "%s noise", nt)
				require.LessOrEqual(t, v, 1.0, "%s noise", nt)
			}
		}
	}
}

func TestPerlinSmoothness(t *testing.T) {
	cfg := NoiseConfig{Seed: 10}.withDefaults()
	perlin := NewPerlinNoise(cfg, nil)
	perlin.SetSeed(Vec2{X: 10, Y: 10})

	g := NewMaskGenerator(20, 20, MaskNone, FaderNone)
	g.SetNoiseGenerator(perlin)
	grid := g.GenerateNoiseArray()

	const tolerance = 0.5
	for y := 0; y < 19; y++ {
		for x := 0; x < 19; x++ {
			right := math.Abs(grid[y][x] - grid[y][x+1])
			down := math.Abs(grid[y][x] - grid[y+1][x])
			require.Less(t, right, tolerance, "right neighbour at (%d,%d)", x, y)
			require.Less(t, down, tolerance, "down neighbour at (%d,%d)", x, y)
		}
	}
}
