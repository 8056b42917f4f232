package pcg

import (
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/floats"
)

// seedOffsetRange bounds the random 2D offset applied to coherent noise lookups
const seedOffsetRange = 9999.0

// NoiseGenerator produces a raw height value per pixel
// NormalizingValues receives the raw samples of a full scan and returns the range to remap from
type NoiseGenerator interface {
	Sample(x, y int) float64
	NormalizingValues(raw []float64) NormalizingValues
}

// MakeNoiseGenerator returns a generator of type t; unknown types get RandomNoise
// rng drives random sampling and seed offsets; nil derives one from cfg.Seed
func MakeNoiseGenerator(t NoiseType, cfg NoiseConfig, rng *rand.Rand) NoiseGenerator {
	if rng == nil {
		rng = newRand(cfg.Seed)
	}
	switch t {
	case NoisePerlin:
		return NewPerlinNoise(cfg, rng)
	case NoiseSimplex:
		return NewSimplexNoise(cfg, rng)
	default:
		return NewRandomNoise(rng)
	}
}

// newRand seeds a source from seed, 0 = time based
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomNoise returns independent uniform samples, range fixed to [0,1]
// Not deterministic per coordinate: two scans of the same grid differ
type RandomNoise struct {
	rng *rand.Rand
}

func NewRandomNoise(rng *rand.Rand) *RandomNoise {
	if rng == nil {
		rng = newRand(0)
	}
	return &RandomNoise{rng: rng}
}

func (n *RandomNoise) Sample(x, y int) float64 { return n.rng.Float64() }

func (n *RandomNoise) NormalizingValues([]float64) NormalizingValues {
	return NormalizingValues{Min: 0, Max: 1}
}

// fractal sums cfg.Octaves layers of a coherent primitive (fractal Brownian motion)
type fractal struct {
	cfg  NoiseConfig
	seed Vec2
}

func (f *fractal) sample(x, y int, primitive func(x, y float64) float64) float64 {
	var result float64
	frequency := f.cfg.StartingFrequency
	amplitude := f.cfg.AmplitudeFactor

	for i := 0; i < f.cfg.Octaves; i++ {
		nx := f.seed.X + float64(x)/f.cfg.Scale*frequency
		ny := f.seed.Y + float64(y)/f.cfg.Scale*frequency
		result += amplitude * primitive(nx, ny)
		frequency *= f.cfg.Lacunarity
		amplitude *= f.cfg.AmplitudeFactor
	}
	return result
}

// SetSeed replaces the random lookup offset, used to reproduce a map
func (f *fractal) SetSeed(seed Vec2) { f.seed = seed }

// Seed returns the current lookup offset
func (f *fractal) Seed() Vec2 { return f.seed }

// NormalizingValues reduces min/max over raw
// Only a complete scan gives the true range; a partial buffer gives a narrower one
func (f *fractal) NormalizingValues(raw []float64) NormalizingValues {
	if len(raw) == 0 {
		return NormalizingValues{}
	}
	return NormalizingValues{Min: floats.Min(raw), Max: floats.Max(raw)}
}

func newFractal(cfg NoiseConfig, rng *rand.Rand) (fractal, int64) {
	if rng == nil {
		rng = newRand(cfg.Seed)
	}
	permSeed := cfg.Seed
	if permSeed == 0 {
		permSeed = rng.Int63()
	}
	f := fractal{
		cfg: cfg.withDefaults(),
		seed: Vec2{
			X: rng.Float64() * seedOffsetRange,
			Y: rng.Float64() * seedOffsetRange,
		},
	}
	return f, permSeed
}

// PerlinNoise is fractal Brownian motion over 2D Perlin noise
// Identical (seed, x, y) always yields the identical sample
type PerlinNoise struct {
	fractal
	perlin *perlin.Perlin
}

func NewPerlinNoise(cfg NoiseConfig, rng *rand.Rand) *PerlinNoise {
	f, permSeed := newFractal(cfg, rng)
	return &PerlinNoise{
		fractal: f,
		// Single octave primitive: octaves are summed by fractal.sample
		perlin: perlin.NewPerlin(2, 2, 1, permSeed),
	}
}

func (n *PerlinNoise) Sample(x, y int) float64 {
	return n.sample(x, y, n.perlin.Noise2D)
}

// SimplexNoise is fractal Brownian motion over OpenSimplex noise
type SimplexNoise struct {
	fractal
	simplex opensimplex.Noise
}

func NewSimplexNoise(cfg NoiseConfig, rng *rand.Rand) *SimplexNoise {
	f, permSeed := newFractal(cfg, rng)
	return &SimplexNoise{
		fractal: f,
		simplex: opensimplex.New(permSeed),
	}
}

func (n *SimplexNoise) Sample(x, y int) float64 {
	return n.sample(x, y, n.simplex.Eval2)
}
