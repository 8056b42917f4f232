package pcg

import (
	"context"
	"log"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Generator combines one noise generator with an ordered list of masks over a fixed extent
//
// The first successful generation is cached and returned unchanged by every later call,
// including after SetNoiseGenerator; call VoidCache to force a new map
// A Generator is not safe for concurrent use
type Generator struct {
	width, height int

	noise   NoiseGenerator
	masks   []Mask
	configs []MaskConfig

	noiseCfg NoiseConfig
	rng      *rand.Rand
	workers  int

	noiseMap  [][]float64
	lastRange NormalizingValues
	elapsed   time.Duration
}

// Option customizes a Generator at construction
type Option func(g *Generator)

// WithNoiseConfig sets the fractal parameters used by coherent noise generators
func WithNoiseConfig(cfg NoiseConfig) Option {
	return func(g *Generator) {
		g.noiseCfg = cfg
	}
}

// WithRand sets the random source for sampling and seed offsets
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithWorkers bounds the goroutines used for the normalize and mask pass (<=0 = GOMAXPROCS)
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// NewGenerator creates a generator for a width x height map
// An empty masks list is accepted and produces an all zero map
func NewGenerator(width, height int, noiseType NoiseType, masks []MaskConfig, opts ...Option) *Generator {
	g := newGenerator(width, height, opts)
	g.noise = MakeNoiseGenerator(noiseType, g.noiseCfg, g.rng)
	g.configs = append([]MaskConfig(nil), masks...)
	g.masks = make([]Mask, 0, len(masks))
	for _, cfg := range masks {
		g.masks = append(g.masks, NewMask(cfg))
	}
	return g
}

// NewMaskGenerator creates a generator with a single mask built from raw types
// The mask is centred on the extent; noise defaults to RandomNoise until SetNoiseGenerator
func NewMaskGenerator(width, height int, maskType MaskType, faderType FaderType, opts ...Option) *Generator {
	return NewGenerator(width, height, NoiseRandom,
		[]MaskConfig{defaultMaskConfig(width, height, maskType, faderType)}, opts...)
}

func newGenerator(width, height int, opts []Option) *Generator {
	g := &Generator{
		width:    max(width, 0),
		height:   max(height, 0),
		noiseCfg: DefaultNoiseConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.noiseCfg = g.noiseCfg.withDefaults()
	if g.rng == nil {
		g.rng = newRand(g.noiseCfg.Seed)
	}
	if g.workers <= 0 {
		g.workers = runtime.GOMAXPROCS(0)
	}
	return g
}

// SetNoiseGenerator replaces the noise strategy; the cache is kept
func (g *Generator) SetNoiseGenerator(n NoiseGenerator) {
	g.noise = n
}

// NoiseGenerator returns the current noise strategy
func (g *Generator) NoiseGenerator() NoiseGenerator { return g.noise }

// MaskConfigs returns a copy of the configured masks in evaluation order
func (g *Generator) MaskConfigs() []MaskConfig {
	return append([]MaskConfig(nil), g.configs...)
}

func (g *Generator) Width() int  { return g.width }
func (g *Generator) Height() int { return g.height }

// Cached reports whether the next generation call returns the cache
// A map without cells is never cached
func (g *Generator) Cached() bool { return len(g.noiseMap) > 0 && len(g.noiseMap[0]) > 0 }

// Range returns the normalizing range of the cached map
func (g *Generator) Range() NormalizingValues { return g.lastRange }

// Elapsed returns how long the cached map took to generate
func (g *Generator) Elapsed() time.Duration { return g.elapsed }

// VoidCache drops the cached map so the next call regenerates
func (g *Generator) VoidCache() {
	g.noiseMap = nil
	g.lastRange = NormalizingValues{}
	g.elapsed = 0
}

// GenerateNoiseArray returns the [height][width] height map, generating it on first use
func (g *Generator) GenerateNoiseArray() [][]float64 {
	out, _ := g.GenerateNoiseArrayContext(context.Background())
	return out
}

// GenerateNoiseArrayContext is GenerateNoiseArray with cancellation
// A cancelled run returns ctx.Err() and leaves the cache empty
func (g *Generator) GenerateNoiseArrayContext(ctx context.Context) ([][]float64, error) {
	if g.Cached() {
		return g.noiseMap, nil
	}
	start := time.Now()
	w, h := g.width, g.height

	// Pass 1: raw samples in row-major order, y outer
	raw := make([]float64, w*h)
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := raw[y*w : (y+1)*w]
		for x := range row {
			row[x] = g.noise.Sample(x, y)
		}
	}

	// Range is read once, after the full scan
	norm := g.noise.NormalizingValues(raw)

	// Pass 2: normalize and mask, split into row bands
	out := make([][]float64, h)
	band := max((h+g.workers-1)/g.workers, 1)
	eg, egCtx := errgroup.WithContext(ctx)
	for y0 := 0; y0 < h; y0 += band {
		y1 := min(y0+band, h)
		eg.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				row := make([]float64, w)
				for x := range row {
					row[x] = inverseLerp(norm.Min, norm.Max, raw[y*w+x]) * combineMasks(g.masks, x, y)
				}
				out[y] = row
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.noiseMap = out
	g.lastRange = norm
	g.elapsed = time.Since(start)
	log.Printf("pcg: generated %dx%d map with %d mask(s) in %v (range %.4f..%.4f)",
		w, h, len(g.masks), g.elapsed, norm.Min, norm.Max)
	return out, nil
}
