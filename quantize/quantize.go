// Package quantize maps continuous heights onto ground tile categories
package quantize

import (
	"fmt"
	"strings"
)

// TileType is a ground tile category
type TileType uint8

const (
	None TileType = iota
	Shallow
	Water
	Beach
	Plain
	Grassland
	Forest
	Mountain
	Snow
)

var tileNames = []string{"none", "shallow", "water", "beach", "plain", "grassland", "forest", "mountain", "snow"}

// TileTypes lists every category in declaration order
func TileTypes() []TileType {
	out := make([]TileType, len(tileNames))
	for i := range out {
		out[i] = TileType(i)
	}
	return out
}

func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

func (t TileType) MarshalText() ([]byte, error) {
	if int(t) >= len(tileNames) {
		return nil, fmt.Errorf("unknown tile type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *TileType) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range tileNames {
		if n == s {
			*t = TileType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tile type %q", s)
}

// Threshold assigns Tile to heights in [Min, Max), or [Min, Max] when MaxInclusive
type Threshold struct {
	Tile         TileType `toml:"tile" yaml:"tile" json:"tile"`
	Min          float64  `toml:"min" yaml:"min" json:"min"`
	Max          float64  `toml:"max" yaml:"max" json:"max"`
	MaxInclusive bool     `toml:"max_inclusive" yaml:"max_inclusive" json:"max_inclusive"`
}

// Contains reports whether v falls inside the threshold
func (t Threshold) Contains(v float64) bool {
	if v < t.Min {
		return false
	}
	if t.MaxInclusive {
		return v <= t.Max
	}
	return v < t.Max
}

// Quantizer evaluates thresholds in order; the first match wins
type Quantizer struct {
	Thresholds []Threshold
}

// New creates a quantizer over thresholds, order preserved
func New(thresholds ...Threshold) *Quantizer {
	return &Quantizer{Thresholds: append([]Threshold(nil), thresholds...)}
}

// DefaultThresholds is the island ladder from deep water to snow caps
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Tile: Water, Min: 0.00, Max: 0.20},
		{Tile: Shallow, Min: 0.20, Max: 0.30},
		{Tile: Beach, Min: 0.30, Max: 0.36},
		{Tile: Plain, Min: 0.36, Max: 0.48},
		{Tile: Grassland, Min: 0.48, Max: 0.62},
		{Tile: Forest, Min: 0.62, Max: 0.76},
		{Tile: Mountain, Min: 0.76, Max: 0.90},
		{Tile: Snow, Min: 0.90, Max: 1.00, MaxInclusive: true},
	}
}

// Validate rejects inverted ranges and unknown tiles
func (q *Quantizer) Validate() error {
	for i, t := range q.Thresholds {
		if int(t.Tile) >= len(tileNames) {
			return fmt.Errorf("threshold %d: unknown tile type %d", i, uint8(t.Tile))
		}
		if t.Min > t.Max {
			return fmt.Errorf("threshold %d (%s): min %g above max %g", i, t.Tile, t.Min, t.Max)
		}
	}
	return nil
}

// TileAt returns the first matching tile for v, None when nothing matches
func (q *Quantizer) TileAt(v float64) TileType {
	for _, t := range q.Thresholds {
		if t.Contains(v) {
			return t.Tile
		}
	}
	return None
}

// Quantize converts a [height][width] height map into tiles of the same shape
func (q *Quantizer) Quantize(heights [][]float64) [][]TileType {
	tiles := make([][]TileType, len(heights))
	for y, row := range heights {
		tiles[y] = make([]TileType, len(row))
		for x, v := range row {
			tiles[y][x] = q.TileAt(v)
		}
	}
	return tiles
}

// Histogram counts tiles per category
func Histogram(tiles [][]TileType) map[TileType]int {
	counts := make(map[TileType]int)
	for _, row := range tiles {
		for _, t := range row {
			counts[t]++
		}
	}
	return counts
}
