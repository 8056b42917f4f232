// Package weather derives per-turn climate readings from terrain height
package weather

import (
	"fmt"
	"math"
	"strings"
)

// PrecipitationType is the form precipitation takes at a reading
type PrecipitationType uint8

const (
	PrecipitationNone PrecipitationType = iota
	PrecipitationRain
	PrecipitationSnow
)

var precipitationNames = []string{"none", "rain", "snow"}

func (p PrecipitationType) String() string {
	if int(p) < len(precipitationNames) {
		return precipitationNames[p]
	}
	return fmt.Sprintf("precipitation(%d)", uint8(p))
}

func (p PrecipitationType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PrecipitationType) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range precipitationNames {
		if n == s {
			*p = PrecipitationType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown precipitation type %q", s)
}

// BoundExpansion grows the temperature swing slowly with the turn count: (0.1*turn)^0.25
func BoundExpansion(turn int) float64 {
	return math.Pow(0.1*float64(turn), 0.25)
}

// Temperature oscillates around bias, peaking or bottoming out on every turn
// boundExpansion is passed in so callers compute it once per turn
func Temperature(turn int, bias, boundExpansion, height, slope float64) float64 {
	t := float64(turn)
	return boundExpansion*math.Sin(math.Pi*t+math.Pi*0.5) + bias - height*slope
}

// Humidity falls with height and is independent of temperature; bounded to [0,1]
func Humidity(turn int, height, slope, phaseShift float64) float64 {
	phase := 2*float64(turn) + phaseShift
	v := 0.5 + 0.5*math.Sin(phase) - height*slope
	return math.Max(0, math.Min(1, v))
}

// PrecipitationChance is low for temperate readings and rises with extremes and humidity
func PrecipitationChance(temperature, humidity float64) float64 {
	return 0.75 * math.Abs(0.5*temperature) * humidity
}

// Climate holds the island wide weather parameters
type Climate struct {
	Bias                   float64 `toml:"bias" yaml:"bias" json:"bias"`
	HeightTemperatureSlope float64 `toml:"height_temperature_slope" yaml:"height_temperature_slope" json:"height_temperature_slope"`
	HumidityPhaseShift     float64 `toml:"humidity_phase_shift" yaml:"humidity_phase_shift" json:"humidity_phase_shift"`
}

// DefaultClimate is a temperate island
func DefaultClimate() Climate {
	return Climate{
		Bias:                   0,
		HeightTemperatureSlope: 0.5,
		HumidityPhaseShift:     0.3,
	}
}

// Reading is the weather on one tile for one turn
type Reading struct {
	Temperature   float64           `json:"temperature"`
	Humidity      float64           `json:"humidity"`
	Chance        float64           `json:"chance"`
	Precipitation PrecipitationType `json:"precipitation"`
}

// Sample computes the reading at height for turn
func (c Climate) Sample(turn int, height float64) Reading {
	return c.sample(turn, BoundExpansion(turn), height)
}

func (c Climate) sample(turn int, be, height float64) Reading {
	temp := Temperature(turn, c.Bias, be, height, c.HeightTemperatureSlope)
	hum := Humidity(turn, height, c.HeightTemperatureSlope, c.HumidityPhaseShift)
	r := Reading{
		Temperature: temp,
		Humidity:    hum,
		Chance:      PrecipitationChance(temp, hum),
	}
	if r.Chance > 0.5 {
		r.Precipitation = PrecipitationRain
		if temp < 0 {
			r.Precipitation = PrecipitationSnow
		}
	}
	return r
}

// Summary aggregates readings over a height map
type Summary struct {
	Turn            int     `json:"turn"`
	MeanTemperature float64 `json:"mean_temperature"`
	MeanHumidity    float64 `json:"mean_humidity"`
	MeanChance      float64 `json:"mean_chance"`
	Rain            int     `json:"rain"`
	Snow            int     `json:"snow"`
	Tiles           int     `json:"tiles"`
}

// Field samples every tile of heights for turn
func (c Climate) Field(heights [][]float64, turn int) Summary {
	s := Summary{Turn: turn}
	be := BoundExpansion(turn)
	for _, row := range heights {
		for _, h := range row {
			r := c.sample(turn, be, h)
			s.MeanTemperature += r.Temperature
			s.MeanHumidity += r.Humidity
			s.MeanChance += r.Chance
			switch r.Precipitation {
			case PrecipitationRain:
				s.Rain++
			case PrecipitationSnow:
				s.Snow++
			}
			s.Tiles++
		}
	}
	if s.Tiles > 0 {
		n := float64(s.Tiles)
		s.MeanTemperature /= n
		s.MeanHumidity /= n
		s.MeanChance /= n
	}
	return s
}
