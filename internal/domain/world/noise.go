package world

import "math"

// BaseNoise hashes a coordinate pair into [0,1). It is a pure function.
func BaseNoise(x, y float64) float64 {
	n := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return n - math.Floor(n)
}

// ValueNoise interpolates BaseNoise at the integer corners around
// (x*frequency, y*frequency) with smoothstep easing.
func ValueNoise(x, y, frequency float64) float64 {
	x *= frequency
	y *= frequency

	xi := math.Floor(x)
	yi := math.Floor(y)
	u := smoothstep(x - xi)
	v := smoothstep(y - yi)

	a := BaseNoise(xi, yi)
	b := BaseNoise(xi+1, yi)
	c := BaseNoise(xi, yi+1)
	d := BaseNoise(xi+1, yi+1)

	return lerp(lerp(a, b, u), lerp(c, d, u), v)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type FractalParams struct {
	Octaves       int
	BaseFrequency float64
	Amplitude     float64
	Lacunarity    float64
	Persistence   float64
}

func DefaultFractalParams(octaves int) FractalParams {
	return FractalParams{
		Octaves:       octaves,
		BaseFrequency: 0.01,
		Amplitude:     1,
		Lacunarity:    2,
		Persistence:   0.5,
	}
}

// Sampler is a deterministic 2D scalar field in [0,1].
type Sampler interface {
	Sample(x, y, frequency float64) float64
}

type ValueSampler struct{}

func (ValueSampler) Sample(x, y, frequency float64) float64 {
	return ValueNoise(x, y, frequency)
}

// FractalNoise sums octaves of s and clamps the result to [0,1].
func FractalNoise(s Sampler, x, y float64, p FractalParams) float64 {
	if s == nil {
		s = ValueSampler{}
	}
	value := 0.0
	amplitude := p.Amplitude
	frequency := p.BaseFrequency
	for i := 0; i < p.Octaves; i++ {
		value += s.Sample(x, y, frequency) * amplitude
		amplitude *= p.Persistence
		frequency *= p.Lacunarity
	}
	return clamp01(value)
}
