package world

import (
	"errors"
	"fmt"
	"math"
	"strings"

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

type NoiseKind string

const (
	NoiseValue   NoiseKind = "value"
	NoisePerlin  NoiseKind = "perlin"
	NoiseSimplex NoiseKind = "simplex"
)

var ErrUnknownNoiseKind = errors.New("unknown noise kind")

func ParseNoiseKind(raw string) (NoiseKind, error) {
	switch NoiseKind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", NoiseValue:
		return NoiseValue, nil
	case NoisePerlin:
		return NoisePerlin, nil
	case NoiseSimplex:
		return NoiseSimplex, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNoiseKind, raw)
	}
}

// NewSampler builds the sampler for kind. The value sampler ignores the seed;
// callers offset coordinates by the seed instead.
func NewSampler(kind NoiseKind, seed int64) Sampler {
	switch kind {
	case NoisePerlin:
		return PerlinSampler{p: perlin.NewPerlin(2, 2, 3, seed)}
	case NoiseSimplex:
		return SimplexSampler{n: opensimplex.NewNormalized(seed)}
	default:
		return ValueSampler{}
	}
}

type PerlinSampler struct {
	p *perlin.Perlin
}

// Sample remaps gradient noise from roughly [-1,1] into [0,1].
func (s PerlinSampler) Sample(x, y, frequency float64) float64 {
	return clamp01((s.p.Noise2D(x*frequency, y*frequency) + 1) / 2)
}

type SimplexSampler struct {
	n opensimplex.Noise
}

func (s SimplexSampler) Sample(x, y, frequency float64) float64 {
	return clamp01(s.n.Eval2(x*frequency, y*frequency))
}

// seedInt derives an integer seed for the library samplers.
func seedInt(seed float64) int64 {
	return int64(math.Float64bits(seed) ^ 0x9E3779B97F4A7C15)
}
