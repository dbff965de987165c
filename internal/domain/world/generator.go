package world

import (
	"errors"
	"math"
	"math/rand/v2"
)

var ErrInvalidDimensions = errors.New("world dimensions must be positive")

const (
	DefaultWidth  = 100
	DefaultHeight = 100

	poiDensity = 500
	poiMargin  = 5

	heightOctaves     = 4
	moistureOctaves   = 3
	moistureFrequency = 0.02
	temperatureFreq   = 0.01

	heightSeedScale      = 500
	moistureSeedScale    = 1000
	temperatureSeedScale = 2000
)

type GeneratorConfig struct {
	Noise NoiseKind
}

type Generator struct {
	cfg GeneratorConfig
}

func NewGenerator(cfg GeneratorConfig) Generator {
	if cfg.Noise == "" {
		cfg.Noise = NoiseValue
	}
	return Generator{cfg: cfg}
}

func (g Generator) Noise() NoiseKind {
	if g.cfg.Noise == "" {
		return NoiseValue
	}
	return g.cfg.Noise
}

// Generate builds a world that is a pure function of its arguments and the
// generator's noise kind.
func (g Generator) Generate(width, height int, seed float64) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	kind := g.Noise()
	base := seedInt(seed)
	heightNoise := NewSampler(kind, base)
	moistureNoise := NewSampler(kind, base+1)
	tempNoise := NewSampler(kind, base+2)

	n := width * height
	w := &World{
		width:       width,
		height:      height,
		seed:        seed,
		noise:       kind,
		heightMap:   make([]float64, n),
		moistureMap: make([]float64, n),
		tempMap:     make([]float64, n),
		biomes:      make([]*Biome, n),
	}

	heightParams := DefaultFractalParams(heightOctaves)
	moistureParams := DefaultFractalParams(moistureOctaves)
	moistureParams.BaseFrequency = moistureFrequency
	halfH := float64(height) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := w.index(x, y)
			fx, fy := float64(x), float64(y)

			hv := FractalNoise(heightNoise, fx+seed*heightSeedScale, fy+seed*heightSeedScale, heightParams)
			mv := FractalNoise(moistureNoise, fx+seed*moistureSeedScale, fy+seed*moistureSeedScale, moistureParams)

			equator := math.Abs(fy-halfH) / halfH
			tv := 1 - equator*0.8
			tv -= hv * 0.3
			tv += tempNoise.Sample(fx+seed*temperatureSeedScale, fy+seed*temperatureSeedScale, temperatureFreq) * 0.2

			w.heightMap[i] = hv
			w.moistureMap[i] = mv
			w.tempMap[i] = clamp01(tv)
			w.biomes[i] = Classify(hv, mv, w.tempMap[i])
		}
	}

	w.pois = placePOIs(w, poiRand(seed))
	return w, nil
}

func poiRand(seed float64) *rand.Rand {
	return rand.New(rand.NewPCG(math.Float64bits(seed), 0x5eed))
}

// placePOIs does not check for collisions; two POIs may share a cell.
func placePOIs(w *World, r Rand) []POI {
	cx, cy := w.width/2, w.height/2
	pois := []POI{starterTown(cx, cy, w.BiomeAt(cx, cy))}

	count := (w.width * w.height) / poiDensity
	loX, hiX := marginRange(w.width)
	loY, hiY := marginRange(w.height)
	for i := 0; i < count; i++ {
		x := loX + r.IntN(hiX-loX+1)
		y := loY + r.IntN(hiY-loY+1)
		biome := w.BiomeAt(x, y)

		var t POIType
		if biome.Type == BiomeWater {
			t = waterTypes[r.IntN(len(waterTypes))]
		} else {
			t = buildingTypes[r.IntN(len(buildingTypes))]
		}
		pois = append(pois, newPOI(x, y, t, biome, r))
	}
	return pois
}

// marginRange keeps POIs poiMargin cells from the edges, falling back to the
// whole axis when the world is too small for the margin.
func marginRange(size int) (int, int) {
	lo, hi := poiMargin, size-poiMargin
	if hi < lo || hi >= size {
		return 0, size - 1
	}
	return lo, hi
}

// Restore rebuilds a world from its parameters; the grids are regenerated.
func (g Generator) Restore(width, height int, seed float64, fingerprint uint64) (*World, error) {
	w, err := g.Generate(width, height, seed)
	if err != nil {
		return nil, err
	}
	if fingerprint != 0 && w.Fingerprint() != fingerprint {
		return nil, ErrWorldMismatch
	}
	return w, nil
}

var ErrWorldMismatch = errors.New("regenerated world does not match saved fingerprint")
