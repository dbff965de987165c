package world

import "errors"

var ErrGridSize = errors.New("climate grid does not match world size")

// Climate is one cell's generator inputs.
type Climate struct {
	Height      float64
	Moisture    float64
	Temperature float64
}

// Assemble builds a world from an explicit row-major climate grid and POI
// list, classifying every cell the way Generate does. The seed is recorded
// as given and not used to derive anything.
func Assemble(width, height int, seed float64, cells []Climate, pois []POI) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(cells) != width*height {
		return nil, ErrGridSize
	}
	n := width * height
	w := &World{
		width:       width,
		height:      height,
		seed:        seed,
		noise:       NoiseValue,
		heightMap:   make([]float64, n),
		moistureMap: make([]float64, n),
		tempMap:     make([]float64, n),
		biomes:      make([]*Biome, n),
		pois:        append([]POI(nil), pois...),
	}
	for i, c := range cells {
		w.heightMap[i] = clamp01(c.Height)
		w.moistureMap[i] = clamp01(c.Moisture)
		w.tempMap[i] = clamp01(c.Temperature)
		w.biomes[i] = Classify(w.heightMap[i], w.moistureMap[i], w.tempMap[i])
	}
	for i := range w.pois {
		p := &w.pois[i]
		if b := w.BiomeAt(p.X, p.Y); b != nil && p.Biome == "" {
			p.Biome = b.Type
		}
		p.CanExplore = CanExplore(p.Type)
		p.HasCreatures = HasCreatures(p.Type)
		p.HasShop = HasShop(p.Type)
		p.HasHealing = HasHealing(p.Type) || p.Type == POITown
	}
	return w, nil
}

// Fill returns a width*height grid of one climate.
func Fill(width, height int, c Climate) []Climate {
	out := make([]Climate, width*height)
	for i := range out {
		out[i] = c
	}
	return out
}
