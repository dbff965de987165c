package world

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// World is immutable after generation.
type World struct {
	width       int
	height      int
	seed        float64
	noise       NoiseKind
	heightMap   []float64
	moistureMap []float64
	tempMap     []float64
	biomes      []*Biome
	pois        []POI
}

func (w *World) Width() int       { return w.width }
func (w *World) Height() int      { return w.height }
func (w *World) Seed() float64    { return w.seed }
func (w *World) Noise() NoiseKind { return w.noise }

func (w *World) inBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

func (w *World) index(x, y int) int {
	return y*w.width + x
}

// BiomeAt returns nil for coordinates outside the world.
func (w *World) BiomeAt(x, y int) *Biome {
	if !w.inBounds(x, y) {
		return nil
	}
	return w.biomes[w.index(x, y)]
}

func (w *World) HeightAt(x, y int) (float64, bool) {
	if !w.inBounds(x, y) {
		return 0, false
	}
	return w.heightMap[w.index(x, y)], true
}

func (w *World) MoistureAt(x, y int) (float64, bool) {
	if !w.inBounds(x, y) {
		return 0, false
	}
	return w.moistureMap[w.index(x, y)], true
}

func (w *World) TemperatureAt(x, y int) (float64, bool) {
	if !w.inBounds(x, y) {
		return 0, false
	}
	return w.tempMap[w.index(x, y)], true
}

// POIAt returns the first POI placed on (x, y).
func (w *World) POIAt(x, y int) *POI {
	for i := range w.pois {
		if w.pois[i].X == x && w.pois[i].Y == y {
			p := w.pois[i]
			return &p
		}
	}
	return nil
}

func (w *World) POIs() []POI {
	out := make([]POI, len(w.pois))
	copy(out, w.pois)
	return out
}

// Spawn is the position of the starter town.
func (w *World) Spawn() Point {
	for _, p := range w.pois {
		if p.Type == POITown {
			return p.Pos()
		}
	}
	return Point{X: w.width / 2, Y: w.height / 2}
}

func (w *World) TileAt(x, y int) (Tile, bool) {
	b := w.BiomeAt(x, y)
	if b == nil {
		return Tile{}, false
	}
	t := tileFor(x, y, b)
	if poi := w.POIAt(x, y); poi != nil {
		t.POI = poi.Type
	}
	return t, true
}

func (w *World) BiomeCounts() map[BiomeType]int {
	out := map[BiomeType]int{}
	for _, b := range w.biomes {
		out[b.Type]++
	}
	return out
}

// Fingerprint hashes the grids and POIs. Two worlds with equal fingerprints
// are treated as identical by save/load.
func (w *World) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	putInt(w.width)
	putInt(w.height)
	putFloat(w.seed)
	for i := range w.heightMap {
		putFloat(w.heightMap[i])
		putFloat(w.moistureMap[i])
		putFloat(w.tempMap[i])
		_, _ = h.Write([]byte(w.biomes[i].Type))
	}
	for _, p := range w.pois {
		putInt(p.X)
		putInt(p.Y)
		_, _ = h.Write([]byte(p.Type))
		_, _ = h.Write([]byte(p.Name))
	}
	return h.Sum64()
}
