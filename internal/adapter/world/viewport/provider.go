package viewport

import (
	"context"

	"wildbound/internal/app/ports"
	"wildbound/internal/domain/world"
)

const (
	DefaultViewRadius = 7
	DefaultChunkSize  = 8
	MaxViewRadius     = 25
)

type Config struct {
	ViewRadius int
	ChunkSize  int
	Chunks     ports.ChunkStore
}

// Provider cuts a square window out of a world, caching whole chunks in the
// chunk store keyed by world fingerprint.
type Provider struct {
	cfg Config
}

func DefaultConfig() Config {
	return Config{
		ViewRadius: DefaultViewRadius,
		ChunkSize:  DefaultChunkSize,
	}
}

func NewProvider(cfg Config) Provider {
	def := DefaultConfig()
	if cfg.ViewRadius <= 0 {
		cfg.ViewRadius = def.ViewRadius
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	return Provider{cfg: cfg}
}

// View uses the configured radius when radius <= 0.
func (p Provider) View(ctx context.Context, w *world.World, center world.Point, radius int) (world.Snapshot, error) {
	if radius <= 0 {
		radius = p.cfg.ViewRadius
	}
	if radius > MaxViewRadius {
		radius = MaxViewRadius
	}
	chunks, err := p.loadChunksForWindow(ctx, w, center, radius)
	if err != nil {
		return world.Snapshot{}, err
	}

	tiles := make([]world.Tile, 0, (radius*2+1)*(radius*2+1))
	for _, chunk := range chunks {
		for _, t := range chunk.Tiles {
			if world.InWindow(world.Point{X: t.X, Y: t.Y}, center, radius) {
				tiles = append(tiles, t)
			}
		}
	}
	pois := make([]world.POI, 0)
	for _, poi := range w.POIs() {
		if world.InWindow(poi.Pos(), center, radius) {
			pois = append(pois, poi)
		}
	}

	snap := world.Snapshot{
		Center:       center,
		ViewRadius:   radius,
		Width:        w.Width(),
		Height:       w.Height(),
		CurrentPOI:   w.POIAt(center.X, center.Y),
		VisibleTiles: tiles,
		VisiblePOIs:  pois,
	}
	if b := w.BiomeAt(center.X, center.Y); b != nil {
		snap.CurrentBiome = b.Name
	}
	return snap, nil
}

func (p Provider) loadChunksForWindow(ctx context.Context, w *world.World, center world.Point, radius int) ([]world.Chunk, error) {
	size := p.cfg.ChunkSize
	minX := floorDiv(max(center.X-radius, 0), size)
	maxX := floorDiv(min(center.X+radius, w.Width()-1), size)
	minY := floorDiv(max(center.Y-radius, 0), size)
	maxY := floorDiv(min(center.Y+radius, w.Height()-1), size)
	if maxX < minX || maxY < minY {
		return nil, nil
	}

	fp := w.Fingerprint()
	out := make([]world.Chunk, 0, (maxX-minX+1)*(maxY-minY+1))
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			coord := world.ChunkCoord{X: cx, Y: cy}
			if p.cfg.Chunks != nil {
				if cached, ok, err := p.cfg.Chunks.GetChunk(ctx, fp, coord); err != nil {
					return nil, err
				} else if ok {
					out = append(out, cached)
					continue
				}
			}
			chunk := w.ChunkAt(coord, size)
			if p.cfg.Chunks != nil {
				if err := p.cfg.Chunks.PutChunk(ctx, fp, chunk); err != nil {
					return nil, err
				}
			}
			out = append(out, chunk)
		}
	}
	return out, nil
}

func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -(((-a) + b - 1) / b)
}

var _ ports.WorldViewProvider = Provider{}
