package world

type ChunkCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Chunk struct {
	Coord ChunkCoord `json:"coord"`
	Tiles []Tile     `json:"tiles"`
}

// ChunkAt cuts the size×size block at coord out of the world. Cells outside
// the world are omitted.
func (w *World) ChunkAt(coord ChunkCoord, size int) Chunk {
	tiles := make([]Tile, 0, size*size)
	baseX := coord.X * size
	baseY := coord.Y * size
	for y := baseY; y < baseY+size; y++ {
		for x := baseX; x < baseX+size; x++ {
			if t, ok := w.TileAt(x, y); ok {
				tiles = append(tiles, t)
			}
		}
	}
	return Chunk{Coord: coord, Tiles: tiles}
}
