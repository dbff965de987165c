package world

type Snapshot struct {
	Center       Point  `json:"center"`
	ViewRadius   int    `json:"view_radius"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	CurrentBiome string `json:"current_biome"`
	CurrentPOI   *POI   `json:"current_poi,omitempty"`
	VisibleTiles []Tile `json:"visible_tiles"`
	VisiblePOIs  []POI  `json:"visible_pois"`
}

func InWindow(p, center Point, radius int) bool {
	return p.X >= center.X-radius && p.X <= center.X+radius &&
		p.Y >= center.Y-radius && p.Y <= center.Y+radius
}
