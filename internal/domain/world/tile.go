package world

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Tile struct {
	X             int       `json:"x"`
	Y             int       `json:"y"`
	Biome         BiomeType `json:"biome"`
	Color         string    `json:"color"`
	Passable      bool      `json:"passable"`
	EncounterRate float64   `json:"encounter_rate"`
	POI           POIType   `json:"poi,omitempty"`
}

func tileFor(x, y int, b *Biome) Tile {
	return Tile{
		X:             x,
		Y:             y,
		Biome:         b.Type,
		Color:         b.Color,
		Passable:      b.Type != BiomeWater,
		EncounterRate: b.EncounterRate,
	}
}
