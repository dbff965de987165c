package world

import "fmt"

type POIType string

const (
	POITown       POIType = "town"
	POIDungeon    POIType = "dungeon"
	POIShrine     POIType = "shrine"
	POICave       POIType = "cave"
	POIRuins      POIType = "ruins"
	POIHouse      POIType = "house"
	POIInn        POIType = "inn"
	POIShop       POIType = "shop"
	POIDojo       POIType = "dojo"
	POITower      POIType = "tower"
	POIGarden     POIType = "garden"
	POIBridge     POIType = "bridge"
	POIWindmill   POIType = "windmill"
	POILighthouse POIType = "lighthouse"
	POITemple     POIType = "temple"
)

const (
	StarterTownName        = "Starter Town"
	starterTownDescription = "A peaceful town where trainers begin their journey"
)

// buildingTypes is the pool for randomly placed POIs, in draw order.
var buildingTypes = []POIType{
	POIDungeon, POIShrine, POICave, POIRuins,
	POIHouse, POIInn, POIShop, POIDojo, POITower,
	POIGarden, POIBridge, POIWindmill, POILighthouse, POITemple,
}

var waterTypes = []POIType{POILighthouse, POIBridge}

type POI struct {
	X            int       `json:"x"`
	Y            int       `json:"y"`
	Type         POIType   `json:"type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Biome        BiomeType `json:"biome"`
	CanExplore   bool      `json:"can_explore"`
	HasCreatures bool      `json:"has_creatures"`
	HasShop      bool      `json:"has_shop"`
	HasHealing   bool      `json:"has_healing"`
}

func (p POI) Pos() Point {
	return Point{X: p.X, Y: p.Y}
}

func CanExplore(t POIType) bool {
	switch t {
	case POIDungeon, POICave, POIRuins, POITower, POITemple, POIHouse, POIInn:
		return true
	}
	return false
}

func HasCreatures(t POIType) bool {
	switch t {
	case POIDungeon, POICave, POIRuins, POITower, POIGarden:
		return true
	}
	return false
}

func HasShop(t POIType) bool {
	return t == POIShop || t == POIInn
}

func HasHealing(t POIType) bool {
	switch t {
	case POIShrine, POITemple, POIInn:
		return true
	}
	return false
}

var poiPrefixes = map[POIType][]string{
	POIDungeon:    {"Ancient", "Forgotten", "Dark", "Hidden"},
	POIShrine:     {"Sacred", "Mystical", "Divine", "Holy"},
	POICave:       {"Crystal", "Echo", "Deep", "Twilight"},
	POIRuins:      {"Lost", "Crumbling", "Ancient", "Abandoned"},
	POIHouse:      {"Cozy", "Peaceful", "Quiet", "Warm"},
	POIInn:        {"Traveler's", "Weary", "Golden", "Silver"},
	POIShop:       {"Merchant's", "Trading", "Wonder", "Mystic"},
	POIDojo:       {"Training", "Master's", "Ancient", "Fighting"},
	POITower:      {"Wizard's", "Lonely", "Tall", "Mysterious"},
	POIGarden:     {"Serene", "Blooming", "Secret", "Enchanted"},
	POIBridge:     {"Stone", "Wooden", "Ancient", "Crossing"},
	POIWindmill:   {"Old", "Creaking", "Hillside", "Working"},
	POILighthouse: {"Beacon", "Guiding", "Coastal", "Stormy"},
	POITemple:     {"Grand", "Sacred", "Ancient", "Peaceful"},
}

var poiSuffixes = map[POIType][]string{
	POIDungeon:    {"Dungeon", "Labyrinth", "Depths", "Catacombs"},
	POIShrine:     {"Shrine", "Altar", "Sanctuary", "Grove"},
	POICave:       {"Cave", "Cavern", "Grotto", "Hollow"},
	POIRuins:      {"Ruins", "Remnants", "Vestiges", "Remains"},
	POIHouse:      {"House", "Cottage", "Home", "Dwelling"},
	POIInn:        {"Inn", "Tavern", "Lodge", "Rest"},
	POIShop:       {"Shop", "Store", "Emporium", "Market"},
	POIDojo:       {"Dojo", "Academy", "School", "Hall"},
	POITower:      {"Tower", "Spire", "Keep", "Observatory"},
	POIGarden:     {"Garden", "Grove", "Meadow", "Orchard"},
	POIBridge:     {"Bridge", "Crossing", "Span", "Passage"},
	POIWindmill:   {"Windmill", "Mill", "Spinner", "Grinder"},
	POILighthouse: {"Lighthouse", "Beacon", "Tower", "Light"},
	POITemple:     {"Temple", "Cathedral", "Monastery", "Basilica"},
}

var poiDescriptions = map[POIType]string{
	POIDungeon:    "A mysterious %s hidden in the %s. Legends speak of powerful creatures dwelling within.",
	POIShrine:     "An ancient %s in the %s. It radiates with mystical energy.",
	POICave:       "A natural %s formation in the %s. Strange sounds echo from its depths.",
	POIRuins:      "The %s of an ancient civilization in the %s. What secrets do they hold?",
	POIHouse:      "A charming %s nestled in the %s. Perhaps someone lives here?",
	POIInn:        "A welcoming %s in the %s. Travelers can rest and recover here.",
	POIShop:       "A bustling %s in the %s. Rare items and supplies can be found here.",
	POIDojo:       "A training %s in the %s. Masters here teach the art of creature combat.",
	POITower:      "A tall %s rising from the %s. Who knows what knowledge lies at its peak?",
	POIGarden:     "A beautiful %s blooming in the %s. Rare creatures might be found among the flowers.",
	POIBridge:     "An ancient %s crossing through the %s. A perfect place for encounters.",
	POIWindmill:   "An old %s turning in the %s. The miller might have stories to tell.",
	POILighthouse: "A beacon %s standing in the %s. It guides travelers through treacherous waters.",
	POITemple:     "A magnificent %s built in the %s. Pilgrims come here to seek blessings.",
}

// Rand is the randomness a generator needs; *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

func poiName(t POIType, r Rand) string {
	prefixes, ok := poiPrefixes[t]
	if !ok {
		prefixes = poiPrefixes[POIRuins]
	}
	suffixes, ok := poiSuffixes[t]
	if !ok {
		suffixes = poiSuffixes[POIRuins]
	}
	return prefixes[r.IntN(len(prefixes))] + " " + suffixes[r.IntN(len(suffixes))]
}

func poiDescription(t POIType, biome *Biome) string {
	tmpl, ok := poiDescriptions[t]
	if !ok {
		return fmt.Sprintf("A mysterious structure in the %s.", biome.Name)
	}
	return fmt.Sprintf(tmpl, t, biome.Name)
}

func newPOI(x, y int, t POIType, biome *Biome, r Rand) POI {
	return POI{
		X:            x,
		Y:            y,
		Type:         t,
		Name:         poiName(t, r),
		Description:  poiDescription(t, biome),
		Biome:        biome.Type,
		CanExplore:   CanExplore(t),
		HasCreatures: HasCreatures(t),
		HasShop:      HasShop(t),
		HasHealing:   HasHealing(t),
	}
}

func starterTown(x, y int, biome *Biome) POI {
	return POI{
		X:           x,
		Y:           y,
		Type:        POITown,
		Name:        StarterTownName,
		Description: starterTownDescription,
		Biome:       biome.Type,
		HasHealing:  true,
	}
}
