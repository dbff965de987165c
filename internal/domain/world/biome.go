package world

type BiomeType string

const (
	BiomeWater     BiomeType = "water"
	BiomeIce       BiomeType = "ice"
	BiomeMountain  BiomeType = "mountain"
	BiomeVolcanic  BiomeType = "volcanic"
	BiomeDesert    BiomeType = "desert"
	BiomeForest    BiomeType = "forest"
	BiomeJungle    BiomeType = "jungle"
	BiomeSwamp     BiomeType = "swamp"
	BiomeTundra    BiomeType = "tundra"
	BiomeGrassland BiomeType = "grassland"
)

// Biome is a descriptor shared by pointer across every cell that classifies
// to it, and compared by pointer. The package never writes to a descriptor
// after init; callers must treat the package values and their slices as
// read-only. Element types are kept as plain strings so the world package
// stays independent from the creature package.
type Biome struct {
	Type          BiomeType `json:"type"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	EncounterRate float64   `json:"encounter_rate"`
	CreatureTypes []string  `json:"creature_types"`
	Resources     []string  `json:"resources"`
}

var (
	Ocean = &Biome{
		Type: BiomeWater, Name: "Ocean", Color: "#4682B4", EncounterRate: 0.05,
		CreatureTypes: []string{"WATER"},
		Resources:     []string{"fish", "seaweed"},
	}
	FrozenPeaks = &Biome{
		Type: BiomeIce, Name: "Frozen Peaks", Color: "#B8C6DB", EncounterRate: 0.1,
		CreatureTypes: []string{"ICE", "FLYING"},
		Resources:     []string{"ice_crystal", "rare_minerals"},
	}
	RockyMountains = &Biome{
		Type: BiomeMountain, Name: "Rocky Mountains", Color: "#8B7355", EncounterRate: 0.15,
		CreatureTypes: []string{"ROCK", "GROUND", "FIGHTING"},
		Resources:     []string{"stone", "minerals", "crystals"},
	}
	VolcanicWasteland = &Biome{
		Type: BiomeVolcanic, Name: "Volcanic Wasteland", Color: "#DC143C", EncounterRate: 0.2,
		CreatureTypes: []string{"FIRE", "ROCK"},
		Resources:     []string{"lava_stone", "sulfur", "rare_gems"},
	}
	SandyDesert = &Biome{
		Type: BiomeDesert, Name: "Sandy Desert", Color: "#F4A460", EncounterRate: 0.12,
		CreatureTypes: []string{"GROUND", "FIRE", "NORMAL"},
		Resources:     []string{"sand", "cactus", "desert_gems"},
	}
	DenseForest = &Biome{
		Type: BiomeForest, Name: "Dense Forest", Color: "#228B22", EncounterRate: 0.25,
		CreatureTypes: []string{"GRASS", "NORMAL", "POISON"},
		Resources:     []string{"wood", "berries", "herbs"},
	}
	TropicalJungle = &Biome{
		Type: BiomeJungle, Name: "Tropical Jungle", Color: "#006400", EncounterRate: 0.3,
		CreatureTypes: []string{"GRASS", "POISON", "FLYING"},
		Resources:     []string{"tropical_fruits", "exotic_wood", "medicinal_plants"},
	}
	MurkySwamp = &Biome{
		Type: BiomeSwamp, Name: "Murky Swamp", Color: "#556B2F", EncounterRate: 0.22,
		CreatureTypes: []string{"POISON", "WATER", "GRASS"},
		Resources:     []string{"moss", "swamp_gas", "rare_mushrooms"},
	}
	FrozenTundra = &Biome{
		Type: BiomeTundra, Name: "Frozen Tundra", Color: "#D3D3D3", EncounterRate: 0.08,
		CreatureTypes: []string{"ICE", "NORMAL"},
		Resources:     []string{"ice", "frozen_berries", "fur"},
	}
	RollingPlains = &Biome{
		Type: BiomeGrassland, Name: "Rolling Plains", Color: "#9ACD32", EncounterRate: 0.18,
		CreatureTypes: []string{"NORMAL", "ELECTRIC", "FLYING"},
		Resources:     []string{"grass", "flowers", "seeds"},
	}
)

var allBiomes = []*Biome{
	Ocean, FrozenPeaks, RockyMountains, VolcanicWasteland, SandyDesert,
	DenseForest, TropicalJungle, MurkySwamp, FrozenTundra, RollingPlains,
}

// Biomes lists the shared descriptors in classification order. The slice is
// a fresh copy; the descriptors are not.
func Biomes() []*Biome {
	out := make([]*Biome, len(allBiomes))
	copy(out, allBiomes)
	return out
}

func BiomeByType(t BiomeType) (*Biome, bool) {
	for _, b := range allBiomes {
		if b.Type == t {
			return b, true
		}
	}
	return nil, false
}

// Classify maps a (height, moisture, temperature) triple to a biome. Rules are
// evaluated in order and the first match wins.
func Classify(height, moisture, temperature float64) *Biome {
	switch {
	case height < 0.2:
		return Ocean
	case height > 0.8 && temperature < 0.3:
		return FrozenPeaks
	case height > 0.8:
		return RockyMountains
	case height > 0.6 && temperature > 0.7:
		return VolcanicWasteland
	case moisture < 0.3 && temperature > 0.6:
		return SandyDesert
	case moisture > 0.6 && temperature > 0.4 && temperature < 0.8:
		return DenseForest
	case moisture > 0.8 && temperature > 0.7:
		return TropicalJungle
	case moisture > 0.7 && temperature < 0.6:
		return MurkySwamp
	case temperature < 0.3:
		return FrozenTundra
	default:
		return RollingPlains
	}
}

func (b *Biome) HasCreatureType(elementType string) bool {
	if b == nil {
		return false
	}
	for _, t := range b.CreatureTypes {
		if t == elementType {
			return true
		}
	}
	return false
}
