package creature

import "fmt"

type Boss struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Type     ElementType `json:"type"`
	Level    int         `json:"level"`
	Stats    Stats       `json:"stats"`
	Biome    string      `json:"biome"`
	Location string      `json:"location"`
}

// FinalBossID is never part of Bosses().
const FinalBossID = 0

var bosses = []Boss{
	{ID: 1, Name: "Flame Emperor", Type: Fire, Level: 25, Stats: Stats{HP: 150, Attack: 80, Defense: 60, Speed: 45}, Biome: "volcanic", Location: "Molten Peak"},
	{ID: 2, Name: "Tide Master", Type: Water, Level: 30, Stats: Stats{HP: 160, Attack: 75, Defense: 70, Speed: 50}, Biome: "water", Location: "Deep Abyss"},
	{ID: 3, Name: "Forest Guardian", Type: Grass, Level: 28, Stats: Stats{HP: 180, Attack: 70, Defense: 85, Speed: 35}, Biome: "jungle", Location: "Ancient Grove"},
	{ID: 4, Name: "Storm Lord", Type: Electric, Level: 32, Stats: Stats{HP: 140, Attack: 90, Defense: 55, Speed: 80}, Biome: "mountain", Location: "Thunder Peak"},
	{ID: 5, Name: "Frost Monarch", Type: Ice, Level: 35, Stats: Stats{HP: 170, Attack: 75, Defense: 80, Speed: 40}, Biome: "ice", Location: "Frozen Throne"},
	{ID: 6, Name: "Earth Shaker", Type: Ground, Level: 33, Stats: Stats{HP: 200, Attack: 85, Defense: 90, Speed: 25}, Biome: "mountain", Location: "Bedrock Depths"},
	{ID: 7, Name: "Crystal Titan", Type: Rock, Level: 36, Stats: Stats{HP: 220, Attack: 80, Defense: 100, Speed: 20}, Biome: "mountain", Location: "Crystal Caverns"},
	{ID: 8, Name: "Sky Sovereign", Type: Flying, Level: 38, Stats: Stats{HP: 155, Attack: 95, Defense: 65, Speed: 90}, Biome: "mountain", Location: "Celestial Peaks"},
	{ID: 9, Name: "Venom Overlord", Type: Poison, Level: 40, Stats: Stats{HP: 175, Attack: 85, Defense: 75, Speed: 55}, Biome: "swamp", Location: "Toxic Marshlands"},
}

var finalBoss = Boss{
	ID: FinalBossID, Name: "The Ancient One", Type: Psychic, Level: 50,
	Stats: Stats{HP: 300, Attack: 120, Defense: 100, Speed: 80},
	Biome: "special", Location: "Realm of Consciousness",
}

func Bosses() []Boss {
	out := make([]Boss, len(bosses))
	copy(out, bosses)
	return out
}

func FinalBoss() Boss { return finalBoss }

// BossByID resolves gym bosses and the final boss.
func BossByID(id int) (Boss, bool) {
	if id == FinalBossID {
		return finalBoss, true
	}
	for _, b := range bosses {
		if b.ID == id {
			return b, true
		}
	}
	return Boss{}, false
}

// Boss builds a non-capturable legendary opponent. Species comes from the
// first template of the boss element; name and stats come from the boss.
func (f Factory) Boss(b Boss) (*Creature, error) {
	ids := f.Registry.ByElement(b.Type)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no %s species for boss %q", ErrUnknownTemplate, b.Type, b.Name)
	}
	c, err := f.New(ids[0], max(b.Level, 1), false)
	if err != nil {
		return nil, err
	}
	c.Name = b.Name
	c.Rarity = Legendary
	c.BaseStats = b.Stats
	c.Stats = b.Stats
	c.MaxHP = b.Stats.HP
	c.CurrentHP = c.MaxHP
	c.EvolutionLevel = 0
	c.EvolvesInto = ""
	return c, nil
}
