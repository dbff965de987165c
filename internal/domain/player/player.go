package player

import (
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"

	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
)

const (
	DefaultName       = "Trainer"
	BaseEncounterRate = 0.15
)

type Player struct {
	Name           string
	Level          int
	Experience     int
	Position       world.Point
	DefeatedBosses []int
	Inventory      *Inventory
	Collection     *creature.Collection
	Stats          GameStats

	visited mapset.Set[world.Point]
}

func New(name string, spawn world.Point, collection *creature.Collection, now time.Time) *Player {
	if name == "" {
		name = DefaultName
	}
	if collection == nil {
		collection = creature.NewCollection(creature.DefaultMaxTeamSize)
	}
	return &Player{
		Name:           name,
		Level:          1,
		Position:       spawn,
		DefeatedBosses: []int{},
		Inventory:      NewInventory(DefaultInventorySlots),
		Collection:     collection,
		Stats:          GameStats{GameStartTime: now},
		visited:        mapset.New[world.Point](),
	}
}

// ExperienceToNextLevel is level squared times 150.
func (p *Player) ExperienceToNextLevel() int {
	return p.Level * p.Level * 150
}

// GainExperience reports whether at least one level was gained. Every
// level-up fully heals the collection.
func (p *Player) GainExperience(amount int) bool {
	if amount <= 0 {
		return false
	}
	p.Experience += amount
	p.Stats.TotalExperienceGained += amount
	leveled := false
	for p.Experience >= p.ExperienceToNextLevel() {
		p.Experience -= p.ExperienceToNextLevel()
		p.Level++
		p.Collection.HealAll()
		leveled = true
	}
	return leveled
}

// Move steps one cell. Leaving the map or entering water is refused.
func (p *Player) Move(d Direction, w *world.World) bool {
	next, ok := d.Step(p.Position)
	if !ok || w == nil {
		return false
	}
	biome := w.BiomeAt(next.X, next.Y)
	if biome == nil || biome.Type == world.BiomeWater {
		return false
	}
	p.Position = next
	if !p.visited.Has(next) {
		p.visited.Put(next)
		p.Stats.LocationsDiscovered++
	}
	p.Stats.StepsTaken++
	return true
}

func (p *Player) Visited(pt world.Point) bool {
	return p.visited.Has(pt)
}

func (p *Player) VisitedCount() int {
	return p.visited.Size()
}

// VisitedLocations is sorted by row, then column.
func (p *Player) VisitedLocations() []world.Point {
	out := make([]world.Point, 0, p.visited.Size())
	p.visited.Each(func(pt world.Point) {
		out = append(out, pt)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func (p *Player) CurrentBiome(w *world.World) *world.Biome {
	return w.BiomeAt(p.Position.X, p.Position.Y)
}

func (p *Player) CurrentPOI(w *world.World) *world.POI {
	return w.POIAt(p.Position.X, p.Position.Y)
}

// CheckForEncounter rolls biome encounter rate times the base rate. A nil
// creature with a nil error means nothing appeared.
func (p *Player) CheckForEncounter(w *world.World, f creature.Factory, r world.Rand) (*creature.Creature, error) {
	biome := p.CurrentBiome(w)
	if biome == nil {
		return nil, nil
	}
	if r.Float64() >= biome.EncounterRate*BaseEncounterRate {
		return nil, nil
	}
	return f.GenerateWild(biome, max(1, p.Level-3), p.Level+2)
}

// ApplyBattleResult books a finished battle against the player.
func (p *Player) ApplyBattleResult(res battle.Result) {
	switch res.Outcome {
	case battle.OutcomeWon:
		p.Stats.BattlesWon++
		p.GainExperience(res.ExperienceGained / 2)
	case battle.OutcomeCaptured:
		p.Stats.BattlesWon++
		p.Stats.CreaturesCaptured++
		p.Collection.Capture(res.Captured)
	case battle.OutcomeLost:
		p.Stats.BattlesLost++
	case battle.OutcomeRan:
	}
}

func (p *Player) DefeatBoss(id int) bool {
	for _, b := range p.DefeatedBosses {
		if b == id {
			return false
		}
	}
	p.DefeatedBosses = append(p.DefeatedBosses, id)
	p.Stats.BossesDefeated++
	return true
}

func (p *Player) HasDefeatedBoss(id int) bool {
	for _, b := range p.DefeatedBosses {
		if b == id {
			return true
		}
	}
	return false
}

// HasDefeatedAllBosses counts gym bosses only.
func (p *Player) HasDefeatedAllBosses() bool {
	for _, b := range creature.Bosses() {
		if !p.HasDefeatedBoss(b.ID) {
			return false
		}
	}
	return true
}

func (p *Player) CanChallengeFinalBoss() bool {
	return p.HasDefeatedAllBosses()
}

type Record struct {
	Name             string          `json:"name"`
	Level            int             `json:"level"`
	Experience       int             `json:"experience"`
	X                int             `json:"x"`
	Y                int             `json:"y"`
	DefeatedBosses   []int           `json:"defeatedBosses"`
	VisitedLocations []world.Point   `json:"visitedLocations"`
	Inventory        InventoryRecord `json:"inventory"`
	Stats            GameStats       `json:"gameStats"`
}

func (p *Player) Record(now time.Time) Record {
	stats := p.Stats
	stats.UpdatePlayTime(now)
	return Record{
		Name:             p.Name,
		Level:            p.Level,
		Experience:       p.Experience,
		X:                p.Position.X,
		Y:                p.Position.Y,
		DefeatedBosses:   append([]int{}, p.DefeatedBosses...),
		VisitedLocations: p.VisitedLocations(),
		Inventory:        p.Inventory.Record(),
		Stats:            stats,
	}
}

// Restore rebuilds a player around an already restored collection.
func Restore(rec Record, collection *creature.Collection) *Player {
	p := New(rec.Name, world.Point{X: rec.X, Y: rec.Y}, collection, rec.Stats.GameStartTime)
	p.Level = max(rec.Level, 1)
	p.Experience = max(rec.Experience, 0)
	p.DefeatedBosses = append([]int{}, rec.DefeatedBosses...)
	for _, pt := range rec.VisitedLocations {
		p.visited.Put(pt)
	}
	p.Inventory = RestoreInventory(rec.Inventory)
	p.Stats = rec.Stats
	return p
}
