package player

import (
	"fmt"

	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
)

type InteractionKind string

const (
	InteractionHeal       InteractionKind = "heal"
	InteractionEncounter  InteractionKind = "encounter"
	InteractionExperience InteractionKind = "experience"
	InteractionNone       InteractionKind = "none"
)

type Interaction struct {
	Kind       InteractionKind    `json:"kind"`
	POI        *world.POI         `json:"poi,omitempty"`
	Message    string             `json:"message"`
	Encounter  *creature.Creature `json:"-"`
	Experience int                `json:"experience,omitempty"`
	LeveledUp  bool               `json:"leveled_up,omitempty"`
}

// Interact explores the current cell. Open ground always spawns a local wild
// creature.
func (p *Player) Interact(w *world.World, f creature.Factory) (Interaction, error) {
	poi := p.CurrentPOI(w)
	if poi == nil {
		c, err := f.GenerateWild(p.CurrentBiome(w), p.Level-2, p.Level+3)
		if err != nil {
			return Interaction{}, err
		}
		return Interaction{
			Kind:      InteractionEncounter,
			Message:   fmt.Sprintf("A wild %s jumped out!", c.Name),
			Encounter: c,
		}, nil
	}

	switch {
	case poi.Type == world.POIShrine:
		exp := p.Level * 25
		leveled := p.GainExperience(exp)
		return Interaction{
			Kind:       InteractionExperience,
			POI:        poi,
			Message:    fmt.Sprintf("You prayed at the %s and gained %d experience!", poi.Name, exp),
			Experience: exp,
			LeveledUp:  leveled,
		}, nil
	case poi.Type == world.POITown || poi.HasHealing:
		p.Collection.HealAll()
		return Interaction{
			Kind:    InteractionHeal,
			POI:     poi,
			Message: fmt.Sprintf("Welcome to %s! Your creatures have been healed.", poi.Name),
		}, nil
	case poi.Type == world.POIDungeon || poi.Type == world.POICave || poi.Type == world.POIRuins:
		c, err := f.GenerateWild(p.CurrentBiome(w), p.Level, p.Level+5)
		if err != nil {
			return Interaction{}, err
		}
		return Interaction{
			Kind:      InteractionEncounter,
			POI:       poi,
			Message:   fmt.Sprintf("A wild %s lurks inside the %s!", c.Name, poi.Name),
			Encounter: c,
		}, nil
	default:
		return Interaction{
			Kind:    InteractionNone,
			POI:     poi,
			Message: poi.Description,
		}, nil
	}
}
