package creature

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"wildbound/internal/domain/world"
)

const (
	StarterTemplate = "flamewyrm"
	StarterLevel    = 5
)

var ErrInvalidLevel = errors.New("creature level must be at least 1")

// Factory instantiates creatures from an immutable registry.
type Factory struct {
	Registry Registry
	Elements ElementTable
	NewID    func() string
	Rand     world.Rand
}

func NewFactory(reg Registry, elements ElementTable) Factory {
	return Factory{Registry: reg, Elements: elements}
}

// DefaultFactory uses the shipped registry and element table.
func DefaultFactory() Factory {
	return NewFactory(DefaultRegistry(), DefaultElementTable())
}

func (f Factory) newID() string {
	if f.NewID != nil {
		return f.NewID()
	}
	return uuid.NewString()
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

func (f Factory) rng() world.Rand {
	if f.Rand != nil {
		return f.Rand
	}
	return globalRand{}
}

func (f Factory) New(templateID string, level int, isWild bool) (*Creature, error) {
	t, err := f.Registry.Template(templateID)
	if err != nil {
		return nil, err
	}
	if level < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	return f.fromTemplate(t, f.newID(), level, isWild), nil
}

func (f Factory) fromTemplate(t Template, id string, level int, isWild bool) *Creature {
	c := &Creature{
		ID:               id,
		TemplateID:       t.ID,
		Name:             t.Name,
		Type:             t.Type,
		Rarity:           t.Rarity,
		BaseStats:        t.BaseStats,
		Level:            level,
		IsWild:           isWild,
		StatusConditions: []string{},
		Moves:            movesFor(t.Type, f.Elements),
	}
	bindEvolution(c, t, f.Registry)
	c.recompute()
	c.CurrentHP = c.MaxHP
	return c
}

// Starter grants a level 5 non-wild creature. An empty id selects the
// default starter.
func (f Factory) Starter(templateID string) (*Creature, error) {
	if templateID == "" {
		templateID = StarterTemplate
	}
	return f.New(templateID, StarterLevel, false)
}

// GenerateWild picks a template native to biome, or a fallback species when
// none lives there, at a uniform level in [max(1,minLevel), maxLevel].
func (f Factory) GenerateWild(biome *world.Biome, minLevel, maxLevel int) (*Creature, error) {
	candidates := []string{}
	if biome != nil {
		candidates = f.Registry.Habitat(string(biome.Type))
	}
	if len(candidates) == 0 {
		candidates = f.Registry.Fallback()
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no wild species available", ErrUnknownTemplate)
	}
	r := f.rng()
	id := candidates[r.IntN(len(candidates))]

	if minLevel < 1 {
		minLevel = 1
	}
	if maxLevel < minLevel {
		maxLevel = minLevel
	}
	level := minLevel + r.IntN(maxLevel-minLevel+1)
	return f.New(id, level, true)
}

// Evolve returns the evolved form of c, or c itself and false when it is not
// eligible.
func (f Factory) Evolve(c *Creature) (*Creature, bool) {
	if c == nil || !c.CanEvolve() {
		return c, false
	}
	target, err := f.Registry.Template(c.EvolvesInto)
	if err != nil {
		return c, false
	}
	return c.evolveInto(target, f.Registry, f.Elements), true
}

// Restore rebuilds a creature from its record. Template-derived fields are
// recomputed and HP is clamped to the recomputed maximum.
func (f Factory) Restore(rec Record) (*Creature, error) {
	t, err := f.Registry.Template(rec.TemplateID)
	if err != nil {
		return nil, err
	}
	level := rec.Level
	if level < 1 {
		level = 1
	}
	id := rec.ID
	if id == "" {
		id = f.newID()
	}
	c := f.fromTemplate(t, id, level, rec.IsWild)
	c.Experience = max(rec.Experience, 0)
	c.CurrentHP = min(max(rec.CurrentHP, 0), c.MaxHP)
	if rec.StatusConditions != nil {
		c.StatusConditions = append([]string{}, rec.StatusConditions...)
	}
	return c, nil
}
