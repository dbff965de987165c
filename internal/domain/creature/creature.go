package creature

const (
	strikePower    = 40
	strikeAccuracy = 90
	tacklePower    = 35
	tackleAccuracy = 95
)

// Move accuracy is carried for display and saves; damage resolution does not
// roll against it.
type Move struct {
	Name     string      `json:"name"`
	Type     ElementType `json:"type"`
	Power    int         `json:"power"`
	Accuracy int         `json:"accuracy"`
}

type Creature struct {
	ID               string      `json:"id"`
	TemplateID       string      `json:"template_id"`
	Name             string      `json:"name"`
	Type             ElementType `json:"type"`
	Rarity           Rarity      `json:"rarity"`
	BaseStats        Stats       `json:"base_stats"`
	Level            int         `json:"level"`
	Experience       int         `json:"experience"`
	Stats            Stats       `json:"stats"`
	MaxHP            int         `json:"max_hp"`
	CurrentHP        int         `json:"current_hp"`
	IsWild           bool        `json:"is_wild"`
	StatusConditions []string    `json:"status_conditions"`
	Moves            []Move      `json:"moves"`
	EvolutionLevel   int         `json:"evolution_level,omitempty"`
	// EvolvesInto is set only when the evolution target is a registered
	// template.
	EvolvesInto string `json:"evolves_into,omitempty"`
}

// StatsAt grows each stat by a flat floor(base*0.1) per level above 1.
func StatsAt(base Stats, level int) Stats {
	if level < 1 {
		level = 1
	}
	grow := func(v int) int {
		return v + (level-1)*(v/10)
	}
	return Stats{
		HP:      grow(base.HP),
		Attack:  grow(base.Attack),
		Defense: grow(base.Defense),
		Speed:   grow(base.Speed),
	}
}

func movesFor(et ElementType, elements ElementTable) []Move {
	return []Move{
		{Name: elements.Name(et) + " Strike", Type: et, Power: strikePower, Accuracy: strikeAccuracy},
		{Name: "Tackle", Type: Normal, Power: tacklePower, Accuracy: tackleAccuracy},
	}
}

// ExperienceToNextLevel is level squared times 100.
func (c *Creature) ExperienceToNextLevel() int {
	return c.Level * c.Level * 100
}

// GainExperience adds amount and applies every level-up it pays for. It
// reports whether at least one level was gained.
func (c *Creature) GainExperience(amount int) bool {
	if amount <= 0 {
		return false
	}
	c.Experience += amount
	leveled := false
	for c.Experience >= c.ExperienceToNextLevel() {
		c.LevelUp()
		leveled = true
	}
	return leveled
}

// LevelUp consumes one threshold of experience, recomputes stats and heals
// to full.
func (c *Creature) LevelUp() {
	c.Experience -= c.ExperienceToNextLevel()
	if c.Experience < 0 {
		c.Experience = 0
	}
	c.Level++
	c.recompute()
	c.CurrentHP = c.MaxHP
}

func (c *Creature) recompute() {
	c.Stats = StatsAt(c.BaseStats, c.Level)
	c.MaxHP = c.Stats.HP
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
}

func (c *Creature) CanEvolve() bool {
	return c.EvolutionLevel > 0 && c.EvolvesInto != "" && c.Level >= c.EvolutionLevel
}

// evolveInto returns a new creature bound to target with the same identity,
// level and experience. The receiver is left untouched.
func (c *Creature) evolveInto(target Template, reg Registry, elements ElementTable) *Creature {
	next := &Creature{
		ID:               c.ID,
		TemplateID:       target.ID,
		Name:             target.Name,
		Type:             target.Type,
		Rarity:           target.Rarity,
		BaseStats:        target.BaseStats,
		Level:            c.Level,
		Experience:       c.Experience,
		IsWild:           c.IsWild,
		StatusConditions: append([]string(nil), c.StatusConditions...),
		Moves:            movesFor(target.Type, elements),
	}
	bindEvolution(next, target, reg)
	next.recompute()
	next.CurrentHP = next.MaxHP
	return next
}

func bindEvolution(c *Creature, t Template, reg Registry) {
	c.EvolutionLevel = t.EvolutionLevel
	c.EvolvesInto = ""
	if t.EvolutionLevel > 0 && reg.Has(t.EvolutionTarget) {
		c.EvolvesInto = t.EvolutionTarget
	}
}

// TakeDamage clamps HP at zero and reports whether the creature is down.
func (c *Creature) TakeDamage(amount int) bool {
	if amount > 0 {
		c.CurrentHP -= amount
	}
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	return c.CurrentHP == 0
}

func (c *Creature) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.CurrentHP += amount
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
}

// FullHeal restores HP and clears status conditions.
func (c *Creature) FullHeal() {
	c.CurrentHP = c.MaxHP
	c.StatusConditions = []string{}
}

// HealthPercentage is in [0,100].
func (c *Creature) HealthPercentage() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.CurrentHP) / float64(c.MaxHP) * 100
}

func (c *Creature) IsDefeated() bool {
	return c.CurrentHP <= 0
}

// Record is the persisted form. Stats and moves are recomputed from the
// template on load.
type Record struct {
	ID               string   `json:"id"`
	TemplateID       string   `json:"templateId"`
	Level            int      `json:"level"`
	Experience       int      `json:"experience"`
	CurrentHP        int      `json:"currentHp"`
	IsWild           bool     `json:"isWild"`
	StatusConditions []string `json:"statusConditions"`
}

func (c *Creature) Record() Record {
	status := append([]string{}, c.StatusConditions...)
	return Record{
		ID:               c.ID,
		TemplateID:       c.TemplateID,
		Level:            c.Level,
		Experience:       c.Experience,
		CurrentHP:        c.CurrentHP,
		IsWild:           c.IsWild,
		StatusConditions: status,
	}
}
