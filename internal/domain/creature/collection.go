package creature

import (
	"github.com/zyedidia/generic/mapset"
)

const DefaultMaxTeamSize = 6

var collectorLevels = []string{
	"Beginner",
	"Novice Collector",
	"Collector",
	"Advanced Collector",
	"Expert Collector",
	"Master Collector",
}

// Collection owns captured creatures. The team is an ordered subset of the
// captured list, at most MaxTeamSize long.
type Collection struct {
	captured    []*Creature
	team        []*Creature
	maxTeamSize int
}

func NewCollection(maxTeamSize int) *Collection {
	if maxTeamSize <= 0 {
		maxTeamSize = DefaultMaxTeamSize
	}
	return &Collection{maxTeamSize: maxTeamSize}
}

func (c *Collection) MaxTeamSize() int { return c.maxTeamSize }

func (c *Collection) indexOf(list []*Creature, id string) int {
	for i, cr := range list {
		if cr.ID == id {
			return i
		}
	}
	return -1
}

// Capture takes ownership of a wild creature, marks it tamed and adds it to
// the team when there is room.
func (c *Collection) Capture(cr *Creature) bool {
	if cr == nil || !cr.IsWild {
		return false
	}
	if c.indexOf(c.captured, cr.ID) >= 0 {
		return false
	}
	cr.IsWild = false
	c.captured = append(c.captured, cr)
	if len(c.team) < c.maxTeamSize {
		c.AddToTeam(cr.ID)
	}
	return true
}

// Add stores a non-wild grant such as the starter.
func (c *Collection) Add(cr *Creature) bool {
	if cr == nil || cr.IsWild || c.indexOf(c.captured, cr.ID) >= 0 {
		return false
	}
	c.captured = append(c.captured, cr)
	if len(c.team) < c.maxTeamSize {
		c.AddToTeam(cr.ID)
	}
	return true
}

func (c *Collection) AddToTeam(id string) bool {
	if len(c.team) >= c.maxTeamSize {
		return false
	}
	i := c.indexOf(c.captured, id)
	if i < 0 || c.indexOf(c.team, id) >= 0 {
		return false
	}
	c.team = append(c.team, c.captured[i])
	return true
}

func (c *Collection) RemoveFromTeam(id string) bool {
	i := c.indexOf(c.team, id)
	if i < 0 {
		return false
	}
	c.team = append(c.team[:i], c.team[i+1:]...)
	return true
}

// Replace swaps the stored creature with the same ID, keeping its captured
// and team positions.
func (c *Collection) Replace(cr *Creature) bool {
	if cr == nil {
		return false
	}
	i := c.indexOf(c.captured, cr.ID)
	if i < 0 {
		return false
	}
	c.captured[i] = cr
	if j := c.indexOf(c.team, cr.ID); j >= 0 {
		c.team[j] = cr
	}
	return true
}

func (c *Collection) Get(id string) (*Creature, bool) {
	i := c.indexOf(c.captured, id)
	if i < 0 {
		return nil, false
	}
	return c.captured[i], true
}

func (c *Collection) Captured() []*Creature {
	return append([]*Creature(nil), c.captured...)
}

func (c *Collection) Team() []*Creature {
	return append([]*Creature(nil), c.team...)
}

func (c *Collection) InTeam(id string) bool {
	return c.indexOf(c.team, id) >= 0
}

// ActiveCreature is the first team member still standing.
func (c *Collection) ActiveCreature() *Creature {
	for _, cr := range c.team {
		if !cr.IsDefeated() {
			return cr
		}
	}
	return nil
}

func (c *Collection) HasUsableCreatures() bool {
	return c.ActiveCreature() != nil
}

func (c *Collection) HealAll() {
	for _, cr := range c.captured {
		cr.FullHeal()
	}
}

func (c *Collection) UniqueSpeciesCount() int {
	species := mapset.New[string]()
	for _, cr := range c.captured {
		species.Put(cr.TemplateID)
	}
	return species.Size()
}

// CollectorLevel steps at 10, 25, 50, 75 and 100 unique species.
func (c *Collection) CollectorLevel() int {
	n := c.UniqueSpeciesCount()
	switch {
	case n >= 100:
		return 5
	case n >= 75:
		return 4
	case n >= 50:
		return 3
	case n >= 25:
		return 2
	case n >= 10:
		return 1
	default:
		return 0
	}
}

func (c *Collection) CollectorLevelName() string {
	return collectorLevels[c.CollectorLevel()]
}

type CollectionRecord struct {
	Captured []Record `json:"capturedCreatures"`
	Team     []string `json:"activeTeam"`
}

func (c *Collection) Record() CollectionRecord {
	rec := CollectionRecord{Captured: make([]Record, 0, len(c.captured)), Team: make([]string, 0, len(c.team))}
	for _, cr := range c.captured {
		rec.Captured = append(rec.Captured, cr.Record())
	}
	for _, cr := range c.team {
		rec.Team = append(rec.Team, cr.ID)
	}
	return rec
}

// RestoreCollection rebuilds a collection. Team ids that name no captured
// creature are dropped.
func RestoreCollection(rec CollectionRecord, f Factory, maxTeamSize int) (*Collection, error) {
	c := NewCollection(maxTeamSize)
	for _, r := range rec.Captured {
		cr, err := f.Restore(r)
		if err != nil {
			return nil, err
		}
		if c.indexOf(c.captured, cr.ID) >= 0 {
			continue
		}
		c.captured = append(c.captured, cr)
	}
	for _, id := range rec.Team {
		c.AddToTeam(id)
	}
	return c, nil
}
