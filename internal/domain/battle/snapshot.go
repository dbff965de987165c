package battle

import "wildbound/internal/domain/creature"

type Combatant struct {
	ID         string               `json:"id"`
	TemplateID string               `json:"template_id"`
	Name       string               `json:"name"`
	Type       creature.ElementType `json:"type"`
	Color      string               `json:"color"`
	Emoji      string               `json:"emoji"`
	Level      int                  `json:"level"`
	CurrentHP  int                  `json:"current_hp"`
	MaxHP      int                  `json:"max_hp"`
	HPFraction float64              `json:"hp_fraction"`
	Wild       bool                 `json:"wild"`
	Moves      []creature.Move      `json:"moves"`
}

// Snapshot is the display view of a session.
type Snapshot struct {
	Player     Combatant `json:"player"`
	Opponent   Combatant `json:"opponent"`
	Turn       int       `json:"turn"`
	PlayerTurn bool      `json:"player_turn"`
	Ended      bool      `json:"ended"`
	Outcome    Outcome   `json:"outcome,omitempty"`
	Log        []string  `json:"log"`
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Player:     e.combatant(e.player),
		Opponent:   e.combatant(e.opponent),
		Turn:       e.turn,
		PlayerTurn: e.playerTurn,
		Ended:      e.ended,
		Log:        e.Messages(),
	}
	if e.result != nil {
		s.Outcome = e.result.Outcome
	}
	return s
}

func (e *Engine) combatant(c *creature.Creature) Combatant {
	el, _ := e.cfg.Elements.Get(c.Type)
	out := Combatant{
		ID:         c.ID,
		TemplateID: c.TemplateID,
		Name:       c.Name,
		Type:       c.Type,
		Color:      el.Color,
		Emoji:      el.Emoji,
		Level:      c.Level,
		CurrentHP:  c.CurrentHP,
		MaxHP:      c.MaxHP,
		Wild:       c.IsWild,
		Moves:      append([]creature.Move(nil), c.Moves...),
	}
	if c.MaxHP > 0 {
		out.HPFraction = float64(c.CurrentHP) / float64(c.MaxHP)
	}
	return out
}
