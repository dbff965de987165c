package roster

import "wildbound/internal/domain/creature"

type Op string

const (
	OpTeamAdd    Op = "team_add"
	OpTeamRemove Op = "team_remove"
	OpEvolve     Op = "evolve"
	OpHeal       Op = "heal"
)

type Request struct {
	Slot       string
	Op         Op
	CreatureID string
}

type Response struct {
	Slot     string               `json:"slot"`
	Op       Op                   `json:"op"`
	Message  string               `json:"message"`
	Creature *creature.Creature   `json:"creature,omitempty"`
	Team     []*creature.Creature `json:"team"`
}
