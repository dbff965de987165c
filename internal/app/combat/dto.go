package combat

import "wildbound/internal/domain/battle"

type ActionRequest struct {
	Slot      string
	Action    string
	MoveIndex int
	// SwitchTo is the collection id of the team member to send out.
	SwitchTo string
}

type ActionResponse struct {
	Slot   string              `json:"slot"`
	Action battle.ActionResult `json:"action"`
	Battle battle.Snapshot     `json:"battle"`
	Result *battle.Result      `json:"result,omitempty"`
}

type BossRequest struct {
	Slot   string
	BossID int
}

type BossResponse struct {
	Slot   string          `json:"slot"`
	BossID int             `json:"boss_id"`
	Battle battle.Snapshot `json:"battle"`
}

type StateRequest struct {
	Slot string
}

type StateResponse struct {
	Slot   string           `json:"slot"`
	Active bool             `json:"active"`
	Battle *battle.Snapshot `json:"battle,omitempty"`
}
