package explore

import (
	"wildbound/internal/domain/battle"
	"wildbound/internal/domain/player"
	"wildbound/internal/domain/world"
)

type MoveRequest struct {
	Slot      string
	Direction string
}

type MoveResponse struct {
	Slot       string           `json:"slot"`
	Moved      bool             `json:"moved"`
	Position   world.Point      `json:"position"`
	Biome      string           `json:"biome"`
	POI        *world.POI       `json:"poi,omitempty"`
	StepsTaken int              `json:"steps_taken"`
	Encounter  *battle.Snapshot `json:"encounter,omitempty"`
}

type InteractRequest struct {
	Slot string
}

type InteractResponse struct {
	Slot        string             `json:"slot"`
	Interaction player.Interaction `json:"interaction"`
	Encounter   *battle.Snapshot   `json:"encounter,omitempty"`
}
