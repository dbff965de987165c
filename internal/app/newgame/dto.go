package newgame

import (
	"time"

	"wildbound/internal/domain/creature"
	"wildbound/internal/domain/world"
)

type Request struct {
	Slot    string
	Name    string
	Starter string
	Width   int
	Height  int
	// Seed is drawn at random when nil.
	Seed      *float64
	Noise     string
	Overwrite bool
}

type Response struct {
	Slot    string             `json:"slot"`
	Version int64              `json:"version"`
	Seed    float64            `json:"seed"`
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Noise   world.NoiseKind    `json:"noise"`
	Spawn   world.Point        `json:"spawn"`
	Starter *creature.Creature `json:"starter"`
}

type SlotSummary struct {
	Slot        string    `json:"slot"`
	Version     int64     `json:"version"`
	PlayerName  string    `json:"player_name"`
	PlayerLevel int       `json:"player_level"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListResponse struct {
	Slots []SlotSummary `json:"slots"`
}

type DeleteRequest struct {
	Slot string
}
