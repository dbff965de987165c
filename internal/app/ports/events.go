package ports

import (
	"time"

	"wildbound/internal/domain/battle"
)

type BattleEventKind string

const (
	BattleStarted      BattleEventKind = "battle_started"
	BattleAction       BattleEventKind = "battle_action"
	BattleOpponentTurn BattleEventKind = "battle_opponent_turn"
	BattleEnded        BattleEventKind = "battle_ended"
)

type BattleEvent struct {
	Slot     string          `json:"slot"`
	Kind     BattleEventKind `json:"kind"`
	Snapshot battle.Snapshot `json:"snapshot"`
	Result   *battle.Result  `json:"result,omitempty"`
	At       time.Time       `json:"at"`
}

// BattleEventPublisher must not block the caller.
type BattleEventPublisher interface {
	Publish(evt BattleEvent)
}
