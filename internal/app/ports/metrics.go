package ports

import "wildbound/internal/domain/battle"

type GameMetrics interface {
	RecordBattle(outcome battle.Outcome)
	RecordEncounter()
	RecordConflict()
	RecordFailure()
}
