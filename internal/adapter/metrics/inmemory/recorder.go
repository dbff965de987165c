package inmemory

import (
	"sync"

	"wildbound/internal/app/ports"
	"wildbound/internal/domain/battle"
)

type Snapshot struct {
	BattleTotal     uint64            `json:"battle_total"`
	Encounters      uint64            `json:"encounters"`
	SaveConflict    uint64            `json:"save_conflict"`
	SaveFailure     uint64            `json:"save_failure"`
	ByBattleOutcome map[string]uint64 `json:"by_battle_outcome"`
}

type Recorder struct {
	mu         sync.Mutex
	battles    uint64
	encounters uint64
	conflict   uint64
	failure    uint64
	byOutcome  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome: map[string]uint64{},
	}
}

func (r *Recorder) RecordBattle(outcome battle.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.battles++
	r.byOutcome[string(outcome)]++
}

func (r *Recorder) RecordEncounter() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encounters++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		BattleTotal:     r.battles,
		Encounters:      r.encounters,
		SaveConflict:    r.conflict,
		SaveFailure:     r.failure,
		ByBattleOutcome: make(map[string]uint64, len(r.byOutcome)),
	}
	for k, v := range r.byOutcome {
		out.ByBattleOutcome[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

var _ ports.GameMetrics = (*Recorder)(nil)
