package ports

import (
	"context"
	"errors"
	"time"

	"wildbound/internal/domain/game"
	"wildbound/internal/domain/world"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a stale version or a slot that already exists.
	ErrConflict = errors.New("conflict")
)

// TxManager runs fn in one storage transaction. Repositories called with the
// ctx passed to fn join it.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SaveSlot is one persisted game. Version starts at 1 and increases by one
// on every successful save.
type SaveSlot struct {
	Slot      string
	Version   int64
	Data      game.SaveData
	UpdatedAt time.Time
}

type SaveSlotSummary struct {
	Slot        string
	Version     int64
	PlayerName  string
	PlayerLevel int
	UpdatedAt   time.Time
}

type SaveRepository interface {
	Get(ctx context.Context, slot string) (SaveSlot, error)
	// SaveWithVersion creates the slot when expectedVersion is 0 and
	// otherwise replaces it only if the stored version still matches.
	SaveWithVersion(ctx context.Context, slot SaveSlot, expectedVersion int64) error
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]SaveSlotSummary, error)
}

type BattleRecord struct {
	ID               string    `json:"id"`
	Slot             string    `json:"slot"`
	Outcome          string    `json:"outcome"`
	PlayerCreature   string    `json:"player_creature"`
	Opponent         string    `json:"opponent"`
	OpponentLevel    int       `json:"opponent_level"`
	IsBoss           bool      `json:"is_boss"`
	BossID           int       `json:"boss_id"`
	ExperienceGained int       `json:"experience_gained"`
	Turns            int       `json:"turns"`
	Log              []string  `json:"log"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
}

type BattleRecordRepository interface {
	Append(ctx context.Context, rec BattleRecord) error
	// ListBySlot returns the newest records first. A limit <= 0 means no
	// limit.
	ListBySlot(ctx context.Context, slot string, limit int) ([]BattleRecord, error)
}

// ChunkStore caches rendered world chunks keyed by world fingerprint.
type ChunkStore interface {
	GetChunk(ctx context.Context, fingerprint uint64, coord world.ChunkCoord) (world.Chunk, bool, error)
	PutChunk(ctx context.Context, fingerprint uint64, chunk world.Chunk) error
}
