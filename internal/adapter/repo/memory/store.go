package memory

import (
	"context"
	"sync"

	"wildbound/internal/app/ports"
	"wildbound/internal/domain/world"
)

type Store struct {
	mu      sync.RWMutex
	saves   map[string]ports.SaveSlot
	battles map[string][]ports.BattleRecord
	chunks  map[chunkKey]world.Chunk
}

type chunkKey struct {
	fingerprint uint64
	coord       world.ChunkCoord
}

func NewStore() *Store {
	return &Store{
		saves:   make(map[string]ports.SaveSlot),
		battles: make(map[string][]ports.BattleRecord),
		chunks:  make(map[chunkKey]world.Chunk),
	}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock takes the write lock unless ctx already runs inside RunInTx.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) SeedSave(slot ports.SaveSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[slot.Slot] = slot
}
