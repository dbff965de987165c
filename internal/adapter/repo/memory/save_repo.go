package memory

import (
	"context"
	"sort"

	"wildbound/internal/app/ports"
)

type SaveRepo struct {
	store *Store
}

func NewSaveRepo(store *Store) SaveRepo {
	return SaveRepo{store: store}
}

func (r SaveRepo) Get(ctx context.Context, slot string) (ports.SaveSlot, error) {
	defer r.store.rlock(ctx)()
	s, ok := r.store.saves[slot]
	if !ok {
		return ports.SaveSlot{}, ports.ErrNotFound
	}
	return s, nil
}

func (r SaveRepo) SaveWithVersion(ctx context.Context, slot ports.SaveSlot, expectedVersion int64) error {
	defer r.store.lock(ctx)()
	current, ok := r.store.saves[slot.Slot]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.saves[slot.Slot] = slot
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.saves[slot.Slot] = slot
	return nil
}

func (r SaveRepo) Delete(ctx context.Context, slot string) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.saves[slot]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.saves, slot)
	delete(r.store.battles, slot)
	return nil
}

func (r SaveRepo) List(ctx context.Context) ([]ports.SaveSlotSummary, error) {
	defer r.store.rlock(ctx)()
	out := make([]ports.SaveSlotSummary, 0, len(r.store.saves))
	for _, s := range r.store.saves {
		out = append(out, ports.SaveSlotSummary{
			Slot:        s.Slot,
			Version:     s.Version,
			PlayerName:  s.Data.Player.Name,
			PlayerLevel: s.Data.Player.Level,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}
