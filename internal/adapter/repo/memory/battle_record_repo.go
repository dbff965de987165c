package memory

import (
	"context"

	"wildbound/internal/app/ports"
)

type BattleRecordRepo struct {
	store *Store
}

func NewBattleRecordRepo(store *Store) BattleRecordRepo {
	return BattleRecordRepo{store: store}
}

func (r BattleRecordRepo) Append(ctx context.Context, rec ports.BattleRecord) error {
	defer r.store.lock(ctx)()
	rec.Log = append([]string(nil), rec.Log...)
	r.store.battles[rec.Slot] = append(r.store.battles[rec.Slot], rec)
	return nil
}

func (r BattleRecordRepo) ListBySlot(ctx context.Context, slot string, limit int) ([]ports.BattleRecord, error) {
	defer r.store.rlock(ctx)()
	recs := r.store.battles[slot]
	out := make([]ports.BattleRecord, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
