package boltrepo

import (
	"context"
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"wildbound/internal/app/ports"
)

// Records live in a per-slot sub-bucket keyed by an insertion sequence, so a
// reverse cursor walk yields newest first.
type BattleRecordRepo struct {
	db *bolt.DB
}

func NewBattleRecordRepo(db *bolt.DB) BattleRecordRepo {
	return BattleRecordRepo{db: db}
}

func (r BattleRecordRepo) Append(ctx context.Context, rec ports.BattleRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		b, err := tx.Bucket(bucketBattles).CreateBucketIfNotExists([]byte(rec.Slot))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, raw)
	})
}

func (r BattleRecordRepo) ListBySlot(ctx context.Context, slot string, limit int) ([]ports.BattleRecord, error) {
	out := []ports.BattleRecord{}
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBattles).Bucket([]byte(slot))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var rec ports.BattleRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, rec)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
