package boltrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"wildbound/internal/app/ports"
	"wildbound/internal/domain/game"
)

type saveRecord struct {
	Slot      string        `json:"slot"`
	Version   int64         `json:"version"`
	Data      game.SaveData `json:"data"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type SaveRepo struct {
	db *bolt.DB
}

func NewSaveRepo(db *bolt.DB) SaveRepo {
	return SaveRepo{db: db}
}

func (r SaveRepo) Get(ctx context.Context, slot string) (ports.SaveSlot, error) {
	var out ports.SaveSlot
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSaves).Get([]byte(slot))
		if raw == nil {
			return ports.ErrNotFound
		}
		rec, err := decodeSave(raw)
		if err != nil {
			return fmt.Errorf("decode save %s: %w", slot, err)
		}
		out = ports.SaveSlot{Slot: rec.Slot, Version: rec.Version, Data: rec.Data, UpdatedAt: rec.UpdatedAt}
		return nil
	})
	return out, err
}

func (r SaveRepo) SaveWithVersion(ctx context.Context, slot ports.SaveSlot, expectedVersion int64) error {
	raw, err := json.Marshal(saveRecord{Slot: slot.Slot, Version: slot.Version, Data: slot.Data, UpdatedAt: slot.UpdatedAt})
	if err != nil {
		return fmt.Errorf("encode save %s: %w", slot.Slot, err)
	}
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSaves)
		current := b.Get([]byte(slot.Slot))
		switch {
		case current == nil && expectedVersion != 0:
			return ports.ErrConflict
		case current != nil:
			rec, err := decodeSave(current)
			if err != nil {
				return err
			}
			if rec.Version != expectedVersion {
				return ports.ErrConflict
			}
		}
		return b.Put([]byte(slot.Slot), raw)
	})
}

func (r SaveRepo) Delete(ctx context.Context, slot string) error {
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSaves)
		if b.Get([]byte(slot)) == nil {
			return ports.ErrNotFound
		}
		if err := b.Delete([]byte(slot)); err != nil {
			return err
		}
		battles := tx.Bucket(bucketBattles)
		if battles.Bucket([]byte(slot)) != nil {
			return battles.DeleteBucket([]byte(slot))
		}
		return nil
	})
}

// List walks keys in byte order, which is slot order.
func (r SaveRepo) List(ctx context.Context) ([]ports.SaveSlotSummary, error) {
	out := []ports.SaveSlotSummary{}
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSaves).ForEach(func(_, v []byte) error {
			rec, err := decodeSave(v)
			if err != nil {
				return err
			}
			out = append(out, ports.SaveSlotSummary{
				Slot:        rec.Slot,
				Version:     rec.Version,
				PlayerName:  rec.Data.Player.Name,
				PlayerLevel: rec.Data.Player.Level,
				UpdatedAt:   rec.UpdatedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeSave(raw []byte) (saveRecord, error) {
	var rec saveRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return saveRecord{}, err
	}
	return rec, nil
}
