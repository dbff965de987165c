package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wildbound/internal/adapter/repo/gorm/model"
	"wildbound/internal/app/ports"
	"wildbound/internal/domain/game"

	"gorm.io/gorm"
)

type SaveRepo struct {
	db *gorm.DB
}

func NewSaveRepo(db *gorm.DB) SaveRepo {
	return SaveRepo{db: db}
}

func (r SaveRepo) Get(ctx context.Context, slot string) (ports.SaveSlot, error) {
	var m model.SaveSlot
	if err := getDBFromCtx(ctx, r.db).Where("slot = ?", slot).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SaveSlot{}, ports.ErrNotFound
		}
		return ports.SaveSlot{}, err
	}
	var data game.SaveData
	if err := json.Unmarshal(m.Data, &data); err != nil {
		return ports.SaveSlot{}, fmt.Errorf("decode save %s: %w", slot, err)
	}
	return ports.SaveSlot{Slot: m.Slot, Version: m.Version, Data: data, UpdatedAt: m.UpdatedAt}, nil
}

func (r SaveRepo) SaveWithVersion(ctx context.Context, slot ports.SaveSlot, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	data, err := json.Marshal(slot.Data)
	if err != nil {
		return fmt.Errorf("encode save %s: %w", slot.Slot, err)
	}
	if expectedVersion == 0 {
		m := model.SaveSlot{
			Slot:        slot.Slot,
			Version:     slot.Version,
			PlayerName:  slot.Data.Player.Name,
			PlayerLevel: int32(slot.Data.Player.Level),
			Data:        data,
			UpdatedAt:   slot.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"version":      slot.Version,
		"player_name":  slot.Data.Player.Name,
		"player_level": int32(slot.Data.Player.Level),
		"data":         data,
		"updated_at":   slot.UpdatedAt,
	}
	res := db.Model(&model.SaveSlot{}).
		Where("slot = ? AND version = ?", slot.Slot, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r SaveRepo) Delete(ctx context.Context, slot string) error {
	db := getDBFromCtx(ctx, r.db)
	res := db.Where("slot = ?", slot).Delete(&model.SaveSlot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return db.Where("slot = ?", slot).Delete(&model.BattleRecord{}).Error
}

func (r SaveRepo) List(ctx context.Context) ([]ports.SaveSlotSummary, error) {
	var rows []model.SaveSlot
	err := getDBFromCtx(ctx, r.db).
		Select("slot", "version", "player_name", "player_level", "updated_at").
		Order("slot ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.SaveSlotSummary, 0, len(rows))
	for _, m := range rows {
		out = append(out, ports.SaveSlotSummary{
			Slot:        m.Slot,
			Version:     m.Version,
			PlayerName:  m.PlayerName,
			PlayerLevel: int(m.PlayerLevel),
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return out, nil
}
