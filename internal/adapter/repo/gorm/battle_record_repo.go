package gormrepo

import (
	"context"
	"encoding/json"

	"wildbound/internal/adapter/repo/gorm/model"
	"wildbound/internal/app/ports"

	"gorm.io/gorm"
)

type BattleRecordRepo struct {
	db *gorm.DB
}

func NewBattleRecordRepo(db *gorm.DB) BattleRecordRepo {
	return BattleRecordRepo{db: db}
}

func (r BattleRecordRepo) Append(ctx context.Context, rec ports.BattleRecord) error {
	logJSON, err := json.Marshal(rec.Log)
	if err != nil {
		return err
	}
	m := model.BattleRecord{
		ID:               rec.ID,
		Slot:             rec.Slot,
		Outcome:          rec.Outcome,
		PlayerCreature:   rec.PlayerCreature,
		Opponent:         rec.Opponent,
		OpponentLevel:    int32(rec.OpponentLevel),
		IsBoss:           rec.IsBoss,
		BossID:           int32(rec.BossID),
		ExperienceGained: int32(rec.ExperienceGained),
		Turns:            int32(rec.Turns),
		Log:              logJSON,
		StartedAt:        rec.StartedAt,
		EndedAt:          rec.EndedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

func (r BattleRecordRepo) ListBySlot(ctx context.Context, slot string, limit int) ([]ports.BattleRecord, error) {
	q := getDBFromCtx(ctx, r.db).
		Where("slot = ?", slot).
		Order("ended_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []model.BattleRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.BattleRecord, 0, len(rows))
	for _, m := range rows {
		var lines []string
		if len(m.Log) > 0 {
			if err := json.Unmarshal(m.Log, &lines); err != nil {
				return nil, err
			}
		}
		out = append(out, ports.BattleRecord{
			ID:               m.ID,
			Slot:             m.Slot,
			Outcome:          m.Outcome,
			PlayerCreature:   m.PlayerCreature,
			Opponent:         m.Opponent,
			OpponentLevel:    int(m.OpponentLevel),
			IsBoss:           m.IsBoss,
			BossID:           int(m.BossID),
			ExperienceGained: int(m.ExperienceGained),
			Turns:            int(m.Turns),
			Log:              lines,
			StartedAt:        m.StartedAt,
			EndedAt:          m.EndedAt,
		})
	}
	return out, nil
}
