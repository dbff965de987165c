package model

import (
	"time"
)

const TableNameBattleRecord = "battle_records"

// BattleRecord mapped from table <battle_records>
type BattleRecord struct {
	ID               string    `gorm:"column:id;primaryKey" json:"id"`
	Slot             string    `gorm:"column:slot;not null" json:"slot"`
	Outcome          string    `gorm:"column:outcome;not null" json:"outcome"`
	PlayerCreature   string    `gorm:"column:player_creature;not null" json:"player_creature"`
	Opponent         string    `gorm:"column:opponent;not null" json:"opponent"`
	OpponentLevel    int32     `gorm:"column:opponent_level;not null" json:"opponent_level"`
	IsBoss           bool      `gorm:"column:is_boss;not null" json:"is_boss"`
	BossID           int32     `gorm:"column:boss_id;not null" json:"boss_id"`
	ExperienceGained int32     `gorm:"column:experience_gained;not null" json:"experience_gained"`
	Turns            int32     `gorm:"column:turns;not null" json:"turns"`
	Log              []byte    `gorm:"column:log;not null" json:"log"`
	StartedAt        time.Time `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt          time.Time `gorm:"column:ended_at;not null" json:"ended_at"`
}

// TableName BattleRecord's table name
func (*BattleRecord) TableName() string {
	return TableNameBattleRecord
}
