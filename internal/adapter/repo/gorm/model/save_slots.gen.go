package model

import (
	"time"
)

const TableNameSaveSlot = "save_slots"

// SaveSlot mapped from table <save_slots>
type SaveSlot struct {
	Slot        string    `gorm:"column:slot;primaryKey" json:"slot"`
	Version     int64     `gorm:"column:version;not null" json:"version"`
	PlayerName  string    `gorm:"column:player_name;not null" json:"player_name"`
	PlayerLevel int32     `gorm:"column:player_level;not null" json:"player_level"`
	Data        []byte    `gorm:"column:data;not null" json:"data"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName SaveSlot's table name
func (*SaveSlot) TableName() string {
	return TableNameSaveSlot
}
