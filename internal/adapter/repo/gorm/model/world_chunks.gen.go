package model

import (
	"time"
)

const TableNameWorldChunk = "world_chunks"

// WorldChunk mapped from table <world_chunks>
type WorldChunk struct {
	Fingerprint int64     `gorm:"column:fingerprint;primaryKey" json:"fingerprint"`
	ChunkX      int32     `gorm:"column:chunk_x;primaryKey" json:"chunk_x"`
	ChunkY      int32     `gorm:"column:chunk_y;primaryKey" json:"chunk_y"`
	Tiles       []byte    `gorm:"column:tiles;not null" json:"tiles"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName WorldChunk's table name
func (*WorldChunk) TableName() string {
	return TableNameWorldChunk
}
