package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wildbound/internal/adapter/repo/gorm/model"
	"wildbound/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorldChunkRepo struct {
	db *gorm.DB
}

func NewWorldChunkRepo(db *gorm.DB) WorldChunkRepo {
	return WorldChunkRepo{db: db}
}

func (r WorldChunkRepo) GetChunk(ctx context.Context, fingerprint uint64, coord world.ChunkCoord) (world.Chunk, bool, error) {
	var row model.WorldChunk
	err := getDBFromCtx(ctx, r.db).
		Where(map[string]any{
			"fingerprint": int64(fingerprint),
			"chunk_x":     int32(coord.X),
			"chunk_y":     int32(coord.Y),
		}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.Chunk{}, false, nil
		}
		return world.Chunk{}, false, err
	}
	tiles, err := decodeChunkTiles(row.Tiles)
	if err != nil {
		return world.Chunk{}, false, err
	}
	return world.Chunk{Coord: coord, Tiles: tiles}, true, nil
}

func (r WorldChunkRepo) PutChunk(ctx context.Context, fingerprint uint64, chunk world.Chunk) error {
	b, err := json.Marshal(chunk.Tiles)
	if err != nil {
		return err
	}
	row := model.WorldChunk{
		Fingerprint: int64(fingerprint),
		ChunkX:      int32(chunk.Coord.X),
		ChunkY:      int32(chunk.Coord.Y),
		Tiles:       b,
		UpdatedAt:   time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}, {Name: "chunk_x"}, {Name: "chunk_y"}},
		DoUpdates: clause.AssignmentColumns([]string{"tiles", "updated_at"}),
	}).Create(&row).Error
}

func decodeChunkTiles(data []byte) ([]world.Tile, error) {
	out := []world.Tile{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
