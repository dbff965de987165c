package boltrepo

import (
	"context"
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"wildbound/internal/domain/world"
)

type ChunkRepo struct {
	db *bolt.DB
}

func NewChunkRepo(db *bolt.DB) ChunkRepo {
	return ChunkRepo{db: db}
}

func chunkKey(fingerprint uint64, coord world.ChunkCoord) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[0:8], fingerprint)
	binary.BigEndian.PutUint32(key[8:12], uint32(int32(coord.X)))
	binary.BigEndian.PutUint32(key[12:16], uint32(int32(coord.Y)))
	return key
}

func (r ChunkRepo) GetChunk(ctx context.Context, fingerprint uint64, coord world.ChunkCoord) (world.Chunk, bool, error) {
	var (
		out   world.Chunk
		found bool
	)
	err := view(ctx, r.db, func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketChunks).Get(chunkKey(fingerprint, coord))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return world.Chunk{}, false, err
	}
	return out, found, nil
}

func (r ChunkRepo) PutChunk(ctx context.Context, fingerprint uint64, chunk world.Chunk) error {
	raw, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	return update(ctx, r.db, func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChunks).Put(chunkKey(fingerprint, chunk.Coord), raw)
	})
}
