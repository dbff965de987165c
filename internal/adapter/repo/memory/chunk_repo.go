package memory

import (
	"context"

	"wildbound/internal/domain/world"
)

type ChunkRepo struct {
	store *Store
}

func NewChunkRepo(store *Store) ChunkRepo {
	return ChunkRepo{store: store}
}

func (r ChunkRepo) GetChunk(ctx context.Context, fingerprint uint64, coord world.ChunkCoord) (world.Chunk, bool, error) {
	defer r.store.rlock(ctx)()
	c, ok := r.store.chunks[chunkKey{fingerprint: fingerprint, coord: coord}]
	return c, ok, nil
}

func (r ChunkRepo) PutChunk(ctx context.Context, fingerprint uint64, chunk world.Chunk) error {
	defer r.store.lock(ctx)()
	r.store.chunks[chunkKey{fingerprint: fingerprint, coord: chunk.Coord}] = chunk
	return nil
}
