package boltrepo

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketSaves   = []byte("saves")
	bucketBattles = []byte("battles")
	bucketChunks  = []byte("chunks")
)

func Open(path string) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSaves, bucketBattles, bucketChunks} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type txKeyType struct{}

var txKey = txKeyType{}

func txFromCtx(ctx context.Context) *bolt.Tx {
	tx, _ := ctx.Value(txKey).(*bolt.Tx)
	return tx
}

func view(ctx context.Context, db *bolt.DB, fn func(tx *bolt.Tx) error) error {
	if tx := txFromCtx(ctx); tx != nil {
		return fn(tx)
	}
	return db.View(fn)
}

func update(ctx context.Context, db *bolt.DB, fn func(tx *bolt.Tx) error) error {
	if tx := txFromCtx(ctx); tx != nil {
		return fn(tx)
	}
	return db.Update(fn)
}

type TxManager struct {
	db *bolt.DB
}

func NewTxManager(db *bolt.DB) TxManager {
	return TxManager{db: db}
}

// RunInTx joins an enclosing transaction when ctx already carries one.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}
	return t.db.Update(func(tx *bolt.Tx) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}
