package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const slotBucket = "slots"

// BoltSlot はBoltDBを使用したSlotの実装です。
type BoltSlot struct {
	db *bbolt.DB
}

// OpenBoltSlot は指定されたパスのBoltDBを開きます。
func OpenBoltSlot(path string) (*BoltSlot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(slotBucket)); err != nil {
			return fmt.Errorf("create slot bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltSlot{db: db}, nil
}

// Get は指定されたスロットの内容を取得します。
func (s *BoltSlot) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		value := bucket.Get([]byte(name))
		if value == nil {
			return ErrSlotEmpty
		}
		// トランザクション外では値が無効になるためコピーする
		payload = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Put は指定されたスロットの内容を置き換えます。
func (s *BoltSlot) Put(ctx context.Context, name string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		return bucket.Put([]byte(name), payload)
	})
	if errors.Is(err, bbolt.ErrValueTooLarge) {
		return fmt.Errorf("%w: %v", ErrBackendFull, err)
	}
	return err
}

// Close はBoltDBを閉じます。
func (s *BoltSlot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
