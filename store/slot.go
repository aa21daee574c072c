// Package store は、データの永続化機能を提供します。
//
// 永続化は「名前付きスロット」に1つのペイロードを読み書きするキーバリュー型で、
// バックエンドとして SQLite、bbolt、メモリを選択できます。
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stsysd/reelbook/db"
)

var (
	// ErrSlotEmpty はスロットにまだ何も保存されていないことを示します。
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrBackendFull はバックエンドが容量不足を報告したことを示します。
	ErrBackendFull = errors.New("backend is full")
)

// Slot は名前付きスロットの読み書きを行うインターフェースです。
type Slot interface {
	// Get はスロットの内容を取得します。未保存の場合は ErrSlotEmpty を返します。
	Get(ctx context.Context, name string) ([]byte, error)
	// Put はスロットの内容を置き換えます。
	Put(ctx context.Context, name string, payload []byte) error
	// Close はバックエンドの接続を閉じます。
	Close() error
}

// バックエンド名
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// OpenSlot は設定されたバックエンドのスロットを開きます。
func OpenSlot(backend, dataDir string) (Slot, error) {
	switch backend {
	case BackendSQLite:
		return NewSQLiteSlot(dataDir, db.Migrate)
	case BackendBolt:
		// データディレクトリの作成（存在しない場合）
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return OpenBoltSlot(filepath.Join(dataDir, "reelbook.bolt"))
	case BackendMemory:
		return NewMemorySlot(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
