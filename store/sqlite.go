package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

// MigrateFunc はデータベースのスキーマを準備する関数です。
type MigrateFunc func(conn *sql.DB) error

// SQLiteSlot はSQLiteを使用したSlotの実装です。
type SQLiteSlot struct {
	conn *sql.DB
}

// NewSQLiteSlot は新しいSQLiteSlotを作成します。
func NewSQLiteSlot(dataDir string, migrate MigrateFunc) (*SQLiteSlot, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, "reelbook.db")

	// SQLiteデータベースへの接続（WALモード、ロック待ち5秒）
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// 接続確認
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// マイグレーションの実行
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteSlot{conn: conn}, nil
}

// Get は指定されたスロットの内容を取得します。
func (s *SQLiteSlot) Get(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.conn.QueryRowContext(ctx, `SELECT payload FROM slots WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}
	return payload, nil
}

// Put は指定されたスロットの内容を置き換えます。
func (s *SQLiteSlot) Put(ctx context.Context, name string, payload []byte) error {
	// 日時をRFC3339形式に統一して保存
	updatedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO slots (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, name, payload, updatedAt)
	if err != nil {
		// ディスクフルはクォータ超過として扱う
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrFull {
			return fmt.Errorf("%w: %v", ErrBackendFull, err)
		}
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteSlot) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
