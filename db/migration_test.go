package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate(t *testing.T) {
	conn := openTestDB(t)

	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	// slots テーブルが作成されていることを確認
	var name string
	err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'slots'").Scan(&name)
	if err != nil {
		t.Fatalf("slots table not found: %v", err)
	}

	// 書き込みと読み出しができることを確認
	if _, err := conn.Exec("INSERT INTO slots (name, payload, updated_at) VALUES (?, ?, ?)", "projects", []byte("[]"), "2025-05-01T09:00:00Z"); err != nil {
		t.Fatalf("Failed to insert into slots: %v", err)
	}
	var payload []byte
	if err := conn.QueryRow("SELECT payload FROM slots WHERE name = ?", "projects").Scan(&payload); err != nil {
		t.Fatalf("Failed to read slot: %v", err)
	}
	if string(payload) != "[]" {
		t.Errorf("Expected payload '[]', got '%s'", payload)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn := openTestDB(t)

	for i := range 2 {
		if err := Migrate(conn); err != nil {
			t.Fatalf("Migrate run %d failed: %v", i+1, err)
		}
	}
}
