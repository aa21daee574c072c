// Package config はアプリケーション設定を管理します。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/stsysd/reelbook/store"
)

// 環境変数名
const (
	EnvDataDir = "REELBOOK_DATA_DIR"
	EnvConfig  = "REELBOOK_CONFIG"
)

// ConfigFileName は設定ファイルの既定のファイル名です。
const ConfigFileName = "reelbook.toml"

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// データディレクトリのパス
	DataDir string `toml:"data_dir" env:"REELBOOK_DATA_DIR"`

	// 保存先バックエンド (sqlite, bolt, memory)
	Backend string `toml:"backend" env:"REELBOOK_BACKEND"`

	// プロジェクト一覧を保存するスロット名
	Slot string `toml:"slot" env:"REELBOOK_SLOT"`

	// 保存データの上限サイズ（バイト）
	QuotaBytes int `toml:"quota_bytes" env:"REELBOOK_QUOTA_BYTES"`

	// HTTPサーバーのポート
	Port string `toml:"port" env:"REELBOOK_SERVER_PORT"`

	// API認証キー
	APIKey string `toml:"api_key" env:"REELBOOK_API_KEY"`

	// ログレベル
	LogLevel string `toml:"log_level" env:"REELBOOK_LOG_LEVEL"`

	// ラベル表示用のロケール (BCP 47)
	Locale string `toml:"locale" env:"REELBOOK_LOCALE"`

	// 読み込んだ設定ファイルのパス（存在しない場合は空）
	File string `toml:"-"`
}

// Default は既定値で初期化された設定を返します。
func Default() *Config {
	return &Config{
		DataDir:    filepath.Join(".", "data"),
		Backend:    store.BackendSQLite,
		Slot:       store.DefaultSlotName,
		QuotaBytes: store.DefaultQuotaBytes,
		Port:       "8080",
		LogLevel:   "info",
		Locale:     "en",
	}
}

// Load は既定値、設定ファイル、環境変数の順に設定を読み込みます。
// environ が nil の場合はプロセスの環境変数を使用します。
func Load(environ map[string]string) (*Config, error) {
	lookup := func(key string) (string, bool) {
		if environ == nil {
			return os.LookupEnv(key)
		}
		v, ok := environ[key]
		return v, ok
	}

	cfg := Default()

	// 設定ファイルの場所はデータディレクトリに依存する
	path, _ := lookup(EnvConfig)
	explicit := path != ""
	if !explicit {
		dataDir := cfg.DataDir
		if v, ok := lookup(EnvDataDir); ok && v != "" {
			dataDir = v
		}
		path = filepath.Join(dataDir, ConfigFileName)
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		cfg.File = path
	} else if explicit {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("failed to access config file %s: %w", path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate は設定値の妥当性を検証します。
func (c *Config) Validate() error {
	switch c.Backend {
	case store.BackendSQLite, store.BackendBolt, store.BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, bolt or memory)", c.Backend)
	}
	if c.Backend != store.BackendMemory && strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data directory is required")
	}
	if strings.TrimSpace(c.Slot) == "" {
		return errors.New("slot name is required")
	}
	if c.QuotaBytes <= 0 {
		return fmt.Errorf("quota must be positive, got %d", c.QuotaBytes)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// RequireAPIKey はHTTPサーバーの起動に必要なAPIキーが設定されているかを確認します。
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return errors.New("REELBOOK_API_KEY is not set")
	}
	return nil
}

// Language はラベル表示に使用する言語タグを返します。
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
