package runn

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/k1LoW/runn"
	"github.com/stsysd/reelbook/api"
	"github.com/stsysd/reelbook/config"
	"github.com/stsysd/reelbook/store"
	"github.com/stsysd/reelbook/tracker"
)

func TestRouter(t *testing.T) {
	// 設定の読み込み
	cfg, err := config.Load(map[string]string{
		"REELBOOK_API_KEY":  "test-token",
		"REELBOOK_DATA_DIR": t.TempDir(),
		"REELBOOK_BACKEND":  store.BackendSQLite,
	})
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// SQLiteスロットの初期化
	slot, err := store.OpenSlot(cfg.Backend, cfg.DataDir)
	if err != nil {
		t.Fatalf("Failed to initialize SQLite slot: %v", err)
	}
	defer slot.Close()

	adapter, err := store.NewAdapter(slot, cfg.Slot, cfg.QuotaBytes)
	if err != nil {
		t.Fatalf("Failed to initialize adapter: %v", err)
	}

	ctx := context.Background()
	projects := tracker.Open(ctx, adapter)
	if err := projects.LoadError(); err != nil {
		t.Fatalf("Failed to load projects: %v", err)
	}

	// サーバーインスタンスの作成
	server := api.NewServer(projects, cfg, log.New(io.Discard))

	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		ts.Close()
	})
	opts := []runn.Option{
		runn.T(t),
		runn.Runner("req", ts.URL),
		runn.Var("api_key", "test-token"),
	}
	o, err := runn.Load("./books/*.yml", opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.RunN(ctx); err != nil {
		t.Fatal(err)
	}
}
