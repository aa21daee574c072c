// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stsysd/reelbook/cli"
	"github.com/stsysd/reelbook/config"
	"github.com/stsysd/reelbook/present"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 設定の読み込み（既定値 < 設定ファイル < 環境変数、フラグは cli 側で適用）
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitCommandError
	}

	// ロガーの初期化
	logger := present.NewLogger(os.Stderr, cfg.LogLevel, false)
	if cfg.File != "" {
		logger.Debug("loaded config file", "path", cfg.File)
	}

	// シグナルでサーバーを停止できるようにする
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(cfg, logger)
	if err := cmd.ExecuteContext(ctx); err != nil {
		// ExitFailure はコマンド側で出力済み
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
