package main

import (
	"context"
	"log"
	"os"

	"workshopapp/internal/config"
	"workshopapp/internal/logging"
	"workshopapp/internal/server"
	"workshopapp/internal/telemetry"

	"go.uber.org/zap"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ロガーを作成
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// トレースを設定
	shutdownTracing, err := telemetry.Setup(cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName, os.Stdout)
	if err != nil {
		logger.Fatal("トレースの設定に失敗しました", zap.Error(err))
	}

	// サーバーを作成
	srv := server.New(cfg, logger)

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動
	if err := srv.Start(ctx); err != nil {
		_ = shutdownTracing(context.Background())
		logger.Fatal("サーバーの起動に失敗しました", zap.Error(err))
	}

	if err := shutdownTracing(context.Background()); err != nil {
		logger.Warn("トレースの停止に失敗しました", zap.Error(err))
	}
}
