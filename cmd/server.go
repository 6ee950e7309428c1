// Package main はワークショップサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"workshopapp/internal/config"
	"workshopapp/internal/logging"
	"workshopapp/internal/server"
	"workshopapp/internal/telemetry"

	"go.uber.org/zap"
)

func main() {
	// コマンドラインオプション
	var (
		host     = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port     = flag.Int("port", 0, "サーバーのポート (デフォルト: 3000)")
		subtitle = flag.String("subtitle", "", "ページのサブタイトル")
		help     = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Kubernetes Workshop Example Application")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("環境変数:")
		fmt.Println("  PORT, HOST, SUBTITLE, NAME, SHUTDOWN_TIMEOUT, LOG_LEVEL, LOG_FORMAT, TRACING_ENABLED")
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *subtitle != "" {
		cfg.Page.Subtitle = *subtitle
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := telemetry.Setup(cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName, os.Stdout)
	if err != nil {
		logger.Fatal("トレースの設定に失敗しました", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	srv := server.New(cfg, logger)

	// サーバーを起動
	logger.Info("ワークショップサーバーを起動します", zap.String("address", cfg.ServerAddress()))
	if err := srv.Start(context.Background()); err != nil {
		logger.Fatal("サーバーの起動に失敗しました", zap.Error(err))
	}
}
