package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"workshopapp/internal/config"
	"workshopapp/internal/counter"
	"workshopapp/internal/metrics"
	"workshopapp/internal/page"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// ErrAlreadyStarted は Start が2回以上呼ばれた場合のエラー
var ErrAlreadyStarted = errors.New("サーバーはすでに起動されています")

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	engine     *gin.Engine
	httpServer *http.Server

	counter  *counter.Counter
	renderer *page.Renderer
	metrics  *metrics.Metrics
	hostname func() string

	startedAt time.Time
	startOnce sync.Once
	listener  net.Listener
	ready     chan struct{}
}

// New は新しいServerインスタンスを作成する
// logger が nil の場合はログを出力しない
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	engine := gin.New()
	// 個別ルート以外のパスはすべてページとして扱うため、リダイレクトはしない
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		config:    cfg,
		logger:    logger,
		engine:    engine,
		counter:   counter.New(),
		renderer:  page.NewRenderer(),
		metrics:   metrics.New(),
		hostname:  page.Hostname,
		startedAt: time.Now(),
		ready:     make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware はginミドルウェアを設定する
func (s *Server) setupMiddleware() {
	s.engine.Use(requestID())
	s.engine.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	s.engine.Use(ginzap.RecoveryWithZap(s.logger, true))
	s.engine.Use(otelgin.Middleware(s.config.Telemetry.ServiceName))
	s.engine.Use(s.metrics.Middleware())
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// ヘルスチェックエンドポイント
	s.engine.GET("/healthz", s.handleHealth)

	// APIエンドポイント
	s.engine.GET("/api/status", s.handleStatus)

	// Prometheusメトリクス
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// それ以外のすべてのリクエストはページを返す
	s.engine.NoRoute(s.handlePage)
}

// Handler はサーバーのHTTPハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Ready はリスナーの作成が完了すると閉じられるチャンネルを返す
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr はリッスンしているアドレスを返す
// Start の前は nil を返す
func (s *Server) Addr() net.Addr {
	select {
	case <-s.ready:
		return s.listener.Addr()
	default:
		return nil
	}
}

// Start はサーバーを起動する
// コンテキストのキャンセル、SIGINT/SIGTERMの受信、サーバーエラーのいずれかまでブロックし、
// その後グレースフルシャットダウンを行う
// 同じServerで2回目以降の呼び出しは ErrAlreadyStarted を返す
func (s *Server) Start(ctx context.Context) error {
	first := false
	s.startOnce.Do(func() { first = true })
	if !first {
		return ErrAlreadyStarted
	}

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// リスナーの作成に失敗した場合はここでエラーを返す
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("リスナーの作成に失敗: %w", err)
	}
	s.listener = listener
	close(s.ready)

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.Info("HTTPサーバーを起動しています", zap.String("address", listener.Addr().String()))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		s.logger.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.logger.Info("シグナルを受信しました", zap.String("signal", sig.String()))
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// 新しい接続の受け付けを止め、処理中のリクエストが終わるまで待つ
// 待ち時間を過ぎた場合は警告を出して残りの接続を閉じる
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています...",
		zap.Duration("timeout", s.config.Server.ShutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
		}
		s.logger.Warn("処理中のリクエストが時間内に終わらなかったため接続を閉じます",
			zap.Duration("timeout", s.config.Server.ShutdownTimeout))
		if err := s.httpServer.Close(); err != nil {
			s.logger.Warn("接続のクローズに失敗しました", zap.Error(err))
		}
		return nil
	}

	s.logger.Info("サーバーが正常にシャットダウンされました",
		zap.Uint64("request_count", s.counter.Value()))
	return nil
}
