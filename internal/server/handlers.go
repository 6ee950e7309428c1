package server

import (
	"net/http"
	"time"

	"workshopapp/internal/page"

	"github.com/gin-gonic/gin"
)

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo はリッスンしているホストとポート
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// StatusResponse はシステム状態のレスポンス
type StatusResponse struct {
	Status        string     `json:"status"`
	Server        ServerInfo `json:"server"`
	PodName       string     `json:"pod_name"`
	Hostname      string     `json:"hostname"`
	Version       string     `json:"version"`
	RequestCount  uint64     `json:"request_count"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	Timestamp     time.Time  `json:"timestamp"`
}

// handlePage はワークショップのページを返す
// どのメソッド・パスでも 200 とHTMLを返し、エラーは呼び出し側に返さない
// パスはデコードせず、リクエストされたままの形で表示する
func (s *Server) handlePage(c *gin.Context) {
	count := s.counter.Next()

	body := s.renderer.Render(page.Data{
		Subtitle:     s.config.Page.Subtitle,
		Version:      page.Version,
		Path:         c.Request.URL.EscapedPath(),
		Hostname:     s.hostname(),
		RequestCount: count,
	})
	s.metrics.PageRenders.Inc()

	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// handleHealth はヘルスチェックエンドポイント
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleStatus はステータス確認エンドポイント
// ページのリクエスト数は増やさない
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status: "running",
		Server: ServerInfo{
			Host: s.config.Server.Host,
			Port: s.config.Server.Port,
		},
		PodName:       s.config.Page.PodName,
		Hostname:      s.hostname(),
		Version:       page.Version,
		RequestCount:  s.counter.Value(),
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		Timestamp:     time.Now(),
	})
}
