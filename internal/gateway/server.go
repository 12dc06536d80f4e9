package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/devchat/internal/agent"
	"github.com/nao1215/devchat/internal/config"
	"github.com/nao1215/devchat/pkg/apierror"
	"github.com/nao1215/devchat/pkg/middleware"
)

const (
	// shutdownTimeout はグレースフルシャットダウンの最大待機時間。
	shutdownTimeout = 5 * time.Second
	// readHeaderTimeout はリクエストヘッダー読み込みの最大時間。
	readHeaderTimeout = 10 * time.Second
	// defaultAgentTimeout はAgentTimeout未指定時の回答生成タイムアウト。
	defaultAgentTimeout = 60 * time.Second
	// defaultMaxBodyBytes はMaxBodyBytes未指定時のリクエストボディ上限。
	defaultMaxBodyBytes = 1 << 20
)

// Options はゲートウェイの設定。起動後は変更しない。
type Options struct {
	// Addr はHTTPサーバーのリッスンアドレス。
	Addr string
	// AuthToken はBearer認証で受け付ける唯一のトークン。
	AuthToken string
	// ServiceName はヘルスチェックで返すサービス名。
	ServiceName string
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// AgentTimeout は回答生成サービス呼び出しのタイムアウト。
	AgentTimeout time.Duration
	// MaxBodyBytes はリクエストボディの最大バイト数。
	MaxBodyBytes int64
}

// OptionsFromConfig はサービス設定からゲートウェイの設定を生成する。
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Addr:           cfg.Addr(),
		AuthToken:      cfg.AuthToken,
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		AgentTimeout:   cfg.Agent.Timeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}
}

// Server はチャットボットAPIのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// addr はサーバーのリッスンアドレス。
	addr string
	// authToken はBearer認証の期待値。
	authToken string
	// serviceName はヘルスチェックで返すサービス名。
	serviceName string
	// agentTimeout は回答生成サービス呼び出しのタイムアウト。
	agentTimeout time.Duration
	// maxBodyBytes はリクエストボディの最大バイト数。
	maxBodyBytes int64
	// agent は回答生成サービス。
	agent agent.Agent
	// logger は構造化ロガー。
	logger *slog.Logger
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
}

// NewServer は新しいゲートウェイサーバーを生成する。
func NewServer(opts Options, a agent.Agent, logger *slog.Logger) *Server {
	if opts.AgentTimeout <= 0 {
		opts.AgentTimeout = defaultAgentTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.ErrorResponder(logger))

	s := &Server{
		router:       router,
		addr:         opts.Addr,
		authToken:    opts.AuthToken,
		serviceName:  opts.ServiceName,
		agentTimeout: opts.AgentTimeout,
		maxBodyBytes: opts.MaxBodyBytes,
		agent:        a,
		logger:       logger,
		now:          time.Now,
	}
	s.setupRoutes()

	return s
}

// Handler はルーティング済みのHTTPハンドラーを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで処理を続ける。
// キャンセル後は処理中のリクエストの完了を待ってから終了する。
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	return s.serve(ctx, ln)
}

// serve は指定されたリスナーでHTTPサーバーを動かす。
func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーが停止: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gateway", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("シャットダウンに失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apierror.NotFound("Not Found"))
	})
	s.router.NoMethod(func(c *gin.Context) {
		_ = c.Error(apierror.MethodNotAllowed("Method Not Allowed"))
	})

	// ヘルスチェック（認証不要）
	s.router.GET("/", s.handleHealth())

	// 認証必須のチャットエンドポイント
	chat := s.router.Group("/chat")
	chat.Use(middleware.BearerAuth(s.authToken))
	{
		chat.POST("/messages", s.handleSubmitMessage())
		// デバッグ用。セッションストアは無く、応答はその場で生成する
		chat.GET("/sessions/:id", s.handleSessionInfo())
		chat.GET("/health", s.handleChatHealth())
	}
}

// timestamp は現在時刻をRFC3339形式で返す。
func (s *Server) timestamp() string {
	return s.now().Format(time.RFC3339)
}
