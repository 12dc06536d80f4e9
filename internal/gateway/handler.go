package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/devchat/pkg/apierror"
)

// chatFailureMessage は回答生成に失敗した場合にクライアントへ返すメッセージ。
const chatFailureMessage = "Chat service request failed"

// handleHealth はサービスの稼働状態を返すハンドラを返す。
// 回答生成サービスの状態は確認しない。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: s.timestamp(),
			Service:   s.serviceName,
		})
	}
}

// handleSubmitMessage はメッセージを回答生成サービスに転送するハンドラを返す。
func (s *Server) handleSubmitMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				_ = c.Error(apierror.PayloadTooLarge("Request body too large"))
				return
			}
			_ = c.Error(apierror.BadRequest("Invalid request body"))
			return
		}

		resp, err := s.submitMessage(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// submitMessage はリクエストを検証し、回答生成サービスの結果から応答を組み立てる。
// 検証に失敗した場合は回答生成サービスを呼び出さない。
func (s *Server) submitMessage(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return ChatResponse{}, apierror.BadRequest("Message cannot be empty")
	}
	if strings.TrimSpace(req.Session) == "" {
		return ChatResponse{}, apierror.BadRequest("Session cannot be empty")
	}

	start := time.Now()
	text, err := s.generate(ctx, req.Message)
	if err != nil {
		return ChatResponse{}, apierror.Internal(chatFailureMessage, fmt.Errorf("session=%s: %w", req.Session, err))
	}

	s.logger.Debug("chat message answered",
		"session", req.Session,
		"latency", time.Since(start),
		"response_length", len(text),
	)

	return ChatResponse{
		Session:   req.Session,
		Response:  text,
		Timestamp: s.timestamp(),
		Status:    StatusSuccess,
	}, nil
}

// generate はタイムアウト付きで回答生成サービスを呼び出し、結果を文字列に正規化する。
// 回答生成サービス内のパニックもエラーとして扱う。
func (s *Server) generate(ctx context.Context, message string) (text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.agentTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("回答生成サービスでパニックが発生: %v", r)
		}
	}()

	result, err := s.agent.Run(ctx, message)
	if err != nil {
		return "", fmt.Errorf("回答生成に失敗: %w", err)
	}
	return result.Text(), nil
}

// handleSessionInfo はセッション情報を返すハンドラを返す。
// セッションストアは存在しないため、値は要求されたIDと現在時刻から生成したものであり、
// 実際のセッション状態を表さない。
func (s *Server) handleSessionInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, SessionInfoResponse{
			SessionID: c.Param("id"),
			CreatedAt: s.timestamp(),
			Status:    "active",
		})
	}
}

// handleChatHealth はチャット機能の稼働状態を返すハンドラを返す。
// 回答生成サービスへの疎通確認は行わない。
func (s *Server) handleChatHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ChatHealthResponse{
			Status:      "healthy",
			Service:     "chat",
			Timestamp:   s.timestamp(),
			AgentStatus: "ready",
		})
	}
}
