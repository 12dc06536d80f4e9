package agent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// RetryPolicy は一時的な失敗に対する再試行の方針。
type RetryPolicy struct {
	// MaxRetries は最初の呼び出し後に行う再試行の最大回数。
	MaxRetries int
	// Backoff は最初の再試行までの待機時間。再試行ごとに倍になる。
	Backoff time.Duration
}

// retrying は失敗時に指数バックオフで再試行するAgent。
type retrying struct {
	next   Agent
	policy RetryPolicy
	logger *slog.Logger
}

// WithRetry はAgentを再試行付きでラップする。MaxRetriesが0以下の場合はそのまま返す。
// コンテキストのキャンセルやタイムアウト、リクエスト内容に起因する失敗は再試行しない。
func WithRetry(a Agent, policy RetryPolicy, logger *slog.Logger) Agent {
	if policy.MaxRetries <= 0 {
		return a
	}
	return &retrying{next: a, policy: policy, logger: logger}
}

// Run はAgentインターフェースを実装する。
func (r *retrying) Run(ctx context.Context, prompt string) (Result, error) {
	backoff := r.policy.Backoff

	for attempt := 0; ; attempt++ {
		result, err := r.next.Run(ctx, prompt)
		if err == nil {
			return result, nil
		}
		if attempt >= r.policy.MaxRetries || !retryable(ctx, err) {
			return Result{}, err
		}

		r.logger.Warn("agent call failed, retrying",
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{}, errors.Join(err, ctx.Err())
		case <-timer.C:
		}
		backoff *= 2
	}
}

// retryable は再試行してよい失敗かどうかを判定する。
// 408と429を除く4xx応答や空の応答は、同じリクエストを繰り返しても成功しない。
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrEmptyChoices) || errors.Is(err, ErrEmptyCandidates) {
		return false
	}
	if code, ok := statusCode(err); ok {
		return transientStatus(code)
	}
	return true
}

// statusCode はバックエンドのAPIエラーからHTTPステータスコードを取り出す。
func statusCode(err error) (int, bool) {
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode, true
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code, true
	}
	var genaiErrPtr *genai.APIError
	if errors.As(err, &genaiErrPtr) && genaiErrPtr != nil {
		return genaiErrPtr.Code, true
	}
	return 0, false
}

// transientStatus は再試行で回復し得るステータスコードかどうかを返す。
func transientStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= 400 && code < 500:
		return false
	default:
		return true
	}
}
