package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/devchat/internal/config"
	"github.com/nao1215/devchat/internal/persona"
)

// New は設定に従って回答生成バックエンドを構築する。
// 再試行が有効な場合はWithRetryでラップしたAgentを返す。
func New(ctx context.Context, cfg config.AgentConfig, p persona.Persona, logger *slog.Logger) (Agent, error) {
	var (
		backend Agent
		err     error
	)

	switch cfg.Provider {
	case config.ProviderOllama:
		backend, err = NewOllama(OllamaConfig{
			BaseURL:      cfg.OllamaBaseURL,
			Model:        cfg.OllamaModel,
			APIKey:       cfg.OllamaAPIKey,
			SystemPrompt: p.SystemPrompt(),
		})
	case config.ProviderGemini:
		backend, err = NewGemini(ctx, GeminiConfig{
			APIKey:       cfg.GeminiAPIKey,
			Model:        cfg.GeminiModel,
			SystemPrompt: p.SystemPrompt(),
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("回答生成バックエンドの初期化に失敗: %w", err)
	}

	return WithRetry(backend, RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
	}, logger), nil
}
