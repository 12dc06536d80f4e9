package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrEmptyChoices はモデルの応答に選択肢が含まれていない場合のエラー。
var ErrEmptyChoices = errors.New("model response contains no choices")

// OllamaConfig はOllamaバックエンドの設定。
type OllamaConfig struct {
	// BaseURL はOpenAI互換エンドポイント（例: http://127.0.0.1:11434/v1）。
	BaseURL string
	// Model はOllamaに登録されたモデル名。
	Model string
	// APIKey はAuthorizationヘッダーに送るキー。Ollamaは検証しない。
	APIKey string
	// SystemPrompt は全ての呼び出しで先頭に付与するシステムプロンプト。
	SystemPrompt string
	// HTTPClient は通信に使用するクライアント。nilの場合は既定のクライアントを使う。
	HTTPClient *http.Client
}

// Ollama はローカルのOllamaをOpenAI互換APIで呼び出すAgent。
type Ollama struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOllama は新しいOllamaバックエンドを生成する。
// 再試行はWithRetryで制御するため、SDK側の自動再試行は無効にする。
func NewOllama(cfg OllamaConfig) (*Ollama, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("ollama base url is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("ollama model is required")
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "ollama"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Ollama{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

// Run はシステムプロンプトとユーザーのプロンプトで1回のチャット補完を行う。
func (o *Ollama) Run(ctx context.Context, prompt string) (Result, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if o.systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(o.systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	})
	if err != nil {
		return Result{}, fmt.Errorf("ollamaへのリクエストに失敗: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, ErrEmptyChoices
	}

	return Content(resp.Choices[0].Message.Content), nil
}

var _ Agent = (*Ollama)(nil)
