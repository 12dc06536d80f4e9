package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyCandidates はGeminiの応答に候補が含まれていない場合のエラー。
var ErrEmptyCandidates = errors.New("model response contains no candidates")

// geminiModels はテストで差し替えるためのgenai.Modelsの部分インターフェース。
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig はGeminiバックエンドの設定。
type GeminiConfig struct {
	// APIKey はGemini APIのキー。
	APIKey string
	// Model は利用するモデル名。
	Model string
	// SystemPrompt はシステム指示として渡すプロンプト。
	SystemPrompt string
}

// Gemini はGoogle Gemini APIを呼び出すAgent。
type Gemini struct {
	models       geminiModels
	model        string
	systemPrompt string
}

// NewGemini は新しいGeminiバックエンドを生成する。
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("geminiクライアントの生成に失敗: %w", err)
	}

	return &Gemini{
		models:       client.Models,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

// Run はプロンプトを1回のGenerateContent呼び出しで処理する。
func (g *Gemini) Run(ctx context.Context, prompt string) (Result, error) {
	config := &genai.GenerateContentConfig{}
	if g.systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: g.systemPrompt}},
		}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return Result{}, fmt.Errorf("geminiへのリクエストに失敗: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return Result{}, ErrEmptyCandidates
	}

	return Content(visibleText(resp.Candidates[0])), nil
}

// visibleText は思考過程を除いたテキストパートを連結する。
func visibleText(candidate *genai.Candidate) string {
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

var _ Agent = (*Gemini)(nil)
