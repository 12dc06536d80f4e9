package config

import (
	"errors"
	"testing"
	"time"
)

// TestFromMapDefaults は環境変数未設定時の既定値を検証する。
func TestFromMapDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatalf("FromMap()でエラーが発生: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8000")
	}
	if cfg.Addr() != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "127.0.0.1:8000")
	}
	if cfg.AuthToken != "EXPECTED_TOKEN" {
		t.Errorf("AuthToken = %q, want %q", cfg.AuthToken, "EXPECTED_TOKEN")
	}
	if cfg.ServiceName != "Developer ChatBot API" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.MaxBodyBytes, 1<<20)
	}
	if cfg.Agent.Provider != ProviderOllama {
		t.Errorf("Agent.Provider = %q, want %q", cfg.Agent.Provider, ProviderOllama)
	}
	if cfg.Agent.Timeout != 60*time.Second {
		t.Errorf("Agent.Timeout = %s, want 60s", cfg.Agent.Timeout)
	}
	if cfg.Agent.MaxRetries != 0 {
		t.Errorf("Agent.MaxRetries = %d, want 0", cfg.Agent.MaxRetries)
	}
	if cfg.Agent.OllamaBaseURL != "http://127.0.0.1:11434/v1" {
		t.Errorf("Agent.OllamaBaseURL = %q", cfg.Agent.OllamaBaseURL)
	}
	if !cfg.Persona.Markdown {
		t.Error("Persona.Markdownの既定値はtrueであるべき")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
}

// TestFromMapOverrides は環境変数による上書きを検証する。
func TestFromMapOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := FromMap(map[string]string{
		"PORT":                 "9000",
		"AUTH_TOKEN":           "s3cret",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com,https://b.example.com",
		"AGENT_PROVIDER":       "Gemini",
		"GEMINI_API_KEY":       "key",
		"AGENT_TIMEOUT":        "15s",
		"AGENT_MAX_RETRIES":    "2",
		"AGENT_RETRY_BACKOFF":  "250ms",
		"PERSONA_MARKDOWN":     "false",
		"LOG_LEVEL":            "debug",
	})
	if err != nil {
		t.Fatalf("FromMap()でエラーが発生: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9000")
	}
	if cfg.AuthToken != "s3cret" {
		t.Errorf("AuthToken = %q, want %q", cfg.AuthToken, "s3cret")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Agent.Provider != ProviderGemini {
		t.Errorf("Agent.Provider = %q, want %q", cfg.Agent.Provider, ProviderGemini)
	}
	if cfg.Agent.Timeout != 15*time.Second {
		t.Errorf("Agent.Timeout = %s, want 15s", cfg.Agent.Timeout)
	}
	if cfg.Agent.MaxRetries != 2 {
		t.Errorf("Agent.MaxRetries = %d, want 2", cfg.Agent.MaxRetries)
	}
	if cfg.Agent.RetryBackoff != 250*time.Millisecond {
		t.Errorf("Agent.RetryBackoff = %s, want 250ms", cfg.Agent.RetryBackoff)
	}
	if cfg.Persona.Markdown {
		t.Error("Persona.Markdownがfalseに上書きされるべき")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

// TestFromMapValidation は不正な設定が拒否されることを検証する。
func TestFromMapValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ map[string]string
		wantErr error
	}{
		{
			name:    "未対応のプロバイダーはエラーになること",
			environ: map[string]string{"AGENT_PROVIDER": "bedrock"},
			wantErr: ErrUnknownProvider,
		},
		{
			name:    "GeminiでAPIキーが無い場合はエラーになること",
			environ: map[string]string{"AGENT_PROVIDER": "gemini"},
			wantErr: ErrMissingGeminiKey,
		},
		{
			name:    "タイムアウトが0の場合はエラーになること",
			environ: map[string]string{"AGENT_TIMEOUT": "0s"},
		},
		{
			name:    "再試行回数が負の場合はエラーになること",
			environ: map[string]string{"AGENT_MAX_RETRIES": "-1"},
		},
		{
			name:    "ボディ上限が0の場合はエラーになること",
			environ: map[string]string{"MAX_REQUEST_BODY_BYTES": "0"},
		},
		{
			name:    "期間の形式が不正な場合はエラーになること",
			environ: map[string]string{"AGENT_TIMEOUT": "soon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromMap(tt.environ)
			if err == nil {
				t.Fatal("FromMap()がエラーを返すべき")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateEmptyToken は空の認証トークンが拒否されることを検証する。
func TestValidateEmptyToken(t *testing.T) {
	t.Parallel()

	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatalf("FromMap()でエラーが発生: %v", err)
	}
	cfg.AuthToken = ""

	if err := cfg.Validate(); !errors.Is(err, ErrEmptyAuthToken) {
		t.Errorf("Validate() = %v, want %v", err, ErrEmptyAuthToken)
	}
}
