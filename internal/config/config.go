// Package config は環境変数からサービス設定を読み込む。
//
// 設定はプロセス起動時に一度だけ構築し、以降は読み取り専用として
// 各コンポーネントに明示的に渡す。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// ProviderOllama はOpenAI互換APIでローカルのOllamaを利用する回答生成バックエンド。
	ProviderOllama = "ollama"
	// ProviderGemini はGoogle Gemini APIを利用する回答生成バックエンド。
	ProviderGemini = "gemini"
)

var (
	// ErrEmptyAuthToken は認証トークンが空の場合のエラー。
	ErrEmptyAuthToken = errors.New("AUTH_TOKEN must not be empty")
	// ErrUnknownProvider は未対応の回答生成バックエンドが指定された場合のエラー。
	ErrUnknownProvider = errors.New("unknown AGENT_PROVIDER")
	// ErrMissingGeminiKey はGemini利用時にAPIキーが無い場合のエラー。
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is required when AGENT_PROVIDER=gemini")
)

// Config はサービス全体の設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8000"`
	// Host はHTTPサーバーのリッスンアドレス。
	Host string `env:"HOST" envDefault:"127.0.0.1"`
	// AuthToken はBearer認証で受け付ける唯一のトークン。
	AuthToken string `env:"AUTH_TOKEN" envDefault:"EXPECTED_TOKEN"`
	// ServiceName はヘルスチェックで返すサービス名。
	ServiceName string `env:"SERVICE_NAME" envDefault:"Developer ChatBot API"`
	// AllowedOrigins はCORSで許可するオリジン。"*" は全オリジンを許可する。
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	// MaxBodyBytes はリクエストボディの最大バイト数。
	MaxBodyBytes int64 `env:"MAX_REQUEST_BODY_BYTES" envDefault:"1048576"`
	// GinMode はginの動作モード（debug, release, test）。
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// Agent は回答生成サービスの設定。
	Agent AgentConfig
	// Persona はペルソナ指示の設定。
	Persona PersonaConfig
	// Log はログ出力の設定。
	Log LogConfig
}

// AgentConfig は回答生成サービスの設定。
type AgentConfig struct {
	// Provider は回答生成バックエンド（ollama, gemini）。
	Provider string `env:"AGENT_PROVIDER" envDefault:"ollama"`
	// Timeout は1回の回答生成に許す最大時間。
	Timeout time.Duration `env:"AGENT_TIMEOUT" envDefault:"60s"`
	// MaxRetries は一時的な失敗に対する再試行回数。0は再試行しない。
	MaxRetries int `env:"AGENT_MAX_RETRIES" envDefault:"0"`
	// RetryBackoff は最初の再試行までの待機時間。再試行ごとに倍になる。
	RetryBackoff time.Duration `env:"AGENT_RETRY_BACKOFF" envDefault:"500ms"`
	// OllamaBaseURL はOllamaのOpenAI互換エンドポイント。
	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://127.0.0.1:11434/v1"`
	// OllamaModel はOllamaで利用するモデル名。
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"hf.co/mradermacher/0824-Qwen2.5-0.5B-Instructt-16bit-3E-GGUF:Q3_K_S"`
	// OllamaAPIKey はOpenAI互換APIに送るキー。Ollamaは値を検証しない。
	OllamaAPIKey string `env:"OLLAMA_API_KEY" envDefault:"ollama"`
	// GeminiAPIKey はGemini APIのキー。
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	// GeminiModel はGeminiで利用するモデル名。
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// PersonaConfig はペルソナ指示の設定。
type PersonaConfig struct {
	// File は組み込みの指示の代わりに読み込むファイルのパス。
	File string `env:"PERSONA_FILE"`
	// Markdown は回答をMarkdown形式で返すよう指示するかどうか。
	Markdown bool `env:"PERSONA_MARKDOWN" envDefault:"true"`
}

// LogConfig はログ出力の設定。
type LogConfig struct {
	// Level はログレベル。
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format はログ形式（json, text）。
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	// File はログファイルのパス。空の場合は標準出力。
	File string `env:"LOG_FILE"`
}

// Load はカレントディレクトリの.envを読み込んだ上で環境変数から設定を構築する。
// .envが存在しない場合は環境変数のみを使用する。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envの読み込みに失敗: %w", err)
	}
	return parse(env.Options{})
}

// FromMap は指定されたキーと値から設定を構築する。プロセスの環境変数は参照しない。
func FromMap(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗: %w", err)
	}
	cfg.Agent.Provider = strings.ToLower(strings.TrimSpace(cfg.Agent.Provider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を検証する。
func (c *Config) Validate() error {
	if c.AuthToken == "" {
		return ErrEmptyAuthToken
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.Agent.Timeout <= 0 {
		return fmt.Errorf("AGENT_TIMEOUT must be positive, got %s", c.Agent.Timeout)
	}
	if c.Agent.MaxRetries < 0 {
		return fmt.Errorf("AGENT_MAX_RETRIES must not be negative, got %d", c.Agent.MaxRetries)
	}
	if c.Agent.MaxRetries > 0 && c.Agent.RetryBackoff <= 0 {
		return fmt.Errorf("AGENT_RETRY_BACKOFF must be positive when retries are enabled, got %s", c.Agent.RetryBackoff)
	}

	switch c.Agent.Provider {
	case ProviderOllama:
		if strings.TrimSpace(c.Agent.OllamaBaseURL) == "" {
			return errors.New("OLLAMA_BASE_URL must not be empty")
		}
		if strings.TrimSpace(c.Agent.OllamaModel) == "" {
			return errors.New("OLLAMA_MODEL must not be empty")
		}
	case ProviderGemini:
		if strings.TrimSpace(c.Agent.GeminiAPIKey) == "" {
			return ErrMissingGeminiKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Agent.Provider)
	}
	return nil
}

// Addr はHTTPサーバーのリッスンアドレスを返す。
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
