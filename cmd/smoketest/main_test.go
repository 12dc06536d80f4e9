package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/devchat/internal/agent"
	"github.com/nao1215/devchat/internal/gateway"
	"github.com/nao1215/devchat/pkg/httpclient"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newGateway は指定したAgentで応答するゲートウェイのテストサーバーを起動する。
func newGateway(t *testing.T, a agent.Agent) *httptest.Server {
	t.Helper()

	s := gateway.NewServer(gateway.Options{
		AuthToken:      "EXPECTED_TOKEN",
		ServiceName:    "Developer ChatBot API",
		AllowedOrigins: []string{"*"},
		AgentTimeout:   time.Second,
	}, a, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func testOptions(baseURL string) options {
	return options{
		baseURL: baseURL,
		token:   "EXPECTED_TOKEN",
		session: "smoke-session",
		message: "What does Leonard do?",
		timeout: 5 * time.Second,
	}
}

// TestRun はスモークテスト全体の実行結果を検証する。
func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("正常なゲートウェイでは全項目が成功すること", func(t *testing.T) {
		t.Parallel()

		ts := newGateway(t, agent.Func(func(context.Context, string) (agent.Result, error) {
			return agent.Content("Leonard is a developer."), nil
		}))

		var out bytes.Buffer
		if failed := run(context.Background(), testOptions(ts.URL), &out); failed != 0 {
			t.Fatalf("失敗件数: got %d, want 0\n%s", failed, out.String())
		}
		if !strings.Contains(out.String(), "4/4 checks passed") {
			t.Errorf("サマリーが不正: %s", out.String())
		}
		if !strings.Contains(out.String(), "Leonard is a developer.") {
			t.Errorf("応答が出力されていない: %s", out.String())
		}
	})

	t.Run("回答生成に失敗するとチャット項目のみ失敗すること", func(t *testing.T) {
		t.Parallel()

		ts := newGateway(t, agent.Func(func(context.Context, string) (agent.Result, error) {
			return agent.Result{}, errors.New("model unavailable")
		}))

		var out bytes.Buffer
		if failed := run(context.Background(), testOptions(ts.URL), &out); failed != 1 {
			t.Fatalf("失敗件数: got %d, want 1\n%s", failed, out.String())
		}
		if !strings.Contains(out.String(), "[FAIL] chat message") {
			t.Errorf("チャット項目が失敗として出力されていない: %s", out.String())
		}
	})

	t.Run("接続できない場合は全項目が失敗すること", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		if failed := run(context.Background(), testOptions("http://127.0.0.1:1"), &out); failed != 4 {
			t.Fatalf("失敗件数: got %d, want 4\n%s", failed, out.String())
		}
	})
}

// TestExpectStatus はexpectStatus関数を検証する。
func TestExpectStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "期待したステータスならnil", err: &httpclient.StatusError{StatusCode: http.StatusUnauthorized}, wantErr: false},
		{name: "異なるステータスはエラー", err: &httpclient.StatusError{StatusCode: http.StatusOK}, wantErr: true},
		{name: "成功はエラー", err: nil, wantErr: true},
		{name: "通信エラーはエラー", err: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := expectStatus(tt.err, http.StatusUnauthorized); (err != nil) != tt.wantErr {
				t.Errorf("expectStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
