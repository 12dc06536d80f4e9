// 起動中のチャットボットAPIに対して疎通確認を行うスモークテスト。
// ヘルスチェック、認証拒否、入力検証、チャット応答の順に確認し、
// 1つでも失敗した場合は終了コード1で終了する。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/devchat/internal/gateway"
	"github.com/nao1215/devchat/pkg/httpclient"
)

// options はコマンドライン引数。
type options struct {
	baseURL string
	token   string
	session string
	message string
	timeout time.Duration
}

func main() {
	opts := options{}
	flag.StringVar(&opts.baseURL, "base-url", "http://127.0.0.1:8000", "ゲートウェイのベースURL")
	flag.StringVar(&opts.token, "token", "EXPECTED_TOKEN", "Bearerトークン")
	flag.StringVar(&opts.session, "session", "", "セッションID（省略時はUUIDを生成）")
	flag.StringVar(&opts.message, "message", "What does Leonard do?", "送信するメッセージ")
	flag.DurationVar(&opts.timeout, "timeout", 90*time.Second, "1リクエストあたりのタイムアウト")
	flag.Parse()

	if opts.session == "" {
		opts.session = uuid.NewString()
	}

	if failed := run(context.Background(), opts, os.Stdout); failed > 0 {
		os.Exit(1)
	}
}

// check は1つの確認項目。
type check struct {
	name string
	fn   func(ctx context.Context) error
}

// run は全ての確認項目を実行し、失敗した件数を返す。
func run(ctx context.Context, opts options, out io.Writer) int {
	client := httpclient.New(opts.baseURL, httpclient.WithBearerToken(opts.token), httpclient.WithTimeout(opts.timeout))
	intruder := httpclient.New(opts.baseURL, httpclient.WithBearerToken("invalid-"+uuid.NewString()), httpclient.WithTimeout(opts.timeout))

	checks := []check{
		{name: "health check", fn: func(ctx context.Context) error {
			var resp gateway.HealthResponse
			if err := client.GetJSON(ctx, "/", &resp); err != nil {
				return err
			}
			if resp.Status != "healthy" {
				return fmt.Errorf("status = %q, want %q", resp.Status, "healthy")
			}
			return nil
		}},
		{name: "authentication rejected", fn: func(ctx context.Context) error {
			err := intruder.PostJSON(ctx, "/chat/messages", gateway.ChatRequest{Session: opts.session, Message: opts.message}, nil)
			return expectStatus(err, 401)
		}},
		{name: "empty message rejected", fn: func(ctx context.Context) error {
			err := client.PostJSON(ctx, "/chat/messages", gateway.ChatRequest{Session: opts.session, Message: ""}, nil)
			return expectStatus(err, 400)
		}},
		{name: "chat message", fn: func(ctx context.Context) error {
			var resp gateway.ChatResponse
			if err := client.PostJSON(ctx, "/chat/messages", gateway.ChatRequest{Session: opts.session, Message: opts.message}, &resp); err != nil {
				return err
			}
			if resp.Session != opts.session {
				return fmt.Errorf("session = %q, want %q", resp.Session, opts.session)
			}
			if resp.Status != gateway.StatusSuccess {
				return fmt.Errorf("status = %q, want %q", resp.Status, gateway.StatusSuccess)
			}
			fmt.Fprintf(out, "    response: %s\n", resp.Response)
			return nil
		}},
	}

	failed := 0
	for i, c := range checks {
		reqCtx := httpclient.WithRequestID(ctx, fmt.Sprintf("smoketest-%s-%d", opts.session, i+1))
		start := time.Now()
		err := c.fn(reqCtx)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			failed++
			fmt.Fprintf(out, "[FAIL] %s (%s): %v\n", c.name, elapsed, err)
			continue
		}
		fmt.Fprintf(out, "[ OK ] %s (%s)\n", c.name, elapsed)
	}

	fmt.Fprintf(out, "\n%d/%d checks passed\n", len(checks)-failed, len(checks))
	return failed
}
