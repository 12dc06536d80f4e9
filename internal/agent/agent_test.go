package agent

import (
	"context"
	"errors"
	"testing"
)

// stringerValue はfmt.Stringerを実装するテスト用の値。
type stringerValue struct{ text string }

func (s stringerValue) String() string { return "stringer:" + s.text }

// TestResultText はResult.Textの正規化を検証する。
func TestResultText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		result      Result
		want        string
		wantContent bool
	}{
		{name: "content欄が優先されること", result: Content("hello"), want: "hello", wantContent: true},
		{name: "空のcontent欄も構造化応答として扱われること", result: Content(""), want: "", wantContent: true},
		{name: "文字列の値はそのまま返ること", result: Value("plain"), want: "plain"},
		{name: "バイト列の値は文字列に変換されること", result: Value([]byte("bytes")), want: "bytes"},
		{name: "Stringerの値はString()が使われること", result: Value(stringerValue{text: "x"}), want: "stringer:x"},
		{name: "その他の値はfmt.Sprintで変換されること", result: Value(42), want: "42"},
		{name: "nilの値は空文字列になること", result: Value(nil), want: ""},
		{name: "ゼロ値は空文字列になること", result: Result{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := tt.result.HasContent(); got != tt.wantContent {
				t.Errorf("HasContent() = %v, want %v", got, tt.wantContent)
			}
		})
	}
}

// TestFunc はFuncアダプタを検証する。
func TestFunc(t *testing.T) {
	t.Parallel()

	t.Run("関数の戻り値がそのまま返ること", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		a := Func(func(_ context.Context, prompt string) (Result, error) {
			gotPrompt = prompt
			return Content("answer"), nil
		})

		result, err := a.Run(context.Background(), "question")
		if err != nil {
			t.Fatalf("Run()でエラーが発生: %v", err)
		}
		if gotPrompt != "question" {
			t.Errorf("prompt = %q, want %q", gotPrompt, "question")
		}
		if result.Text() != "answer" {
			t.Errorf("Text() = %q, want %q", result.Text(), "answer")
		}
	})

	t.Run("関数のエラーがそのまま返ること", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		a := Func(func(context.Context, string) (Result, error) {
			return Result{}, wantErr
		})

		if _, err := a.Run(context.Background(), "q"); !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
	})
}
