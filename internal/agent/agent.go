package agent

import (
	"context"
	"fmt"
)

// Agent はプロンプトから回答を生成するサービス。
// 実装は並行呼び出しに対して安全でなければならない。
type Agent interface {
	// Run はプロンプトを回答生成サービスに渡し、結果を返す。
	Run(ctx context.Context, prompt string) (Result, error)
}

// Func は関数をAgentとして扱うためのアダプタ。
type Func func(ctx context.Context, prompt string) (Result, error)

// Run はAgentインターフェースを実装する。
func (f Func) Run(ctx context.Context, prompt string) (Result, error) {
	return f(ctx, prompt)
}

// Result は回答生成サービスの結果。
// content欄を持つ構造化された応答か、任意の値のどちらかを保持する。
type Result struct {
	content    string
	hasContent bool
	value      any
}

// Content はcontent欄を持つ構造化された応答を表すResultを生成する。
func Content(text string) Result {
	return Result{content: text, hasContent: true}
}

// Value は任意の値を表すResultを生成する。Text()で文字列に変換される。
func Value(v any) Result {
	return Result{value: v}
}

// HasContent はcontent欄を持つ応答かどうかを返す。
func (r Result) HasContent() bool {
	return r.hasContent
}

// Text は結果を文字列に正規化する。
// content欄があればそれを優先し、無ければ値を文字列に変換する。
func (r Result) Text() string {
	if r.hasContent {
		return r.content
	}

	switch v := r.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
