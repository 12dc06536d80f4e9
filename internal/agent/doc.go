// Package agent は回答生成サービス（言語モデル）との境界を提供する。
//
// ゲートウェイはAgentインターフェースを通じてメッセージ本文だけを渡し、
// 結果はResultで受け取る。Resultは構造化された応答と任意の値の両方を
// 1つの文字列に正規化するアクセサを持つ。
//
// バックエンドはOpenAI互換APIで接続するローカルのOllamaと、Google Geminiを
// 提供する。どちらも1回の呼び出しで完結し、会話履歴は保持しない。
package agent
