// Package gateway はチャットボットAPIのリクエストゲートウェイを提供する。
//
// 静的Bearerトークンによる認証、リクエストの検証、回答生成サービスへの
// メッセージ転送、固定形式のレスポンス生成を担当する。
// リクエスト間で共有する可変状態は持たず、全ての操作はステートレスな
// リクエスト/レスポンス変換として動作する。
package gateway
