// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// 静的Bearerトークンの検証、リクエストIDの付与、構造化リクエストログ、
// パニックリカバリ、CORS設定、エラー種別からHTTPレスポンスへの変換を含む。
package middleware
