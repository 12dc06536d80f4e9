// Package httpclient はチャットボットAPIを呼び出すJSONクライアントを提供する。
//
// スモークテストなど、ゲートウェイのHTTP APIを外部から利用する際に使用する。
// Bearerトークンの付与とリクエストIDの伝播を行い、
// 2xx以外のレスポンスはステータスコードを保持した *StatusError として返す。
package httpclient
