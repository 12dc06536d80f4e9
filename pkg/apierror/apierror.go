// Package apierror はHTTP APIで扱うエラー種別を定義する。
//
// ハンドラやミドルウェアはエラー種別付きのエラーを返すだけで、
// HTTPステータスコードへの変換は最外周のミドルウェアでのみ行う。
package apierror

import (
	"errors"
	"net/http"
)

// Kind はAPIエラーの種別を表す。
type Kind int

const (
	// KindInternal は回答生成サービスの失敗などサーバー内部のエラーを表す。
	KindInternal Kind = iota
	// KindBadRequest はリクエスト内容の不備を表す。
	KindBadRequest
	// KindUnauthorized は認証トークンの不一致を表す。
	KindUnauthorized
	// KindNotFound は存在しないエンドポイントへのリクエストを表す。
	KindNotFound
	// KindMethodNotAllowed はエンドポイントが対応していないHTTPメソッドを表す。
	KindMethodNotAllowed
	// KindPayloadTooLarge は上限を超えたリクエストボディを表す。
	KindPayloadTooLarge
)

// StatusCode はエラー種別に対応するHTTPステータスコードを返す。
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// String はレスポンスボディに含めるエラーコードを返す。
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindPayloadTooLarge:
		return "payload_too_large"
	default:
		return "internal_error"
	}
}

// Error は種別とクライアント向けメッセージを持つAPIエラー。
type Error struct {
	// Kind はエラー種別。
	Kind Kind
	// Message はクライアントに返すメッセージ。
	Message string
	// Err は原因となったエラー。クライアントには返さずログにのみ出力する。
	Err error
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap は原因となったエラーを返す。
func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthorized は認証エラーを生成する。
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// BadRequest はリクエスト不備のエラーを生成する。
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NotFound は存在しないエンドポイントのエラーを生成する。
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// MethodNotAllowed は未対応メソッドのエラーを生成する。
func MethodNotAllowed(message string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: message}
}

// PayloadTooLarge はリクエストボディ超過のエラーを生成する。
func PayloadTooLarge(message string) *Error {
	return &Error{Kind: KindPayloadTooLarge, Message: message}
}

// Internal は内部エラーを生成する。causeはログ出力用に保持する。
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// From は任意のエラーをAPIエラーに変換する。
// APIエラーでないものは汎用メッセージの内部エラーとして扱う。
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("Internal server error", err)
}
