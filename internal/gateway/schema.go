package gateway

// StatusSuccess はチャット応答の成功を表すステータス。
const StatusSuccess = "success"

// ChatRequest はPOST /chat/messagesのリクエストボディ。
type ChatRequest struct {
	// Session は会話を識別する文字列。一意性や継続性は検証しない。
	Session string `json:"session"`
	// Message はユーザーの発話。
	Message string `json:"message"`
}

// ChatResponse はPOST /chat/messagesのレスポンスボディ。
type ChatResponse struct {
	// Session はリクエストのセッションをそのまま返す。
	Session string `json:"session"`
	// Response は回答生成サービスが生成したテキスト。
	Response string `json:"response"`
	// Timestamp は応答生成時刻（RFC3339形式）。
	Timestamp string `json:"timestamp"`
	// Status は常に "success"。
	Status string `json:"status"`
}

// HealthResponse はGET /のレスポンスボディ。
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// SessionInfoResponse はGET /chat/sessions/:idのレスポンスボディ。
// セッションストアは存在しないため、内容は常にその場で生成される。
type SessionInfoResponse struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}

// ChatHealthResponse はGET /chat/healthのレスポンスボディ。
type ChatHealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Timestamp   string `json:"timestamp"`
	AgentStatus string `json:"agent_status"`
}
