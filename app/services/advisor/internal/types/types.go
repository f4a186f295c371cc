package types

type ChatRequest struct {
	SessionID string `json:"session_id,optional"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID       string           `json:"session_id"`
	State           string           `json:"state"`
	Reply           string           `json:"reply"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

type Recommendation struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Price int64  `json:"price"`
	Score int    `json:"score"`
}

type ResetRequest struct {
	SessionID string `json:"session_id,optional"`
}

type ResetResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}
