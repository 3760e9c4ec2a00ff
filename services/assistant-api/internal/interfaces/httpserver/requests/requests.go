package requests

import "github.com/dealermate/dealermate-server/pkg/toolvalue"

// AssistRequest is the body of POST /v1/assistant/assist.
type AssistRequest struct {
	DealID  *int64          `json:"deal_id,omitempty" example:"12"`
	Message string          `json:"message" binding:"required" example:"무사고 SUV 2000만원 이하 추천해줘"`
	Filters toolvalue.Value `json:"filters,omitempty" swaggertype:"object"`
}

// CreateQuickQuestionRequest is the body of POST /v1/quick-questions.
type CreateQuickQuestionRequest struct {
	Text string `json:"text" binding:"required" example:"쏘렌토 시세 요약해줘"`
}

// FilterSearchRequest is the body of POST /v1/filters/search.
type FilterSearchRequest struct {
	Query   string          `json:"query,omitempty" example:"SUV"`
	Filters toolvalue.Value `json:"filters,omitempty" swaggertype:"object"`
	TopK    *int            `json:"top_k,omitempty" example:"50"`
}
