package server

import "namenorm/normalization"

// NormalizeRequest запрос нормализации одного наименования
type NormalizeRequest struct {
	Text    string                 `json:"text" binding:"required"`
	Options *normalization.Options `json:"options,omitempty"`
}

// NormalizeResponse ответ нормализации одного наименования
type NormalizeResponse struct {
	RequestID string                `json:"request_id"`
	Result    *normalization.Result `json:"result"`
}

// BatchRequest запрос пакетной нормализации
type BatchRequest struct {
	Items   []normalization.BatchItem `json:"items" binding:"required"`
	Options *normalization.Options    `json:"options,omitempty"`
}

// BatchResponse ответ пакетной нормализации
type BatchResponse struct {
	RequestID string                     `json:"request_id"`
	Result    *normalization.BatchResult `json:"result"`
}

// ErrorResponse унифицированный ответ с ошибкой
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse ответ проверки работоспособности
type HealthResponse struct {
	Status    string   `json:"status"`
	Languages []string `json:"languages"`
}
