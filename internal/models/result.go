package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Source       Source `json:"source"`
}

type ScreenRequest struct {
	DocumentID string `json:"document_id" validate:"required,uuid"`
	Language   string `json:"language,omitempty"`
}

type ScreenResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Result       *ScreeningReport `json:"result,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
}

// EvaluateResponse is returned for a submitted registration form.
type EvaluateResponse struct {
	Fraud  FraudReport `json:"fraud"`
	Health HealthScore `json:"health"`
}

type VoiceFieldResponse struct {
	Field      string `json:"field"`
	Language   string `json:"language"`
	Transcript string `json:"transcript"`
	Value      any    `json:"value"`
}
