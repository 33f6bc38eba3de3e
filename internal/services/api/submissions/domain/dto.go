// Package domain holds DTOs for submission http and service contracts
package domain

// SubmitInput is the submission payload.
// AudioData is the base64 encoded clip, Duration is seconds
type SubmitInput struct {
	PromptID  string  `json:"prompt_id" validate:"required"`
	AudioData string  `json:"audio_data" validate:"required"`
	Duration  float64 `json:"duration,omitempty"`
}

// Accepted is the success payload for an approved submission
type Accepted struct {
	Success    bool   `json:"success"`
	ResponseID string `json:"response_id"`
	Escalated  bool   `json:"escalated"`
}
