// Package events carries published-response events from the submission
// pipeline to in-process subscribers, with an optional Kafka mirror
package events

import "time"

// ResponsePublished is emitted after an approved response is persisted
type ResponsePublished struct {
	ResponseID string    `json:"response_id"`
	PromptID   string    `json:"prompt_id"`
	Transcript string    `json:"transcript"`
	Flags      []string  `json:"flags"`
	Escalated  bool      `json:"escalated"`
	CreatedAt  time.Time `json:"created_at"`
}
