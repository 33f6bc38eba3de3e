// Package domain holds DTOs for prompt http and service contracts
package domain

import "time"

// Prompt is one daily prompt
type Prompt struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CurrentResponse is the payload for the current prompt endpoint
type CurrentResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Date      string `json:"date"`
	ExpiresAt string `json:"expiresAt"`
}
