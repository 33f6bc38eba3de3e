// Package domain holds DTOs for response playback contracts
package domain

import "time"

// Playback is one published response prepared for anonymous listening
type Playback struct {
	ID        string    `json:"id"`
	AudioData string    `json:"audio_data"`
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}
