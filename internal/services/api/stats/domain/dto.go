// Package domain holds DTOs for the community stats contract
package domain

// Overview is the public activity snapshot for the landing page.
// totalUsers mirrors responsesToday while submissions stay anonymous,
// there is no account table to count
type Overview struct {
	TotalPrompts   int64  `json:"totalPrompts"`
	CurrentPrompt  string `json:"currentPrompt"`
	ResponsesToday int64  `json:"responsesToday"`
	TotalUsers     int64  `json:"totalUsers"`
}
