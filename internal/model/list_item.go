package model

import "time"

// A ListItem is a single value belonging to a list.
// ListID is not checked against existing lists by the store.
type ListItem struct {
	ID           string    `json:"id"`
	ListID       string    `json:"list_id"`
	Type         Type      `json:"type"`
	Value        string    `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedBy    string    `json:"created_by"`
	UpdatedBy    string    `json:"updated_by"`
	TieBreakerID string    `json:"tie_breaker_id"`
}
