package listsclient

import (
	"io"
	"time"
)

type (
	// A List is a named collection of values of the same type.
	List struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description"`
		Type         string    `json:"type"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
		CreatedBy    string    `json:"created_by"`
		UpdatedBy    string    `json:"updated_by"`
		TieBreakerID string    `json:"tie_breaker_id"`
	}

	// A ListItem is a single value belonging to a list.
	ListItem struct {
		ID           string    `json:"id"`
		ListID       string    `json:"list_id"`
		Type         string    `json:"type"`
		Value        string    `json:"value"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
		CreatedBy    string    `json:"created_by"`
		UpdatedBy    string    `json:"updated_by"`
		TieBreakerID string    `json:"tie_breaker_id"`
	}

	// CreateListParams are the parameters of a list creation.
	CreateListParams struct {
		ID          string `json:"id,omitempty"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Type        string `json:"type"`
	}

	// UpdateListParams are the parameters of a list update. Nil fields are left unchanged.
	UpdateListParams struct {
		ID          string  `json:"id"`
		Name        *string `json:"name,omitempty"`
		Description *string `json:"description,omitempty"`
	}

	// CreateListItemParams are the parameters of a list item creation.
	CreateListItemParams struct {
		ID     string `json:"id,omitempty"`
		ListID string `json:"list_id"`
		Value  string `json:"value"`
	}

	// ImportParams are the parameters of an import.
	// Either ListID or Type must be set. With Type, the list is named after Filename.
	ImportParams struct {
		ListID   string
		Type     string
		Filename string
		Reader   io.Reader
	}

	// An ImportResult is the outcome of an import.
	ImportResult struct {
		List     List `json:"list"`
		Imported int  `json:"imported"`
	}
)
