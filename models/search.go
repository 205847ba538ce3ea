package models

import "github.com/google/uuid"

// SearchResultType tags a search hit with the entity it came from.
type SearchResultType string

const (
	SearchTaskList SearchResultType = "tasklist"
	SearchTask     SearchResultType = "task"
	SearchNote     SearchResultType = "note"
)

type SearchResult struct {
	ID      uuid.UUID        `json:"id"`
	Type    SearchResultType `json:"type"`
	Title   string           `json:"title"`
	Details string           `json:"details"`
}
