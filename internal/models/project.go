package models

import "time"

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProjectInput represents the request body for creating or replacing a project
type ProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// EnumTokens returns the allowed tokens for a closed-vocabulary field, or
// nil for free text.
func (ProjectInput) EnumTokens(field string) []string {
	if field == "status" {
		return tokens(ProjectStatuses)
	}
	return nil
}

// ProjectFields are the mutable columns of a project after validation
type ProjectFields struct {
	Name        string
	Description string
	Status      ProjectStatus
}
