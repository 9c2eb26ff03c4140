package models

import "time"

// Ticket represents a help desk request
type Ticket struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Priority       TicketPriority `json:"priority"`
	Status         TicketStatus   `json:"status"`
	RequesterEmail string         `json:"requester_email"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TicketInput represents the request body for creating or replacing a ticket
type TicketInput struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Priority       *string `json:"priority"`
	Status         *string `json:"status"`
	RequesterEmail *string `json:"requester_email"`
}

func (TicketInput) EnumTokens(field string) []string {
	switch field {
	case "priority":
		return tokens(TicketPriorities)
	case "status":
		return tokens(TicketStatuses)
	}
	return nil
}

// TicketFields are the mutable columns of a ticket after validation
type TicketFields struct {
	Title          string
	Description    string
	Priority       TicketPriority
	Status         TicketStatus
	RequesterEmail string
}
