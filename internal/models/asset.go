package models

import "time"

// Asset represents a tracked piece of equipment or a virtual machine
type Asset struct {
	ID         int64       `json:"id"`
	Type       AssetType   `json:"type"`
	MakeModel  string      `json:"make_model"`
	Serial     string      `json:"serial"`
	AssignedTo string      `json:"assigned_to"`
	Status     AssetStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// AssetInput represents the request body for creating or replacing an asset
type AssetInput struct {
	Type       *string `json:"type"`
	MakeModel  *string `json:"make_model"`
	Serial     *string `json:"serial"`
	AssignedTo *string `json:"assigned_to"`
	Status     *string `json:"status"`
}

func (AssetInput) EnumTokens(field string) []string {
	switch field {
	case "type":
		return tokens(AssetTypes)
	case "status":
		return tokens(AssetStatuses)
	}
	return nil
}

// AssetFields are the mutable columns of an asset after validation
type AssetFields struct {
	Type       AssetType
	MakeModel  string
	Serial     string
	AssignedTo string
	Status     AssetStatus
}
