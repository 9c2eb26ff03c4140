package models

import "strings"

// ValidateProjectInput checks a decoded project body and fills in defaults.
// It never touches the database.
func ValidateProjectInput(in ProjectInput) (ProjectFields, error) {
	name := valueOr(in.Name, "")
	if strings.TrimSpace(name) == "" {
		return ProjectFields{}, missingField("name")
	}

	status := ProjectPlanned
	if in.Status != nil {
		var err error
		if status, err = ParseProjectStatus(*in.Status); err != nil {
			return ProjectFields{}, err
		}
	}

	return ProjectFields{
		Name:        name,
		Description: valueOr(in.Description, ""),
		Status:      status,
	}, nil
}

// ValidateTicketInput checks a decoded ticket body and fills in defaults.
// requester_email is free text; only the title is required.
func ValidateTicketInput(in TicketInput) (TicketFields, error) {
	title := valueOr(in.Title, "")
	if strings.TrimSpace(title) == "" {
		return TicketFields{}, missingField("title")
	}

	priority := TicketLow
	if in.Priority != nil {
		var err error
		if priority, err = ParseTicketPriority(*in.Priority); err != nil {
			return TicketFields{}, err
		}
	}

	status := TicketOpen
	if in.Status != nil {
		var err error
		if status, err = ParseTicketStatus(*in.Status); err != nil {
			return TicketFields{}, err
		}
	}

	return TicketFields{
		Title:          title,
		Description:    valueOr(in.Description, ""),
		Priority:       priority,
		Status:         status,
		RequesterEmail: valueOr(in.RequesterEmail, ""),
	}, nil
}

// ValidateAssetInput checks a decoded asset body and fills in defaults.
func ValidateAssetInput(in AssetInput) (AssetFields, error) {
	assetType := AssetLaptop
	if in.Type != nil {
		var err error
		if assetType, err = ParseAssetType(*in.Type); err != nil {
			return AssetFields{}, err
		}
	}

	status := AssetStock
	if in.Status != nil {
		var err error
		if status, err = ParseAssetStatus(*in.Status); err != nil {
			return AssetFields{}, err
		}
	}

	return AssetFields{
		Type:       assetType,
		MakeModel:  valueOr(in.MakeModel, ""),
		Serial:     valueOr(in.Serial, ""),
		AssignedTo: valueOr(in.AssignedTo, ""),
		Status:     status,
	}, nil
}

// valueOr treats a missing or JSON null field as omitted.
func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
