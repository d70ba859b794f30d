package handler

import (
	"strings"

	"mcms/internal/camp/models"
	dErrors "mcms/pkg/domain-errors"
)

// CreateCampRequest is the body of POST /camp. participantCount is not
// accepted from clients.
type CreateCampRequest struct {
	Title                  string  `json:"title"`
	Image                  string  `json:"image"`
	Fee                    float64 `json:"fee"`
	DateTime               string  `json:"dateTime"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	Description            string  `json:"description"`
}

func (r *CreateCampRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Image = strings.TrimSpace(r.Image)
	r.DateTime = strings.TrimSpace(r.DateTime)
	r.Location = strings.TrimSpace(r.Location)
	r.HealthcareProfessional = strings.TrimSpace(r.HealthcareProfessional)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateCampRequest) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Fee < 0 {
		return dErrors.New(dErrors.CodeValidation, "fee must not be negative")
	}
	return nil
}

func (r *CreateCampRequest) toModel() models.Camp {
	return models.Camp{
		Title:                  r.Title,
		Image:                  r.Image,
		Fee:                    r.Fee,
		DateTime:               r.DateTime,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		Description:            r.Description,
	}
}

// UpdateCampRequest is the body of PUT /camp/{id}. Absent fields are kept.
type UpdateCampRequest struct {
	Title                  *string  `json:"title"`
	Image                  *string  `json:"image"`
	Fee                    *float64 `json:"fee"`
	DateTime               *string  `json:"dateTime"`
	Location               *string  `json:"location"`
	HealthcareProfessional *string  `json:"healthcareProfessional"`
	Description            *string  `json:"description"`
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

func (r *UpdateCampRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Image)
	trimPtr(r.DateTime)
	trimPtr(r.Location)
	trimPtr(r.HealthcareProfessional)
	trimPtr(r.Description)
}

func (r *UpdateCampRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title must not be empty")
	}
	if r.Fee != nil && *r.Fee < 0 {
		return dErrors.New(dErrors.CodeValidation, "fee must not be negative")
	}
	return nil
}

func (r *UpdateCampRequest) toModel() models.Update {
	return models.Update{
		Title:                  r.Title,
		Image:                  r.Image,
		Fee:                    r.Fee,
		DateTime:               r.DateTime,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		Description:            r.Description,
	}
}
