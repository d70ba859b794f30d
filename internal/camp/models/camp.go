package models

import "time"

// Camp is a medical camp listing. ParticipantCount is owned by the
// registration workflow and never taken from client input.
type Camp struct {
	ID                     string    `json:"_id"`
	Title                  string    `json:"title"`
	Image                  string    `json:"image,omitempty"`
	Fee                    float64   `json:"fee"`
	DateTime               string    `json:"dateTime,omitempty"`
	Location               string    `json:"location,omitempty"`
	HealthcareProfessional string    `json:"healthcareProfessional,omitempty"`
	Description            string    `json:"description,omitempty"`
	ParticipantCount       int64     `json:"participantCount"`
	CreatedAt              time.Time `json:"createdAt"`
}

// Update lists the fields an admin may change. Nil fields are left alone.
type Update struct {
	Title                  *string
	Image                  *string
	Fee                    *float64
	DateTime               *string
	Location               *string
	HealthcareProfessional *string
	Description            *string
}

// IsEmpty reports whether the update would change nothing.
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Image == nil && u.Fee == nil && u.DateTime == nil &&
		u.Location == nil && u.HealthcareProfessional == nil && u.Description == nil
}

// Apply copies the set fields onto c.
func (u Update) Apply(c *Camp) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Image != nil {
		c.Image = *u.Image
	}
	if u.Fee != nil {
		c.Fee = *u.Fee
	}
	if u.DateTime != nil {
		c.DateTime = *u.DateTime
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
	if u.HealthcareProfessional != nil {
		c.HealthcareProfessional = *u.HealthcareProfessional
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
}
