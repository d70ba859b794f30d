package models

import "time"

// Feedback is an append-only participant rating of a camp.
type Feedback struct {
	ID        string    `json:"_id"`
	CampID    string    `json:"campId"`
	CampName  string    `json:"campName,omitempty"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
