package models

import (
	"time"

	"mcms/internal/storage"
)

type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Registration links a participant to a camp. Confirmation and payment move
// independently of each other.
type Registration struct {
	ID                     string             `json:"_id"`
	CampID                 string             `json:"campId"`
	CampName               string             `json:"campName,omitempty"`
	Fee                    float64            `json:"fee"`
	Location               string             `json:"location,omitempty"`
	HealthcareProfessional string             `json:"healthcareProfessional,omitempty"`
	ParticipantName        string             `json:"participantName,omitempty"`
	UserEmail              string             `json:"userEmail"`
	Age                    int                `json:"age,omitempty"`
	Phone                  string             `json:"phone,omitempty"`
	Gender                 string             `json:"gender,omitempty"`
	EmergencyContact       string             `json:"emergencyContact,omitempty"`
	ConfirmationStatus     ConfirmationStatus `json:"confirmationStatus"`
	PaymentStatus          PaymentStatus      `json:"paymentStatus"`
	TransactionID          string             `json:"transactionId,omitempty"`
	CreatedAt              time.Time          `json:"createdAt"`
}

// IsLocked reports the paid and confirmed state, the only one in which a
// registration may not be cancelled.
func (r *Registration) IsLocked() bool {
	return r.PaymentStatus == PaymentPaid && r.ConfirmationStatus == ConfirmationConfirmed
}

// Details are the participant supplied fields of a new registration.
type Details struct {
	CampName               string
	Fee                    float64
	Location               string
	HealthcareProfessional string
	ParticipantName        string
	Age                    int
	Phone                  string
	Gender                 string
	EmergencyContact       string
}

// PaymentOutcome is returned by payment completion. The two results are
// reported as the store produced them, with no reconciliation.
type PaymentOutcome struct {
	PaymentResult storage.InsertResult `json:"paymentResult"`
	UpdateResult  storage.UpdateResult `json:"updateResult"`
}
