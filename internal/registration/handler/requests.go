package handler

import (
	"encoding/json"
	"strings"
	"time"

	paymentModels "mcms/internal/payment/models"
	"mcms/internal/registration/models"
	dErrors "mcms/pkg/domain-errors"
	emailutil "mcms/pkg/email"
	"mcms/pkg/platform/validation"
)

// CreateRegistrationRequest is the body of POST /registeredCamps. Status
// fields are not part of the request and cannot be set by clients.
type CreateRegistrationRequest struct {
	CampID                 string  `json:"campId" validate:"required"`
	UserEmail              string  `json:"userEmail" validate:"required,email"`
	CampName               string  `json:"campName"`
	Fee                    float64 `json:"fee" validate:"gte=0"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	ParticipantName        string  `json:"participantName" validate:"max=200"`
	Age                    int     `json:"age" validate:"gte=0,lte=150"`
	Phone                  string  `json:"phone" validate:"max=32"`
	Gender                 string  `json:"gender"`
	EmergencyContact       string  `json:"emergencyContact" validate:"max=64"`
}

func (r *CreateRegistrationRequest) Normalize() {
	r.CampID = strings.TrimSpace(r.CampID)
	r.UserEmail = emailutil.Normalize(r.UserEmail)
	r.ParticipantName = strings.TrimSpace(r.ParticipantName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.EmergencyContact = strings.TrimSpace(r.EmergencyContact)
}

func (r *CreateRegistrationRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateRegistrationRequest) details() models.Details {
	return models.Details{
		CampName:               r.CampName,
		Fee:                    r.Fee,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		ParticipantName:        r.ParticipantName,
		Age:                    r.Age,
		Phone:                  r.Phone,
		Gender:                 r.Gender,
		EmergencyContact:       r.EmergencyContact,
	}
}

// PaymentIntentRequest is the body of POST /create-payment-intent. Price may
// be a JSON number or a numeric string.
type PaymentIntentRequest struct {
	Price json.RawMessage `json:"price"`
}

// PriceText returns the price as text for parsing: numbers verbatim, strings
// unquoted, anything else as-is so the parser rejects it.
func (r *PaymentIntentRequest) PriceText() string {
	raw := strings.TrimSpace(string(r.Price))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(r.Price, &s); err == nil {
			return s
		}
	}
	return raw
}

// PaymentIntentResponse carries the client secret handed to the browser.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CompletePaymentRequest is the body of POST /payments. CampID is matched
// against registration ids.
type CompletePaymentRequest struct {
	CampID        string     `json:"campId" validate:"required"`
	TransactionID string     `json:"transactionId" validate:"required"`
	Amount        *float64   `json:"amount"`
	Price         *float64   `json:"price"`
	Email         string     `json:"email"`
	Date          *time.Time `json:"date"`
}

func (r *CompletePaymentRequest) Normalize() {
	r.CampID = strings.TrimSpace(r.CampID)
	r.TransactionID = strings.TrimSpace(r.TransactionID)
	r.Email = emailutil.Normalize(r.Email)
	if r.Amount == nil {
		r.Amount = r.Price
	}
}

func (r *CompletePaymentRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Amount != nil && *r.Amount < 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must not be negative")
	}
	return nil
}

func (r *CompletePaymentRequest) payment() paymentModels.Payment {
	p := paymentModels.Payment{
		CampID:        r.CampID,
		TransactionID: r.TransactionID,
		Email:         r.Email,
	}
	if r.Amount != nil {
		p.Amount = *r.Amount
	}
	if r.Date != nil {
		p.Date = r.Date.UTC()
	}
	return p
}
