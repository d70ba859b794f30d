package models

import "time"

// Payment is an append-only record of one completed payment. CampID carries
// whatever identifier the client sent; see the registration workflow for how
// it is matched.
type Payment struct {
	ID            string    `json:"_id"`
	CampID        string    `json:"campId"`
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email,omitempty"`
	Date          time.Time `json:"date"`
}

// Intent is the client-usable handle returned by a payment provider.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}
