package models

import (
	"time"
)

// EndpointClass groups endpoints that share a request budget.
type EndpointClass string

const (
	// ClassAuth covers account creation and token issuance.
	ClassAuth EndpointClass = "auth"
	// ClassWrite covers public mutations: registrations, payments, feedback.
	ClassWrite EndpointClass = "write"
)

func (c EndpointClass) IsValid() bool {
	return c == ClassAuth || c == ClassWrite
}

// Limit is a request budget per fixed window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// RateLimitResult is the outcome of one bucket check.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, set when Allowed is false
}
