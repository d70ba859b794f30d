package handler

import (
	"net/mail"
	"strings"

	dErrors "mcms/pkg/domain-errors"
	emailutil "mcms/pkg/email"
)

// CreateUserRequest is the body of POST /users. Any role supplied by the
// client is ignored.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = emailutil.Normalize(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Image = strings.TrimSpace(r.Image)
}

func (r *CreateUserRequest) Validate() error {
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	if len(r.Name) > 200 {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 200 characters")
	}
	return nil
}

// UpdateProfileRequest is the body of PUT /user/profile/{email}.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Image string `json:"image"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Image = strings.TrimSpace(r.Image)
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Phone) > 32 {
		return dErrors.New(dErrors.CodeValidation, "phone must be at most 32 characters")
	}
	return nil
}
