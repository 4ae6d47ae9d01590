package dto

import (
	"strings"

	"github.com/avercheq/taskhive/internal/domain"
)

// Request DTOs check field presence only; format rules live in the domain
// validators so services stay the single source of truth.

// -------- Auth --------

type RegisterRequest struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Role        string  `json:"role,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return domain.ErrMissingField("email")
	}
	if r.Username == "" {
		return domain.ErrMissingField("username")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return domain.ErrMissingField("username")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

// -------- Password change (authenticated) --------

type PasswordChangeRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

func (r *PasswordChangeRequest) Validate() error {
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	if r.NewPassword == "" {
		return domain.ErrMissingField("new_password")
	}
	return nil
}

// -------- Todos --------

type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

func (r *TodoRequest) Validate() error {
	if r.Title == "" {
		return domain.ErrMissingField("title")
	}
	if r.Description == "" {
		return domain.ErrMissingField("description")
	}
	if r.Priority == 0 {
		return domain.ErrMissingField("priority")
	}
	return nil
}

// -------- Addresses --------

type AddressRequest struct {
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code,omitempty"`
}

func (r *AddressRequest) Validate() error {
	if r.City == "" {
		return domain.ErrMissingField("city")
	}
	if r.State == "" {
		return domain.ErrMissingField("state")
	}
	if r.Country == "" {
		return domain.ErrMissingField("country")
	}
	return nil
}
