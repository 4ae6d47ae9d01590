package auth

import (
	"context"

	"github.com/avercheq/taskhive/internal/domain"
)

// RegisterInput carries raw user-supplied registration fields. Optional
// profile fields are pointers: nil means absent and skips validation.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	Role        string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

func (in RegisterInput) validate() error {
	if err := domain.ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := domain.ValidateUsername(in.Username); err != nil {
		return err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return err
	}
	if in.Role != "" {
		if err := domain.ValidateRole(in.Role); err != nil {
			return err
		}
	}
	if in.FirstName != nil {
		if err := domain.ValidateFirstName(*in.FirstName); err != nil {
			return err
		}
	}
	if in.LastName != nil {
		if err := domain.ValidateLastName(*in.LastName); err != nil {
			return err
		}
	}
	if in.PhoneNumber != nil {
		if err := domain.ValidatePhoneNumber(*in.PhoneNumber); err != nil {
			return err
		}
	}
	return nil
}

// Register validates every supplied field, hashes the password and persists
// the user. New accounts are active immediately; the role defaults to "user".
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := in.validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleUser
	}

	u := domain.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		IsActive:     true,
		Role:         role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
	}

	return s.users.Create(ctx, u)
}
