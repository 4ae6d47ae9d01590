package address

import (
	"context"

	"github.com/avercheq/taskhive/internal/domain"
)

// AddressRepo persists addresses. CreateForUser performs the two-step write
// (insert address, point user.address_id at it) atomically.
type AddressRepo interface {
	CreateForUser(ctx context.Context, a domain.Address, userID int64) (domain.Address, error)
}

type Service struct {
	addresses AddressRepo
}

func NewService(addresses AddressRepo) *Service {
	return &Service{addresses: addresses}
}

// Input carries raw user-supplied address fields; the postal code is
// optional.
type Input struct {
	City       string
	State      string
	Country    string
	PostalCode *string
}

func (in Input) validate() error {
	if err := domain.ValidateCity(in.City); err != nil {
		return err
	}
	if err := domain.ValidateState(in.State); err != nil {
		return err
	}
	if err := domain.ValidateCountry(in.Country); err != nil {
		return err
	}
	if in.PostalCode != nil {
		return domain.ValidatePostalCode(*in.PostalCode)
	}
	return nil
}

// Create validates the address, persists it and links it to the caller's
// user row.
func (s *Service) Create(ctx context.Context, userID int64, in Input) (domain.Address, error) {
	if err := in.validate(); err != nil {
		return domain.Address{}, err
	}

	return s.addresses.CreateForUser(ctx, domain.Address{
		City:       in.City,
		State:      in.State,
		Country:    in.Country,
		PostalCode: in.PostalCode,
	}, userID)
}
