package user

import (
	"context"

	"github.com/avercheq/taskhive/internal/domain"
)

// UserRepo is the persistence port for the current-user flows.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
}

type TodoReader interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoWithOwner, error)
}

type AddressReader interface {
	GetByID(ctx context.Context, id int64) (domain.Address, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Service struct {
	users     UserRepo
	todos     TodoReader
	addresses AddressReader
	hasher    PasswordHasher
}

func NewService(users UserRepo, todos TodoReader, addresses AddressReader, hasher PasswordHasher) *Service {
	return &Service{
		users:     users,
		todos:     todos,
		addresses: addresses,
		hasher:    hasher,
	}
}

// Profile is the full /users/me view: the account plus owned todos and the
// linked address, if any.
type Profile struct {
	User    domain.User
	Todos   []domain.TodoWithOwner
	Address *domain.Address
}

// Me loads the caller's account together with owned todos and the linked
// address.
func (s *Service) Me(ctx context.Context, userID int64) (Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	todos, err := s.todos.ListByOwner(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{User: u, Todos: todos}

	if u.AddressID != nil {
		addr, err := s.addresses.GetByID(ctx, *u.AddressID)
		if err != nil {
			return Profile{}, err
		}
		p.Address = &addr
	}

	return p, nil
}

// ChangePassword re-authenticates the caller with the old password before
// storing the hash of the new one. A mismatch is an auth failure (401), not a
// forbidden: the caller is already authenticated, the re-check failed.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, oldPassword); err != nil {
		return domain.ErrPasswordMismatch()
	}

	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePasswordHash(ctx, userID, newHash)
}
