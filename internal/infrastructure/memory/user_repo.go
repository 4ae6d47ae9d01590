package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/avercheq/taskhive/internal/domain"
)

// UserRepo is the in-memory user store used by handler tests and the dev
// fallback when no database is configured.
type UserRepo struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]domain.User
	byEmail    map[string]int64
	byUsername map[string]int64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID:     1,
		byID:       make(map[int64]domain.User),
		byEmail:    make(map[string]int64),
		byUsername: make(map[string]int64),
	}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := r.byEmail[email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return domain.User{}, domain.ErrUsernameAlreadyExists()
	}

	u.ID = r.nextID
	u.Email = email
	r.nextID++

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.byUsername[u.Username] = u.ID
	return u, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	r.byID[userID] = u
	return nil
}

// SetAddressID links a stored address to the user. Used by the address repo's
// two-step create.
func (r *UserRepo) SetAddressID(ctx context.Context, userID, addressID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.AddressID = &addressID
	r.byID[userID] = u
	return nil
}
