package memory

import (
	"context"
	"sync"

	"github.com/avercheq/taskhive/internal/domain"
)

// UserLinker lets the address repo point a user at a newly stored address.
type UserLinker interface {
	SetAddressID(ctx context.Context, userID, addressID int64) error
}

type AddressRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.Address

	users UserLinker
}

func NewAddressRepo(users UserLinker) *AddressRepo {
	return &AddressRepo{
		nextID: 1,
		byID:   make(map[int64]domain.Address),
		users:  users,
	}
}

func (r *AddressRepo) GetByID(ctx context.Context, id int64) (domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Address{}, domain.ErrAddressNotFound()
	}
	return a, nil
}

func (r *AddressRepo) CreateForUser(ctx context.Context, a domain.Address, userID int64) (domain.Address, error) {
	r.mu.Lock()
	a.ID = r.nextID
	r.nextID++
	r.byID[a.ID] = a
	r.mu.Unlock()

	if err := r.users.SetAddressID(ctx, userID, a.ID); err != nil {
		r.mu.Lock()
		delete(r.byID, a.ID)
		r.mu.Unlock()
		return domain.Address{}, err
	}
	return a, nil
}
