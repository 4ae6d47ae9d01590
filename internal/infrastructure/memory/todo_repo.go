package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/avercheq/taskhive/internal/domain"
)

// UserLookup resolves owner summaries for todo reads, mirroring the join the
// SQL store performs.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

type TodoRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.Todo

	users UserLookup
}

func NewTodoRepo(users UserLookup) *TodoRepo {
	return &TodoRepo{
		nextID: 1,
		byID:   make(map[int64]domain.Todo),
		users:  users,
	}
}

func (r *TodoRepo) withOwner(ctx context.Context, t domain.Todo) (domain.TodoWithOwner, error) {
	u, err := r.users.GetByID(ctx, t.OwnerID)
	if err != nil {
		return domain.TodoWithOwner{}, err
	}
	return domain.TodoWithOwner{
		Todo: t,
		Owner: domain.UserSummary{
			ID:       u.ID,
			Email:    u.Email,
			Username: u.Username,
		},
	}, nil
}

func (r *TodoRepo) snapshot(filter func(domain.Todo) bool) []domain.Todo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Todo{}
	for _, t := range r.byID {
		if filter(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---------- todo.TodoRepo ----------

func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoWithOwner, error) {
	todos := r.snapshot(func(t domain.Todo) bool { return t.OwnerID == ownerID })

	out := []domain.TodoWithOwner{}
	for _, t := range todos {
		tw, err := r.withOwner(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, tw)
	}
	return out, nil
}

func (r *TodoRepo) GetForOwner(ctx context.Context, todoID, ownerID int64) (domain.TodoWithOwner, error) {
	r.mu.RLock()
	t, ok := r.byID[todoID]
	r.mu.RUnlock()

	if !ok || t.OwnerID != ownerID {
		return domain.TodoWithOwner{}, domain.ErrTodoNotFound()
	}
	return r.withOwner(ctx, t)
}

func (r *TodoRepo) Create(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.byID[t.ID] = t
	return t, nil
}

func (r *TodoRepo) UpdateForOwner(ctx context.Context, t domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return domain.ErrTodoNotFound()
	}
	r.byID[t.ID] = t
	return nil
}

func (r *TodoRepo) DeleteForOwner(ctx context.Context, todoID, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[todoID]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTodoNotFound()
	}
	delete(r.byID, todoID)
	return nil
}

// ---------- admin.TodoRepo ----------

func (r *TodoRepo) ListAll(ctx context.Context) ([]domain.TodoWithOwner, error) {
	todos := r.snapshot(func(domain.Todo) bool { return true })

	out := []domain.TodoWithOwner{}
	for _, t := range todos {
		tw, err := r.withOwner(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, tw)
	}
	return out, nil
}

func (r *TodoRepo) Delete(ctx context.Context, todoID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[todoID]; !ok {
		return domain.ErrTodoNotFound()
	}
	delete(r.byID, todoID)
	return nil
}
