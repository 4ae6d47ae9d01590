package admin

import (
	"context"

	"github.com/avercheq/taskhive/internal/domain"
)

// TodoRepo is the unscoped persistence port: admin reads and deletes cross
// every owner. The role gate lives in the HTTP middleware, not here.
type TodoRepo interface {
	ListAll(ctx context.Context) ([]domain.TodoWithOwner, error)
	Delete(ctx context.Context, todoID int64) error
}

type Service struct {
	todos TodoRepo
}

func NewService(todos TodoRepo) *Service {
	return &Service{todos: todos}
}

// ListAll returns every todo across all users.
func (s *Service) ListAll(ctx context.Context) ([]domain.TodoWithOwner, error) {
	return s.todos.ListAll(ctx)
}

// Delete removes any user's todo by id; absent ids report not found.
func (s *Service) Delete(ctx context.Context, todoID int64) error {
	return s.todos.Delete(ctx, todoID)
}
