package todo

import (
	"context"

	"github.com/avercheq/taskhive/internal/domain"
)

// TodoRepo is the persistence port for owner-scoped todo access. Every
// *ForOwner method treats rows owned by someone else exactly like missing
// rows.
type TodoRepo interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoWithOwner, error)
	GetForOwner(ctx context.Context, todoID, ownerID int64) (domain.TodoWithOwner, error)
	Create(ctx context.Context, t domain.Todo) (domain.Todo, error)
	UpdateForOwner(ctx context.Context, t domain.Todo) error
	DeleteForOwner(ctx context.Context, todoID, ownerID int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

type Service struct {
	todos TodoRepo
	users UserReader
}

func NewService(todos TodoRepo, users UserReader) *Service {
	return &Service{todos: todos, users: users}
}

// Input carries raw user-supplied todo fields; updates are full-field
// replaces, so create and update share the same shape.
type Input struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

func (in Input) validate() error {
	if err := domain.ValidateTitle(in.Title); err != nil {
		return err
	}
	if err := domain.ValidateDescription(in.Description); err != nil {
		return err
	}
	return domain.ValidatePriority(in.Priority)
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.TodoWithOwner, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, todoID int64) (domain.TodoWithOwner, error) {
	return s.todos.GetForOwner(ctx, todoID, ownerID)
}

func (s *Service) Create(ctx context.Context, ownerID int64, in Input) (domain.TodoWithOwner, error) {
	if err := in.validate(); err != nil {
		return domain.TodoWithOwner{}, err
	}

	created, err := s.todos.Create(ctx, domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     ownerID,
	})
	if err != nil {
		return domain.TodoWithOwner{}, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return domain.TodoWithOwner{}, err
	}

	return domain.TodoWithOwner{
		Todo: created,
		Owner: domain.UserSummary{
			ID:       owner.ID,
			Email:    owner.Email,
			Username: owner.Username,
		},
	}, nil
}

// Update replaces every mutable field of an owned todo.
func (s *Service) Update(ctx context.Context, ownerID, todoID int64, in Input) error {
	if err := in.validate(); err != nil {
		return err
	}

	return s.todos.UpdateForOwner(ctx, domain.Todo{
		ID:          todoID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     ownerID,
	})
}

func (s *Service) Delete(ctx context.Context, ownerID, todoID int64) error {
	return s.todos.DeleteForOwner(ctx, todoID, ownerID)
}
