package todo

import (
	"context"
	"testing"

	"github.com/avercheq/taskhive/internal/domain"
)

type fakeTodoRepo struct {
	nextID int64
	byID   map[int64]domain.Todo
	owners map[int64]domain.UserSummary // ownerID -> summary
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{
		byID:   map[int64]domain.Todo{},
		owners: map[int64]domain.UserSummary{},
	}
}

func (f *fakeTodoRepo) withOwner(t domain.Todo) domain.TodoWithOwner {
	return domain.TodoWithOwner{Todo: t, Owner: f.owners[t.OwnerID]}
}

func (f *fakeTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoWithOwner, error) {
	var out []domain.TodoWithOwner
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			out = append(out, f.withOwner(t))
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) GetForOwner(ctx context.Context, todoID, ownerID int64) (domain.TodoWithOwner, error) {
	t, ok := f.byID[todoID]
	if !ok || t.OwnerID != ownerID {
		return domain.TodoWithOwner{}, domain.ErrTodoNotFound()
	}
	return f.withOwner(t), nil
}

func (f *fakeTodoRepo) Create(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	f.nextID++
	t.ID = f.nextID
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTodoRepo) UpdateForOwner(ctx context.Context, t domain.Todo) error {
	cur, ok := f.byID[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return domain.ErrTodoNotFound()
	}
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTodoRepo) DeleteForOwner(ctx context.Context, todoID, ownerID int64) error {
	t, ok := f.byID[todoID]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTodoNotFound()
	}
	delete(f.byID, todoID)
	return nil
}

type fakeUserReader struct {
	byID map[int64]domain.User
}

func (f *fakeUserReader) GetByID(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func newSvcForTest(t *testing.T) (*Service, *fakeTodoRepo) {
	t.Helper()

	todos := newFakeTodoRepo()
	users := &fakeUserReader{byID: map[int64]domain.User{
		1: {ID: 1, Email: "michael.jordan@gmail.com", Username: "michael"},
		2: {ID: 2, Email: "scottie.pippen@gmail.com", Username: "scottie"},
	}}
	todos.owners[1] = domain.UserSummary{ID: 1, Email: "michael.jordan@gmail.com", Username: "michael"}
	todos.owners[2] = domain.UserSummary{ID: 2, Email: "scottie.pippen@gmail.com", Username: "scottie"}
	return NewService(todos, users), todos
}

func validInput() Input {
	return Input{Title: "Buy milk", Description: "Lactose free", Priority: 3}
}

func TestCreate_Valid_AssignsOwnerAndSummary(t *testing.T) {
	t.Parallel()

	svc, _ := newSvcForTest(t)

	got, err := svc.Create(context.Background(), 1, validInput())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got.Todo.OwnerID != 1 {
		t.Fatalf("expected owner 1, got %d", got.Todo.OwnerID)
	}
	if got.Owner.Username != "michael" {
		t.Fatalf("expected owner summary, got %+v", got.Owner)
	}
}

func TestCreate_TitleWithoutLetters_Rejected(t *testing.T) {
	t.Parallel()

	svc, _ := newSvcForTest(t)

	in := validInput()
	in.Title = "12345 !!!"

	if _, err := svc.Create(context.Background(), 1, in); !domain.Is(err, "invalid_field") {
		t.Fatalf("expected invalid_field, got %v", err)
	}
}

func TestGet_NotOwned_ReportsNotFound(t *testing.T) {
	t.Parallel()

	svc, todos := newSvcForTest(t)
	created, _ := todos.Create(context.Background(), domain.Todo{Title: "Secret", OwnerID: 2})

	_, err := svc.Get(context.Background(), 1, created.ID)
	if !domain.Is(err, "todo_not_found") {
		t.Fatalf("foreign todos must look like missing todos, got %v", err)
	}
}

func TestList_OnlyOwnTodos(t *testing.T) {
	t.Parallel()

	svc, todos := newSvcForTest(t)
	_, _ = todos.Create(context.Background(), domain.Todo{Title: "Mine", OwnerID: 1})
	_, _ = todos.Create(context.Background(), domain.Todo{Title: "Theirs", OwnerID: 2})

	got, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(got) != 1 || got[0].Todo.Title != "Mine" {
		t.Fatalf("expected only own todos, got %+v", got)
	}
}

func TestUpdate_ReplacesAllFields(t *testing.T) {
	t.Parallel()

	svc, todos := newSvcForTest(t)
	created, _ := todos.Create(context.Background(), domain.Todo{
		Title: "Old", Description: "Old desc", Priority: 1, OwnerID: 1,
	})

	err := svc.Update(context.Background(), 1, created.ID, Input{
		Title: "New title", Description: "New desc", Priority: 5, Complete: true,
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	got := todos.byID[created.ID]
	if got.Title != "New title" || got.Priority != 5 || !got.Complete {
		t.Fatalf("expected full replace, got %+v", got)
	}
}

func TestUpdate_NotOwned_ReportsNotFound(t *testing.T) {
	t.Parallel()

	svc, todos := newSvcForTest(t)
	created, _ := todos.Create(context.Background(), domain.Todo{Title: "Theirs", Description: "x", Priority: 1, OwnerID: 2})

	err := svc.Update(context.Background(), 1, created.ID, validInput())
	if !domain.Is(err, "todo_not_found") {
		t.Fatalf("expected todo_not_found, got %v", err)
	}
}

func TestDelete_OwnedAndForeign(t *testing.T) {
	t.Parallel()

	svc, todos := newSvcForTest(t)
	mine, _ := todos.Create(context.Background(), domain.Todo{Title: "Mine", OwnerID: 1})
	theirs, _ := todos.Create(context.Background(), domain.Todo{Title: "Theirs", OwnerID: 2})

	if err := svc.Delete(context.Background(), 1, mine.ID); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, theirs.ID); !domain.Is(err, "todo_not_found") {
		t.Fatalf("expected todo_not_found, got %v", err)
	}
	if _, ok := todos.byID[theirs.ID]; !ok {
		t.Fatalf("foreign todo must not be deleted")
	}
}
