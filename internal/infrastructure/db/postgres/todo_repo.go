package postgres

import (
	"context"
	"database/sql"

	"github.com/avercheq/taskhive/internal/domain"
)

type TodoRepo struct {
	db *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

// Reads join the owner so list and detail responses carry the owner summary
// without a second round trip.
const todoSelect = `
SELECT t.id, t.title, t.description, t.priority, t.complete, t.owner_id,
       u.email, u.username
FROM todos t
JOIN users u ON u.id = t.owner_id
`

func scanTodo(scan func(dest ...any) error) (todoRow, error) {
	var tr todoRow
	err := scan(
		&tr.ID,
		&tr.Title,
		&tr.Description,
		&tr.Priority,
		&tr.Complete,
		&tr.OwnerID,
		&tr.OwnerEmail,
		&tr.OwnerUsername,
	)
	return tr, err
}

func toDomainTodo(tr todoRow) domain.TodoWithOwner {
	return domain.TodoWithOwner{
		Todo: domain.Todo{
			ID:          tr.ID,
			Title:       tr.Title,
			Description: tr.Description,
			Priority:    tr.Priority,
			Complete:    tr.Complete,
			OwnerID:     tr.OwnerID,
		},
		Owner: domain.UserSummary{
			ID:       tr.OwnerID,
			Email:    tr.OwnerEmail,
			Username: tr.OwnerUsername,
		},
	}
}

func (r *TodoRepo) collect(rows *sql.Rows) ([]domain.TodoWithOwner, error) {
	defer rows.Close()

	out := []domain.TodoWithOwner{}
	for rows.Next() {
		tr, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, toDomainTodo(tr))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// ---------- todo.TodoRepo ----------

func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoWithOwner, error) {
	const q = todoSelect + `
WHERE t.owner_id = $1
ORDER BY t.id;
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return r.collect(rows)
}

// GetForOwner hides rows owned by someone else behind the same not-found as
// missing rows.
func (r *TodoRepo) GetForOwner(ctx context.Context, todoID, ownerID int64) (domain.TodoWithOwner, error) {
	const q = todoSelect + `
WHERE t.id = $1 AND t.owner_id = $2
LIMIT 1;
`
	tr, err := scanTodo(r.db.QueryRowContext(ctx, q, todoID, ownerID).Scan)
	if err != nil {
		if isNoRows(err) {
			return domain.TodoWithOwner{}, domain.ErrTodoNotFound()
		}
		return domain.TodoWithOwner{}, domain.ErrDBUnavailable(err)
	}
	return toDomainTodo(tr), nil
}

func (r *TodoRepo) Create(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	const q = `
INSERT INTO todos (title, description, priority, complete, owner_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q,
		t.Title, t.Description, t.Priority, t.Complete, t.OwnerID,
	).Scan(&t.ID)
	if err != nil {
		return domain.Todo{}, domain.ErrDBUnavailable(err)
	}
	return t, nil
}

func (r *TodoRepo) UpdateForOwner(ctx context.Context, t domain.Todo) error {
	const q = `
UPDATE todos
SET title = $3,
    description = $4,
    priority = $5,
    complete = $6
WHERE id = $1 AND owner_id = $2;
`
	res, err := r.db.ExecContext(ctx, q,
		t.ID, t.OwnerID, t.Title, t.Description, t.Priority, t.Complete,
	)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrTodoNotFound()
	}
	return nil
}

func (r *TodoRepo) DeleteForOwner(ctx context.Context, todoID, ownerID int64) error {
	const q = `
DELETE FROM todos
WHERE id = $1 AND owner_id = $2;
`
	res, err := r.db.ExecContext(ctx, q, todoID, ownerID)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrTodoNotFound()
	}
	return nil
}

// ---------- admin.TodoRepo ----------

func (r *TodoRepo) ListAll(ctx context.Context) ([]domain.TodoWithOwner, error) {
	const q = todoSelect + `
ORDER BY t.id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return r.collect(rows)
}

func (r *TodoRepo) Delete(ctx context.Context, todoID int64) error {
	const q = `
DELETE FROM todos
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, todoID)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrTodoNotFound()
	}
	return nil
}
