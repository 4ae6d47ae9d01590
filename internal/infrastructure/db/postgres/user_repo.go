package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avercheq/taskhive/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const userColumns = `id, email, username, password_hash, is_active, role, first_name, last_name, phone_number, address_id`

func scanUser(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.Username,
		&ur.PasswordHash,
		&ur.IsActive,
		&ur.Role,
		&ur.FirstName,
		&ur.LastName,
		&ur.PhoneNumber,
		&ur.AddressID,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		Username:     ur.Username,
		PasswordHash: ur.PasswordHash,
		IsActive:     ur.IsActive,
		Role:         domain.Role(ur.Role),
		FirstName:    ur.FirstName,
		LastName:     ur.LastName,
		PhoneNumber:  ur.PhoneNumber,
		AddressID:    ur.AddressID,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// duplicateTarget reports which unique constraint a 23505 violation hit,
// "" when the error is not a duplicate at all.
func duplicateTarget(err error) string {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate") && !strings.Contains(msg, "unique") {
		return ""
	}
	if strings.Contains(msg, "username") {
		return "username"
	}
	return "email"
}

// ---------- auth.UserRepo / user.UserRepo ----------

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1
LIMIT 1;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, username))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.Username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	const q = `
INSERT INTO users (email, username, password_hash, is_active, role, first_name, last_name, phone_number)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + userColumns + `;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.Email, u.Username, u.PasswordHash, u.IsActive, string(u.Role),
		u.FirstName, u.LastName, u.PhoneNumber,
	))
	if err != nil {
		switch duplicateTarget(err) {
		case "username":
			return domain.User{}, domain.ErrUsernameAlreadyExists()
		case "email":
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, newHash)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
