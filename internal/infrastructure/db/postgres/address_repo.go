package postgres

import (
	"context"
	"database/sql"

	"github.com/avercheq/taskhive/internal/domain"
)

type AddressRepo struct {
	db *sql.DB
}

func NewAddressRepo(db *sql.DB) *AddressRepo {
	return &AddressRepo{db: db}
}

const addressColumns = `id, city, state, country, postal_code`

func toDomainAddress(ar addressRow) domain.Address {
	return domain.Address{
		ID:         ar.ID,
		City:       ar.City,
		State:      ar.State,
		Country:    ar.Country,
		PostalCode: ar.PostalCode,
	}
}

func (r *AddressRepo) GetByID(ctx context.Context, id int64) (domain.Address, error) {
	const q = `
SELECT ` + addressColumns + `
FROM addresses
WHERE id = $1
LIMIT 1;
`
	var ar addressRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&ar.ID, &ar.City, &ar.State, &ar.Country, &ar.PostalCode,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.Address{}, domain.ErrAddressNotFound()
		}
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}
	return toDomainAddress(ar), nil
}

// CreateForUser inserts the address and points the user's address_id at it
// inside one transaction, so a failed link never leaves an orphan row.
func (r *AddressRepo) CreateForUser(ctx context.Context, a domain.Address, userID int64) (domain.Address, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}
	defer tx.Rollback()

	const insertQ = `
INSERT INTO addresses (city, state, country, postal_code)
VALUES ($1,$2,$3,$4)
RETURNING id;
`
	err = tx.QueryRowContext(ctx, insertQ,
		a.City, a.State, a.Country, a.PostalCode,
	).Scan(&a.ID)
	if err != nil {
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}

	const linkQ = `
UPDATE users
SET address_id = $2
WHERE id = $1;
`
	res, err := tx.ExecContext(ctx, linkQ, userID, a.ID)
	if err != nil {
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.Address{}, domain.ErrUserNotFound()
	}

	if err := tx.Commit(); err != nil {
		return domain.Address{}, domain.ErrDBUnavailable(err)
	}
	return a, nil
}
