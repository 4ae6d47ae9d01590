package auth

import (
	"context"

	"github.com/avercheq/taskhive/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth flows need, not HOW it's stored.
*/
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies bearer access tokens (JWT).
Used by the login flow and the auth middleware.
*/
type TokenClaims struct {
	Username string
	UserID   int64
	Role     string
}

type TokenSigner interface {
	Sign(username string, userID int64, role string) (string, error)
	Verify(token string) (TokenClaims, error)
}
