package auth

import (
	"context"
	"strings"

	"github.com/avercheq/taskhive/internal/domain"
)

// Login authenticates a user by username and password and issues a bearer
// token. Unknown username and wrong password produce the same error so the
// response does not leak which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Hide not-found behind invalid credentials.
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	access, err := s.signer.Sign(u.Username, u.ID, string(u.Role))
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		User:  u,
		Token: Token{AccessToken: access, TokenType: "bearer"},
	}, nil
}
