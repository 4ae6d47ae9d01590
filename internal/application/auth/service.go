package auth

import "github.com/avercheq/taskhive/internal/domain"

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
	}
}

// Token is the bearer credential output for handlers/DTO mapping.
type Token struct {
	AccessToken string
	TokenType   string // "bearer"
}

type LoginResult struct {
	User  domain.User
	Token Token
}
