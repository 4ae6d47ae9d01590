package dto

import (
	"github.com/avercheq/taskhive/internal/application/auth"
	"github.com/avercheq/taskhive/internal/application/user"
	"github.com/avercheq/taskhive/internal/domain"
)

// -------- Users --------

type UserView struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	IsActive    bool    `json:"is_active"`
	Role        string  `json:"role"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		IsActive:    u.IsActive,
		Role:        string(u.Role),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
	}
}

// OwnerView is the compact owner projection embedded in todo payloads.
type OwnerView struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// -------- Todos --------

type TodoView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Complete    bool      `json:"complete"`
	Owner       OwnerView `json:"owner"`
}

func NewTodoView(tw domain.TodoWithOwner) TodoView {
	return TodoView{
		ID:          tw.Todo.ID,
		Title:       tw.Todo.Title,
		Description: tw.Todo.Description,
		Priority:    tw.Todo.Priority,
		Complete:    tw.Todo.Complete,
		Owner: OwnerView{
			ID:       tw.Owner.ID,
			Email:    tw.Owner.Email,
			Username: tw.Owner.Username,
		},
	}
}

func NewTodoViews(tws []domain.TodoWithOwner) []TodoView {
	out := make([]TodoView, 0, len(tws))
	for _, tw := range tws {
		out = append(out, NewTodoView(tw))
	}
	return out
}

// -------- Addresses --------

type AddressView struct {
	ID         int64   `json:"id"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code,omitempty"`
}

func NewAddressView(a domain.Address) AddressView {
	return AddressView{
		ID:         a.ID,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// -------- Tokens --------

type TokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "bearer"
}

func NewTokenView(t auth.Token) TokenView {
	return TokenView{AccessToken: t.AccessToken, TokenType: t.TokenType}
}

// -------- Composite payloads --------

// ProfileData is returned by /users/me: the account, its todos and the
// linked address if one exists.
type ProfileData struct {
	User    UserView     `json:"user"`
	Todos   []TodoView   `json:"todos"`
	Address *AddressView `json:"address,omitempty"`
}

func NewProfileData(p user.Profile) ProfileData {
	d := ProfileData{
		User:  NewUserView(p.User),
		Todos: NewTodoViews(p.Todos),
	}
	if p.Address != nil {
		av := NewAddressView(*p.Address)
		d.Address = &av
	}
	return d
}
