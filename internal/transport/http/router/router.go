package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avercheq/taskhive/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Token(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type TodoHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AddressHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListTodos(w http.ResponseWriter, r *http.Request)
	DeleteTodo(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Auth    AuthHandler
	User    UserHandler
	Todo    TodoHandler
	Address AddressHandler
	Admin   AdminHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler
	// RateMW throttles the credential endpoints; nil disables throttling.
	RateMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.User == nil {
		return nil, fmt.Errorf("nil User handler")
	}
	if deps.Todo == nil {
		return nil, fmt.Errorf("nil Todo handler")
	}
	if deps.Address == nil {
		return nil, fmt.Errorf("nil Address handler")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("nil Admin handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}
	if deps.RateMW == nil {
		deps.RateMW = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/auth", func(r chi.Router) {
		r.Use(deps.RateMW)
		r.Post("/", deps.Auth.Register)
		r.Post("/token", deps.Auth.Token)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Get("/me", deps.User.Me)
		r.Put("/reset-password", deps.User.ChangePassword)
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Get("/", deps.Todo.List)
		r.Post("/", deps.Todo.Create)
		r.Get("/{id}", deps.Todo.Get)
		r.Put("/{id}", deps.Todo.Update)
		r.Delete("/{id}", deps.Todo.Delete)
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Post("/", deps.Address.Create)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Use(deps.AdminMW)
		r.Get("/todos", deps.Admin.ListTodos)
		r.Delete("/todos/{id}", deps.Admin.DeleteTodo)
	})

	return r, nil
}
