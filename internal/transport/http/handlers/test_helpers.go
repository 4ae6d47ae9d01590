package http_handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avercheq/taskhive/internal/application/address"
	"github.com/avercheq/taskhive/internal/application/admin"
	"github.com/avercheq/taskhive/internal/application/auth"
	"github.com/avercheq/taskhive/internal/application/todo"
	"github.com/avercheq/taskhive/internal/application/user"
	"github.com/avercheq/taskhive/internal/domain"
	"github.com/avercheq/taskhive/internal/infrastructure/memory"
	"github.com/avercheq/taskhive/internal/infrastructure/security"
	"github.com/avercheq/taskhive/internal/transport/http/middleware"
	"github.com/avercheq/taskhive/internal/transport/http/response"
	"github.com/avercheq/taskhive/internal/transport/http/router"
)

// testServer wires the real router over in-memory stores. Handler tests run
// the same middleware chain production does.
type testServer struct {
	handler http.Handler
	users   *memory.UserRepo
	todos   *memory.TodoRepo
	signer  *security.JWTSigner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := memory.NewUserRepo()
	todos := memory.NewTodoRepo(users)
	addresses := memory.NewAddressRepo(users)

	hasher := security.NewBcryptHasher(4) // cheapest cost: tests hash a lot
	signer, err := security.NewJWTSigner("test-secret", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}

	authSvc := auth.NewService(users, hasher, signer)
	userSvc := user.NewService(users, todos, addresses, hasher)
	todoSvc := todo.NewService(todos, users)
	addrSvc := address.NewService(addresses)
	adminSvc := admin.NewService(todos)

	h, err := router.New(router.Deps{
		Health:  NewHealthHandler(nil),
		Auth:    NewAuthHandler(authSvc),
		User:    NewUserHandler(userSvc),
		Todo:    NewTodoHandler(todoSvc),
		Address: NewAddressHandler(addrSvc),
		Admin:   NewAdminHandler(adminSvc),
		AuthMW:  middleware.Auth(signer, response.WriteError),
		AdminMW: middleware.RequireRole(domain.RoleAdmin, response.WriteError),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	return &testServer{handler: h, users: users, todos: todos, signer: signer}
}

func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// mustReadData decodes the {"data": ...} envelope into out.
func mustReadData(t *testing.T, r io.Reader, out any) {
	t.Helper()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	wrapped := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.Data) == 0 {
		t.Fatalf("decode envelope failed; body=%s", string(raw))
	}
	if err := json.Unmarshal(wrapped.Data, out); err != nil {
		t.Fatalf("decode data failed; body=%s err=%v", string(raw), err)
	}
}

func errCodeFromBody(t *testing.T, r io.Reader) string {
	t.Helper()

	var body response.ErrorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

type registerOpts struct {
	role string
}

// registerAndLogin provisions an account through the real endpoints and
// returns its id and a bearer token.
func (s *testServer) registerAndLogin(t *testing.T, username, email string, opts registerOpts) (int64, string) {
	t.Helper()

	payload := map[string]any{
		"email":    email,
		"username": username,
		"password": "P@ssw0rd1",
	}
	if opts.role != "" {
		payload["role"] = opts.role
	}

	rr := s.do(t, http.MethodPost, "/auth/", "", mustJSONBody(t, payload))
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d body=%s", username, rr.Code, rr.Body.String())
	}

	var u struct {
		ID int64 `json:"id"`
	}
	mustReadData(t, rr.Body, &u)

	rr = s.do(t, http.MethodPost, "/auth/token", "", mustJSONBody(t, map[string]string{
		"username": username,
		"password": "P@ssw0rd1",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("login %s: expected 201, got %d body=%s", username, rr.Code, rr.Body.String())
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	mustReadData(t, rr.Body, &tok)
	if tok.AccessToken == "" {
		t.Fatalf("empty access token")
	}
	return u.ID, tok.AccessToken
}

func (s *testServer) createTodo(t *testing.T, token, title string) int64 {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/todos/", token, mustJSONBody(t, map[string]any{
		"title":       title,
		"description": "test item",
		"priority":    3,
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create todo: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var tv struct {
		ID int64 `json:"id"`
	}
	mustReadData(t, rr.Body, &tv)
	return tv.ID
}
