package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/avercheq/taskhive/internal/application/auth"
	"github.com/avercheq/taskhive/internal/domain"
	"github.com/avercheq/taskhive/internal/infrastructure/redis"
	"github.com/avercheq/taskhive/internal/transport/http/response"
)

// ---- fakes ----

type fakeVerifier struct {
	claims auth.TokenClaims
	err    error
	gotTok string
}

func (f *fakeVerifier) Verify(token string) (auth.TokenClaims, error) {
	f.gotTok = token
	return f.claims, f.err
}

type nextRecorder struct {
	calls   int
	gotUID  int64
	gotRole string
}

func (n *nextRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.calls++
	n.gotUID, _ = UserIDFromContext(r.Context())
	n.gotRole, _ = RoleFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func runAuthMW(t *testing.T, verifier TokenVerifier, req *http.Request) (*httptest.ResponseRecorder, *nextRecorder) {
	t.Helper()

	rr := httptest.NewRecorder()
	nx := &nextRecorder{}
	Auth(verifier, response.WriteError)(nx).ServeHTTP(rr, req)
	return rr, nx
}

// ---- Auth ----

func TestAuth_NoHeader_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
	rr, nx := runAuthMW(t, &fakeVerifier{}, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if nx.calls != 0 {
		t.Fatalf("next should not run")
	}
}

func TestAuth_WrongScheme_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
	req.Header.Set("Authorization", "Basic abc")

	rr, _ := runAuthMW(t, &fakeVerifier{}, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_EmptyBearerToken_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
	req.Header.Set("Authorization", "Bearer   ")

	rr, _ := runAuthMW(t, &fakeVerifier{}, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_VerifierRejects_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	v := &fakeVerifier{err: domain.ErrTokenExpired()}
	rr, _ := runAuthMW(t, v, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if v.gotTok != "bad-token" {
		t.Fatalf("verifier got %q", v.gotTok)
	}
}

func TestAuth_ValidToken_InjectsIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	v := &fakeVerifier{claims: auth.TokenClaims{Username: "michael_s", UserID: 7, Role: "admin"}}
	rr, nx := runAuthMW(t, v, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if nx.gotUID != 7 || nx.gotRole != "admin" {
		t.Fatalf("context not injected: uid=%d role=%q", nx.gotUID, nx.gotRole)
	}
}

func TestAuth_ClaimsWithoutIdentity_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
	req.Header.Set("Authorization", "Bearer t")

	v := &fakeVerifier{claims: auth.TokenClaims{Username: "", UserID: 0}}
	rr, _ := runAuthMW(t, v, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

// ---- RequireRole ----

func TestRequireRole_AdminPasses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/todos", nil)
	req = req.WithContext(WithUser(req.Context(), 1, "root_admin", "admin"))

	rr := httptest.NewRecorder()
	nx := &nextRecorder{}
	RequireRole(domain.RoleAdmin, response.WriteError)(nx).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || nx.calls != 1 {
		t.Fatalf("admin should pass, got %d", rr.Code)
	}
}

func TestRequireRole_UserBlocked_403(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/todos", nil)
	req = req.WithContext(WithUser(req.Context(), 2, "plain_user", "user"))

	rr := httptest.NewRecorder()
	nx := &nextRecorder{}
	RequireRole(domain.RoleAdmin, response.WriteError)(nx).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if nx.calls != 0 {
		t.Fatalf("next should not run")
	}
}

func TestRequireRole_NoIdentity_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/todos", nil)

	rr := httptest.NewRecorder()
	RequireRole(domain.RoleAdmin, response.WriteError)(&nextRecorder{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

// ---- RequestID ----

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	var seen string
	RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = response.RequestIDFromContext(r)
	})).ServeHTTP(rr, req)

	if seen == "" {
		t.Fatalf("expected request id in context")
	}
	if rr.Header().Get(HeaderXRequestID) != seen {
		t.Fatalf("response header should echo the id")
	}
}

func TestRequestID_PropagatesInbound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderXRequestID, "rid-42")
	rr := httptest.NewRecorder()

	RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	if rr.Header().Get(HeaderXRequestID) != "rid-42" {
		t.Fatalf("expected inbound id echoed, got %q", rr.Header().Get(HeaderXRequestID))
	}
}

// ---- RateLimitFixedWindow ----

func TestRateLimit_NilLimiter_Allows(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	rr := httptest.NewRecorder()
	nx := &nextRecorder{}

	RateLimitFixedWindow(nil, FixedWindowConfig{RouteKey: "login", Limit: 1, Window: time.Minute}, response.WriteError)(nx).
		ServeHTTP(rr, req)

	if nx.calls != 1 {
		t.Fatalf("nil limiter should pass through")
	}
}

func TestRateLimit_BlocksOverBudget(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := redis.NewFixedWindowLimiter(redis.New(mr.Addr(), "", 0))

	mw := RateLimitFixedWindow(limiter, FixedWindowConfig{RouteKey: "login", Limit: 2, Window: time.Minute}, response.WriteError)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("hit %d should pass, got %d", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestRateLimit_DistinctIPsIndependent(t *testing.T) {
	mr := miniredis.RunT(t)
	limiter := redis.NewFixedWindowLimiter(redis.New(mr.Addr(), "", 0))

	handler := RateLimitFixedWindow(limiter, FixedWindowConfig{RouteKey: "register", Limit: 1, Window: time.Minute}, response.WriteError)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	reqA := httptest.NewRequest(http.MethodPost, "/auth/", nil)
	reqA.RemoteAddr = "1.1.1.1:1111"
	reqB := httptest.NewRequest(http.MethodPost, "/auth/", nil)
	reqB.RemoteAddr = "2.2.2.2:2222"

	rrA := httptest.NewRecorder()
	handler.ServeHTTP(rrA, reqA)
	rrB := httptest.NewRecorder()
	handler.ServeHTTP(rrB, reqB)

	if rrA.Code != http.StatusOK || rrB.Code != http.StatusOK {
		t.Fatalf("independent ips should each get their own window: %d %d", rrA.Code, rrB.Code)
	}
}
