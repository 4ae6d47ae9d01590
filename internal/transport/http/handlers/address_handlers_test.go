package http_handlers

import (
	"net/http"
	"testing"
)

func TestAddress_Create_201_ThenVisibleOnProfile(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "michael_s", "michael@example.com", registerOpts{})

	rr := s.do(t, http.MethodPost, "/addresses/", token, mustJSONBody(t, map[string]any{
		"city":        "Kyiv",
		"state":       "Kyiv Oblast",
		"country":     "Ukraine",
		"postal_code": "01001",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var av struct {
		ID   int64  `json:"id"`
		City string `json:"city"`
	}
	mustReadData(t, rr.Body, &av)
	if av.ID == 0 || av.City != "Kyiv" {
		t.Fatalf("unexpected address view: %+v", av)
	}

	rr = s.do(t, http.MethodGet, "/users/me", token, nil)
	var p struct {
		Address *struct {
			ID         int64   `json:"id"`
			PostalCode *string `json:"postal_code"`
		} `json:"address"`
	}
	mustReadData(t, rr.Body, &p)

	if p.Address == nil || p.Address.ID != av.ID {
		t.Fatalf("address not linked to profile: %+v", p.Address)
	}
	if p.Address.PostalCode == nil || *p.Address.PostalCode != "01001" {
		t.Fatalf("postal code lost: %+v", p.Address.PostalCode)
	}
}

func TestAddress_Create_WithoutPostalCode_OK(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "michael_s", "michael@example.com", registerOpts{})

	rr := s.do(t, http.MethodPost, "/addresses/", token, mustJSONBody(t, map[string]any{
		"city":    "Lviv",
		"state":   "Lviv Oblast",
		"country": "UKRAINE", // fully upper is allowed for country
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAddress_Create_ValidationFailures_422(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "michael_s", "michael@example.com", registerOpts{})

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing_city", map[string]any{"state": "Kyiv Oblast", "country": "Ukraine"}},
		{"lowercase_city", map[string]any{"city": "kyiv", "state": "Kyiv Oblast", "country": "Ukraine"}},
		{"lowercase_country", map[string]any{"city": "Kyiv", "state": "Kyiv Oblast", "country": "ukraine"}},
		{"short_postal", map[string]any{"city": "Kyiv", "state": "Kyiv Oblast", "country": "Ukraine", "postal_code": "123"}},
		{"alpha_postal", map[string]any{"city": "Kyiv", "state": "Kyiv Oblast", "country": "Ukraine", "postal_code": "abcde"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, "/addresses/", token, mustJSONBody(t, tc.payload))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAddress_Create_Unauthenticated_401(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/addresses/", "", mustJSONBody(t, map[string]any{
		"city": "Kyiv", "state": "Kyiv Oblast", "country": "Ukraine",
	}))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
