package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ruzzidanali/smashit/models"
)

func registerPayload(businessName, email string) map[string]interface{} {
	return map[string]interface{}{
		"businessName": businessName,
		"email":        email,
		"password":     "hunter22",
		"state":        "Selangor",
		"city":         "Shah Alam",
	}
}

type authResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Business     struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"business"`
	User struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func TestRegisterLoginMe(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "",
		registerPayload("Ace Court", "owner@ace.example"))
	if resp.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var registered authResponse
	decodeBody(t, resp, &registered)
	if registered.Token == "" || registered.RefreshToken == "" {
		t.Fatal("expected a token pair on register")
	}
	if registered.Business.Slug != "ace-court" {
		t.Fatalf("expected slug %q, got %q", "ace-court", registered.Business.Slug)
	}
	if registered.User.Role != models.RoleOwner {
		t.Fatalf("expected role OWNER, got %q", registered.User.Role)
	}

	// login with the same credentials
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "Owner@Ace.Example", "password": "hunter22"})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var loggedIn authResponse
	decodeBody(t, resp, &loggedIn)
	if loggedIn.Business.Slug != "ace-court" {
		t.Fatalf("login returned the wrong business: %q", loggedIn.Business.Slug)
	}

	// wrong password
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "owner@ace.example", "password": "wrong"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", resp.Code)
	}

	// unknown email gets the same answer
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ghost@ace.example", "password": "hunter22"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email: expected 401, got %d", resp.Code)
	}

	// the issued token works on /me
	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", loggedIn.Token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var me struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		Business struct {
			Slug string `json:"slug"`
		} `json:"business"`
	}
	decodeBody(t, resp, &me)
	if me.User.Email != "owner@ace.example" || me.Business.Slug != "ace-court" {
		t.Fatalf("unexpected /me payload: %s", resp.Body.String())
	}

	// no token at all
	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", resp.Code)
	}
}

func TestRegisterSlugDeduplication(t *testing.T) {
	app := newTestApp(t)

	slugs := make([]string, 0, 3)
	for i, email := range []string{"a@ace.example", "b@ace.example", "c@ace.example"} {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "",
			registerPayload("Ace Court", email))
		if resp.Code != http.StatusOK {
			t.Fatalf("register %d: expected 200, got %d: %s", i, resp.Code, resp.Body.String())
		}
		var out authResponse
		decodeBody(t, resp, &out)
		slugs = append(slugs, out.Business.Slug)
	}

	want := []string{"ace-court", "ace-court-2", "ace-court-3"}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("expected slugs %v, got %v", want, slugs)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/api/auth/register", "",
		registerPayload("Ace Court", "owner@ace.example"))

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "",
		registerPayload("Other Club", "OWNER@ace.example"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["error"] != "email_taken" {
		t.Fatalf("expected error code email_taken, got %v", body["error"])
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"short business name", func(p map[string]interface{}) { p["businessName"] = "A" }},
		{"bad email", func(p map[string]interface{}) { p["email"] = "not-an-email" }},
		{"short password", func(p map[string]interface{}) { p["password"] = "abc" }},
	}

	for _, tc := range cases {
		payload := registerPayload("Ace Court", "owner@ace.example")
		tc.mutate(payload)
		resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, resp.Code)
		}
	}
}

func TestAdminCourtTenantIsolation(t *testing.T) {
	app := newTestApp(t)
	_, _, token := seedBusiness(t, "Smash Arena", "smash-arena")
	_, rivalCourt, _ := seedBusiness(t, "Rival Club", "rival-club")

	// creating a court lands under the caller's business only
	resp := doJSON(t, app, http.MethodPost, "/api/admin/courts", token,
		map[string]interface{}{"name": "Court B"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create court: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodGet, "/api/admin/courts", token, nil)
	var courts []models.Court
	decodeBody(t, resp, &courts)
	if len(courts) != 2 {
		t.Fatalf("expected 2 courts for owner, got %d", len(courts))
	}
	for _, c := range courts {
		if c.Name == "Court B" && !c.IsActive {
			t.Fatal("new court should default to active")
		}
	}

	// renaming the rival's court must not be possible
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/courts/%d", rivalCourt.ID), token,
		map[string]interface{}{"name": "Hijacked"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant court update: expected 404, got %d", resp.Code)
	}

	// admin routes without a token
	resp = doJSON(t, app, http.MethodGet, "/api/admin/courts", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", resp.Code)
	}
}

func TestPublicDiscovery(t *testing.T) {
	app := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/api/auth/register", "",
		registerPayload("Ace Court", "a@ace.example"))
	other := registerPayload("Zed Sports", "z@zed.example")
	other["state"] = "Penang"
	other["city"] = "George Town"
	doJSON(t, app, http.MethodPost, "/api/auth/register", "", other)

	var listing []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/public/businesses", "", nil)
	decodeBody(t, resp, &listing)
	if len(listing) != 2 || listing[0].Name != "Ace Court" {
		t.Fatalf("expected name-ordered listing, got %v", listing)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/public/businesses?state=Penang", "", nil)
	decodeBody(t, resp, &listing)
	if len(listing) != 1 || listing[0].Slug != "zed-sports" {
		t.Fatalf("state filter: got %v", listing)
	}

	var states []string
	resp = doJSON(t, app, http.MethodGet, "/api/public/locations/states", "", nil)
	decodeBody(t, resp, &states)
	if len(states) != 2 || states[0] != "Penang" {
		t.Fatalf("expected sorted states [Penang Selangor], got %v", states)
	}

	var cities []string
	resp = doJSON(t, app, http.MethodGet, "/api/public/locations/cities?state=Penang", "", nil)
	decodeBody(t, resp, &cities)
	if len(cities) != 1 || cities[0] != "George Town" {
		t.Fatalf("expected [George Town], got %v", cities)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/public/locations/cities", "", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing state: expected 400, got %d", resp.Code)
	}
}

func TestUpdateBusinessProfileKeepsSlug(t *testing.T) {
	app := newTestApp(t)
	business, _, token := seedBusiness(t, "Smash Arena", "smash-arena")

	resp := doJSON(t, app, http.MethodPut, "/api/admin/business/profile", token,
		map[string]interface{}{
			"name":  "Smash Arena KL",
			"state": "Kuala Lumpur",
			"city":  "Bangsar",
			"phone": "03-1234567",
		})
	if resp.Code != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.Business
	decodeBody(t, resp, &updated)
	if updated.Name != "Smash Arena KL" {
		t.Fatalf("expected renamed business, got %q", updated.Name)
	}
	if updated.Slug != business.Slug {
		t.Fatalf("slug must not change on rename: %q -> %q", business.Slug, updated.Slug)
	}
}
