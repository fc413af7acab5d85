package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/agenda-api/internal/auth"
	"github.com/agendafacil/agenda-api/internal/middleware"
	"github.com/agendafacil/agenda-api/internal/validators"
)

type authEnvelope struct {
	AccessToken string         `json:"access_token"`
	User        map[string]any `json:"user"`
	Error       string         `json:"error"`
}

// newAuthRouter wires the real identity service over an in-memory user
// repo, with RequireAuth guarding /auth/me — the full token round trip.
func newAuthRouter(users *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validators.RegisterBindings()

	svc := auth.NewService(users, "test-secret")
	authHandler := NewAuthHandler(svc)
	meHandler := NewMeHandler(users)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("/", middleware.RequireAuth(svc))
	secured.GET("/auth/me", meHandler.GetMe)
	return r
}

func authedRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginMeFlow(t *testing.T) {
	users := newStubUserRepo()
	r := newAuthRouter(users)

	w := doRequest(r, "POST", "/api/auth/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var reg authEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reg.AccessToken == "" {
		t.Fatal("register returned no access_token")
	}
	if _, leaked := reg.User["password_hash"]; leaked {
		t.Fatal("user representation leaks the password hash")
	}
	if _, leaked := reg.User["password"]; leaked {
		t.Fatal("user representation leaks the password")
	}

	w2 := authedRequest(r, "GET", "/api/auth/me", reg.AccessToken)
	if w2.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200 (body %s)", w2.Code, w2.Body.String())
	}

	w = doRequest(r, "POST", "/api/auth/login", "",
		`{"email":"alice@example.com","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r := newAuthRouter(newStubUserRepo())

	body := `{"name":"Alice","email":"alice@example.com","password":"s3cret"}`
	if w := doRequest(r, "POST", "/api/auth/register", "", body); w.Code != http.StatusCreated {
		t.Fatalf("first register = %d, want 201", w.Code)
	}
	if w := doRequest(r, "POST", "/api/auth/register", "", body); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register = %d, want 409 (body %s)", w.Code, w.Body.String())
	}
}

func TestRegisterMissingField(t *testing.T) {
	r := newAuthRouter(newStubUserRepo())

	w := doRequest(r, "POST", "/api/auth/register", "", `{"email":"a@b.c","password":"pw"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLoginBadCredentialsAreGeneric(t *testing.T) {
	r := newAuthRouter(newStubUserRepo())

	doRequest(r, "POST", "/api/auth/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)

	for _, body := range []string{
		`{"email":"alice@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"s3cret"}`,
	} {
		w := doRequest(r, "POST", "/api/auth/login", "", body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		var resp authEnvelope
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Error != "incorrect email or password" {
			t.Fatalf("error = %q — must not say which part was wrong", resp.Error)
		}
	}
}

func TestMeVanishedUserIs404(t *testing.T) {
	users := newStubUserRepo()
	r := newAuthRouter(users)

	w := doRequest(r, "POST", "/api/auth/register", "",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)
	var reg authEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	delete(users.users, "alice@example.com")

	w2 := authedRequest(r, "GET", "/api/auth/me", reg.AccessToken)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("me after user vanished = %d, want 404", w2.Code)
	}
}
