package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"fougue-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildAvailabilityTestApp wires the availability write routes behind the
// same verifier/middleware chain as main.go. Every request exercised against
// it is rejected before reaching the store.
func buildAvailabilityTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	availability := app.Party("/api/availability")
	{
		availability.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, CreateAvailability)
		availability.Put("/{id}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, UpdateAvailability)
		availability.Delete("/{id}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, DeleteAvailability)
	}

	app.Build()
	return app
}

func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestAvailabilityWritesRequireAdmin(t *testing.T) {
	app := buildAvailabilityTestApp()

	t.Run("no token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/availability", strings.NewReader(`{"type":"recurring"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code == http.StatusOK || resp.Code == http.StatusCreated {
			t.Fatalf("expected rejection without token, got %d", resp.Code)
		}
	})

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/availability", strings.NewReader(`{"type":"recurring"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+signTestToken("customer"))
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for non-admin, got %d", resp.Code)
		}
	})

	t.Run("delete without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/availability/abc?type=specific", nil)
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		if resp.Code == http.StatusOK {
			t.Fatalf("expected rejection without token, got %d", resp.Code)
		}
	})
}

// An unrecognized type must fail before any row is written; both branches
// return 400 without reaching the store.
func TestAvailabilityRejectsUnknownType(t *testing.T) {
	app := buildAvailabilityTestApp()

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"create", http.MethodPost, "/api/availability"},
		{"update", http.MethodPut, "/api/availability/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(`{"type":"bogus"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
			resp := httptest.NewRecorder()
			app.ServeHTTP(resp, req)

			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 for unknown type, got %d", resp.Code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding response body: %v", err)
			}
			if body.Error == "" {
				t.Error("expected an error message in the response body")
			}
		})
	}
}
