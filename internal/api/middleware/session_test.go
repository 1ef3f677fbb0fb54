package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

type stubStore struct {
	resolveFn func(ctx context.Context, token string) (string, error)
}

func (s *stubStore) Create(context.Context, string) (string, error) { return "", nil }
func (s *stubStore) Destroy(context.Context, string) error         { return nil }

func (s *stubStore) Resolve(ctx context.Context, token string) (string, error) {
	return s.resolveFn(ctx, token)
}

func invoke(store *stubStore, req *http.Request) (*httptest.ResponseRecorder, string, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID string
	next := func(c echo.Context) error {
		seenUserID, _ = c.Get("user_id").(string)
		return c.NoContent(http.StatusOK)
	}

	err := Session(store)(next)(c)
	return rec, seenUserID, err
}

func TestSession_ValidCookie(t *testing.T) {
	store := &stubStore{
		resolveFn: func(_ context.Context, token string) (string, error) {
			if token != "tok123" {
				t.Fatalf("unexpected token: %s", token)
			}
			return "u1", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok123"})

	rec, userID, err := invoke(store, req)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if userID != "u1" {
		t.Fatalf("user id not injected: %q", userID)
	}
}

func TestSession_MissingCookie(t *testing.T) {
	store := &stubStore{
		resolveFn: func(context.Context, string) (string, error) {
			t.Fatalf("store must not be queried without a cookie")
			return "", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)

	_, _, err := invoke(store, req)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if he.Message != "Authentication required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

// A token the store no longer knows, revoked or expired, is rejected even
// though the client still presents it.
func TestSession_RevokedToken(t *testing.T) {
	store := &stubStore{
		resolveFn: func(context.Context, string) (string, error) {
			return "", domain.ErrSessionNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})

	_, _, err := invoke(store, req)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
