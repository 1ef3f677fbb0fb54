package memory

import (
	"context"
	"testing"
	"time"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

func TestSessionStore_CreateResolveDestroy(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "u1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64-char hex token, got %d chars", len(token))
	}

	userID, err := store.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("resolved wrong user: %s", userID)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := store.Resolve(ctx, token); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store := NewSessionStore()

	if _, err := store.Resolve(context.Background(), "nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	token, err := store.Create(ctx, "u1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	current = current.Add(sessionTTL - time.Minute)
	if _, err := store.Resolve(ctx, token); err != nil {
		t.Fatalf("session expired too early: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := store.Resolve(ctx, token); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := store.Create(ctx, "u1")
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token issued")
		}
		seen[token] = true
	}
}
