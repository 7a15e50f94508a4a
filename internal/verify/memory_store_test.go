package verify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	token, err := store.Issue(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	userID, err := store.Consume(ctx, token)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("got %q, want user-1", userID)
	}

	// Single use: the second redemption must fail.
	if _, err := store.Consume(ctx, token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryTokenStore()

	if _, err := store.Consume(context.Background(), "nope"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	token, err := store.Issue(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	current = current.Add(time.Hour + time.Minute)
	if _, err := store.Consume(ctx, token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expired token: expected ErrTokenInvalid, got %v", err)
	}
}

func TestMemoryStoreSweepsExpiredOnIssue(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	stale, err := store.Issue(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := store.Issue(ctx, "user-2", time.Hour); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	store.mu.Lock()
	_, kept := store.tokens[stale]
	size := len(store.tokens)
	store.mu.Unlock()

	if kept {
		t.Error("expired token should have been swept")
	}
	if size != 1 {
		t.Errorf("store holds %d tokens, want 1", size)
	}
}

func TestTokensAreUnique(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := store.Issue(ctx, "user-1", time.Hour)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
