package memory

import (
	"context"
	"testing"
	"time"

	"quiz-master-gateway/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore()
	session := domain.Session{
		ID:        "s-1",
		Token:     "jwt",
		User:      domain.User{ID: 7, Username: "ana"},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := store.Get(context.Background(), "s-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.User.Username != "ana" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(context.Background(), "s-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), "s-1"); ok {
		t.Fatalf("deleted session must be gone")
	}
}

func TestSessionStoreReapsExpired(t *testing.T) {
	store := NewSessionStore()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return now }

	session := domain.Session{ID: "s-1", ExpiresAt: now.Add(time.Minute)}
	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("put: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Get(context.Background(), "s-1"); ok {
		t.Fatalf("expired session must not resolve")
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expired session must be reaped on read")
	}
}
