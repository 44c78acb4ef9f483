package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"quiz-master-gateway/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr))
	session := domain.Session{
		ID:        "s-1",
		Token:     "jwt",
		User:      domain.User{ID: 7, Username: "ana", Role: domain.RoleCompetitor},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(context.Background(), "s-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.User.Username != "ana" || got.Token != "jwt" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(context.Background(), "s-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), "s-1"); ok {
		t.Fatalf("deleted session must be gone")
	}
}

func TestSessionStoreTTLTracksExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr))
	session := domain.Session{ID: "s-1", ExpiresAt: time.Now().Add(time.Minute)}

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := store.Get(context.Background(), "s-1"); ok {
		t.Fatalf("session must expire with its key TTL")
	}
}

func TestSessionStoreRejectsAlreadyExpired(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr))
	session := domain.Session{ID: "s-1", ExpiresAt: time.Now().Add(-time.Minute)}

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), "s-1"); ok {
		t.Fatalf("expired session must not be stored")
	}
}
