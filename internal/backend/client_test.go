package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-master-gateway/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, nil), server
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]domain.QuizSummary{})
	}))

	ctx := WithToken(context.Background(), "token-123")
	if _, err := client.SearchQuizzes(ctx, domain.QuizSearchParams{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestSearchParamsEncoded(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]domain.QuizSummary{})
	}))

	_, err := client.SearchQuizzes(context.Background(), domain.QuizSearchParams{
		SearchTerm:    "pub",
		CategoryID:    3,
		SortBy:        domain.SortByDateTime,
		SortDirection: domain.SortAscending,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := "categoryId=3&searchTerm=pub&sortBy=DateTime&sortDirection=Ascending"
	if gotQuery != want {
		t.Fatalf("query mismatch:\nwant %s\ngot  %s", want, gotQuery)
	}
}

func TestForbiddenMapsToPermissionMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Forbidden", http.StatusForbidden)
	}))

	_, err := client.PendingOrganizers(context.Background())
	if domain.KindOf(err) != domain.KindPermission {
		t.Fatalf("expected permission kind, got %v (%v)", domain.KindOf(err), err)
	}
	if err.Error() != "you don't have permission to fetch pending organizers" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNotFoundMapsToEntityMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Quiz(context.Background(), 42)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found kind, got %v", domain.KindOf(err))
	}
	if err.Error() != "quiz not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestBusinessRuleMessageSurfacesVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Quiz is already full"})
	}))

	_, err := client.CreateTeam(context.Background(), domain.CreateTeamRequest{Name: "AB", ParticipantCount: 2, QuizID: 1})
	if domain.KindOf(err) != domain.KindConflict {
		t.Fatalf("expected conflict kind, got %v", domain.KindOf(err))
	}
	if err.Error() != "Quiz is already full" {
		t.Fatalf("expected backend message verbatim, got %q", err.Error())
	}
}

func TestBusinessRuleFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	err := client.DeleteCategory(context.Background(), 9)
	if err == nil || err.Error() != "could not delete category" {
		t.Fatalf("expected generic fallback, got %v", err)
	}
}

func TestServerErrorIsUnknownKind(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Categories(context.Background())
	if domain.KindOf(err) != domain.KindUnknown {
		t.Fatalf("expected unknown kind, got %v", domain.KindOf(err))
	}
	if err.Error() != "could not fetch categories" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSubscriptionToggleParsesState(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]bool{"isSubscribed": true})
	}))

	subscribed, err := client.ToggleSubscription(context.Background(), 7)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !subscribed {
		t.Fatalf("expected subscribed=true")
	}
}
