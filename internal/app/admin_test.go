package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-master-gateway/internal/domain"
)

type fakeAdminBackend struct {
	pending    []domain.User
	users      []domain.User
	quizzes    []domain.QuizSummary
	quizErr    error
	approves   []int64
	rejects    []int64
	deletes    []int64
	approveErr error
}

func (f *fakeAdminBackend) PendingOrganizers(_ context.Context) ([]domain.User, error) {
	return f.pending, nil
}

func (f *fakeAdminBackend) ApproveOrganizer(_ context.Context, id int64) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approves = append(f.approves, id)
	return nil
}

func (f *fakeAdminBackend) RejectOrganizer(_ context.Context, id int64) error {
	f.rejects = append(f.rejects, id)
	return nil
}

func (f *fakeAdminBackend) AllUsers(_ context.Context) ([]domain.User, error) {
	return f.users, nil
}

func (f *fakeAdminBackend) DeleteUser(_ context.Context, id int64) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeAdminBackend) AllQuizzes(_ context.Context) ([]domain.QuizSummary, error) {
	if f.quizErr != nil {
		return nil, f.quizErr
	}
	return f.quizzes, nil
}

func pendingOrganizers() []domain.User {
	return []domain.User{
		{ID: 1, Username: "org-one", Role: domain.RoleOrganizer},
		{ID: 2, Username: "org-two", Role: domain.RoleOrganizer},
	}
}

func TestResolvePendingRequiresConfirmation(t *testing.T) {
	be := &fakeAdminBackend{}
	svc := NewAdminService(be, nil)

	out, err := svc.ResolvePending(context.Background(), pendingOrganizers(), 1, DecisionApprove, false)
	if !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected confirmation gate, got %v", err)
	}
	if len(be.approves) != 0 {
		t.Fatalf("unconfirmed decision must not reach the backend")
	}
	if len(out) != 2 {
		t.Fatalf("list must be unchanged on refusal, got %d", len(out))
	}
}

func TestResolvePendingFiltersOnSuccess(t *testing.T) {
	be := &fakeAdminBackend{}
	svc := NewAdminService(be, nil)

	out, err := svc.ResolvePending(context.Background(), pendingOrganizers(), 1, DecisionApprove, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(be.approves) != 1 || be.approves[0] != 1 {
		t.Fatalf("expected approve call for id 1, got %v", be.approves)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("approved organizer must leave the list, got %+v", out)
	}

	out, err = svc.ResolvePending(context.Background(), out, 2, DecisionReject, true)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(be.rejects) != 1 || len(out) != 0 {
		t.Fatalf("rejected organizer must leave the list, rejects=%v remaining=%d", be.rejects, len(out))
	}
}

func TestResolvePendingKeepsListOnBackendError(t *testing.T) {
	be := &fakeAdminBackend{approveErr: domain.Unknown("approve organizer", errors.New("boom"))}
	svc := NewAdminService(be, nil)

	out, err := svc.ResolvePending(context.Background(), pendingOrganizers(), 1, DecisionApprove, true)
	if err == nil {
		t.Fatalf("expected backend error")
	}
	if len(out) != 2 {
		t.Fatalf("list must be unchanged on failure, got %d", len(out))
	}
}

func TestResolvePendingRejectsUnknownDecision(t *testing.T) {
	svc := NewAdminService(&fakeAdminBackend{}, nil)
	_, err := svc.ResolvePending(context.Background(), pendingOrganizers(), 1, Decision("maybe"), true)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteUserRequiresConfirmation(t *testing.T) {
	be := &fakeAdminBackend{}
	svc := NewAdminService(be, nil)

	if err := svc.DeleteUser(context.Background(), 3, false); !errors.Is(err, domain.ErrConfirmationRequired) {
		t.Fatalf("expected confirmation gate, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), 3, true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(be.deletes) != 1 || be.deletes[0] != 3 {
		t.Fatalf("expected delete call for id 3, got %v", be.deletes)
	}
}

func TestStatsAggregation(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	be := &fakeAdminBackend{
		users: []domain.User{
			{ID: 1, Role: domain.RoleCompetitor},
			{ID: 2, Role: domain.RoleCompetitor},
			{ID: 3, Role: domain.RoleOrganizer},
			{ID: 4, Role: domain.RoleAdmin},
		},
		pending: []domain.User{{ID: 5, Role: domain.RoleOrganizer}},
		quizzes: []domain.QuizSummary{
			{ID: 1, DateTime: now.Add(-time.Hour)},
			{ID: 2, DateTime: now.Add(time.Hour)},
			{ID: 3, DateTime: now.Add(48 * time.Hour)},
		},
	}
	svc := NewAdminService(be, nil).WithClock(func() time.Time { return now })

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := AdminStats{
		TotalUsers: 4, CompetitorCount: 2, OrganizerCount: 1, AdminCount: 1,
		PendingOrganizerCount: 1,
		TotalQuizzes:          3, UpcomingQuizzes: 2, CompletedQuizzes: 1,
	}
	if stats != want {
		t.Fatalf("stats mismatch:\n got %+v\nwant %+v", stats, want)
	}
}

func TestStatsToleratesQuizFailure(t *testing.T) {
	be := &fakeAdminBackend{
		users:   []domain.User{{ID: 1, Role: domain.RoleCompetitor}},
		quizErr: domain.Unknown("fetch quizzes", errors.New("boom")),
	}
	svc := NewAdminService(be, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("user counts must survive a quiz failure: %v", err)
	}
	if stats.TotalUsers != 1 || stats.TotalQuizzes != 0 {
		t.Fatalf("expected partial stats, got %+v", stats)
	}
}
