package app

import (
	"context"
	"log/slog"
	"time"

	"quiz-master-gateway/internal/domain"
	"quiz-master-gateway/internal/quizstate"
)

// AdminBackend is the slice of the data-access interface the back-office
// needs.
type AdminBackend interface {
	PendingOrganizers(ctx context.Context) ([]domain.User, error)
	ApproveOrganizer(ctx context.Context, id int64) error
	RejectOrganizer(ctx context.Context, id int64) error
	AllUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	AllQuizzes(ctx context.Context) ([]domain.QuizSummary, error)
}

// Decision is the outcome an admin picks for a pending organizer.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// AdminStats is the dashboard aggregate, computed gateway-side the way the
// back-office composes it.
type AdminStats struct {
	TotalUsers            int `json:"totalUsers"`
	CompetitorCount       int `json:"competitorCount"`
	OrganizerCount        int `json:"organizerCount"`
	AdminCount            int `json:"adminCount"`
	PendingOrganizerCount int `json:"pendingOrganizerCount"`
	TotalQuizzes          int `json:"totalQuizzes"`
	UpcomingQuizzes       int `json:"upcomingQuizzes"`
	CompletedQuizzes      int `json:"completedQuizzes"`
}

// AdminService drives the admin back-office flows. Authorization is the
// backend's job; permission failures come back through the error taxonomy.
type AdminService struct {
	backend AdminBackend
	clock   func() time.Time
	logger  *slog.Logger
}

func NewAdminService(backend AdminBackend, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{backend: backend, clock: time.Now, logger: logger}
}

// WithClock is test-only for deterministic stats.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.clock = now
	return s
}

// PendingOrganizers lists organizer accounts awaiting a decision.
func (s *AdminService) PendingOrganizers(ctx context.Context) ([]domain.User, error) {
	return s.backend.PendingOrganizers(ctx)
}

// ResolvePending approves or rejects one pending organizer. The confirmed
// flag gates the irreversible call. On success the organizer is filtered out
// of the passed list so the view updates without a full reload; callers still
// refetch eventually.
func (s *AdminService) ResolvePending(ctx context.Context, pending []domain.User, organizerID int64, decision Decision, confirmed bool) ([]domain.User, error) {
	if !confirmed {
		return pending, domain.ErrConfirmationRequired
	}

	var err error
	switch decision {
	case DecisionApprove:
		err = s.backend.ApproveOrganizer(ctx, organizerID)
	case DecisionReject:
		err = s.backend.RejectOrganizer(ctx, organizerID)
	default:
		return pending, domain.NewValidationError("decision", "decision must be approve or reject")
	}
	if err != nil {
		return pending, err
	}

	s.logger.Info("pending organizer resolved", "organizerId", organizerID, "decision", decision)
	filtered := make([]domain.User, 0, len(pending))
	for _, user := range pending {
		if user.ID != organizerID {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}

// Users lists every account.
func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	return s.backend.AllUsers(ctx)
}

// DeleteUser removes an account after explicit confirmation.
func (s *AdminService) DeleteUser(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.backend.DeleteUser(ctx, id)
}

// Stats aggregates the dashboard numbers. A quiz-list failure is logged and
// leaves the quiz counters at zero; user counts still come through.
func (s *AdminService) Stats(ctx context.Context) (AdminStats, error) {
	users, err := s.backend.AllUsers(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	pending, err := s.backend.PendingOrganizers(ctx)
	if err != nil {
		return AdminStats{}, err
	}

	stats := AdminStats{
		TotalUsers:            len(users),
		PendingOrganizerCount: len(pending),
	}
	for _, user := range users {
		switch user.Role {
		case domain.RoleCompetitor:
			stats.CompetitorCount++
		case domain.RoleOrganizer:
			stats.OrganizerCount++
		case domain.RoleAdmin:
			stats.AdminCount++
		}
	}

	quizzes, err := s.backend.AllQuizzes(ctx)
	if err != nil {
		s.logger.Warn("quiz stats unavailable", "err", err)
		return stats, nil
	}
	now := s.clock()
	stats.TotalQuizzes = len(quizzes)
	for _, quiz := range quizzes {
		if quizstate.Completed(quiz.DateTime, now) {
			stats.CompletedQuizzes++
		} else {
			stats.UpcomingQuizzes++
		}
	}
	return stats, nil
}
