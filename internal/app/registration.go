package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"quiz-master-gateway/internal/domain"
	"quiz-master-gateway/internal/validation"
)

// QuizSource serves quiz detail reads, typically through a TTL cache, and
// invalidates after mutations so the next read sees the server-computed
// registeredTeamsCount.
type QuizSource interface {
	Quiz(ctx context.Context, id int64) (domain.Quiz, error)
	Invalidate(ctx context.Context, id int64)
}

// TeamBackend is the slice of the data-access interface the registration
// workflow needs.
type TeamBackend interface {
	TeamsByQuiz(ctx context.Context, quizID int64) ([]domain.QuizTeam, error)
	CreateTeam(ctx context.Context, req domain.CreateTeamRequest) (domain.Team, error)
	UpdateTeam(ctx context.Context, teamID int64, req domain.UpdateTeamRequest) (domain.Team, error)
	DeleteTeam(ctx context.Context, teamID int64) error
}

// DialogState names the registration dialog's states.
type DialogState string

const (
	DialogClosed     DialogState = "closed"
	DialogOpen       DialogState = "open"
	DialogSubmitting DialogState = "submitting"
)

// Dialog is the interactive-flow state machine Closed → Open → Submitting →
// {Closed on success, Open-with-error on failure}. Submitting gates
// re-entrant submit triggers.
type Dialog struct {
	mu      sync.Mutex
	state   DialogState
	lastErr string
}

func NewDialog() *Dialog {
	return &Dialog{state: DialogClosed}
}

// Open readies the dialog and clears any stale error.
func (d *Dialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogSubmitting {
		return
	}
	d.state = DialogOpen
	d.lastErr = ""
}

// Close dismisses the dialog; ignored mid-submission.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogSubmitting {
		return
	}
	d.state = DialogClosed
	d.lastErr = ""
}

func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Err returns the dialog-level error string, empty when none.
func (d *Dialog) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

func (d *Dialog) beginSubmit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case DialogSubmitting:
		return domain.ErrSubmissionInFlight
	case DialogClosed:
		return domain.ErrDialogNotOpen
	}
	d.state = DialogSubmitting
	d.lastErr = ""
	return nil
}

// fail reopens the dialog with the error for correction or cancellation.
func (d *Dialog) fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogOpen
	d.lastErr = err.Error()
}

func (d *Dialog) succeed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogClosed
	d.lastErr = ""
}

// RegistrationSnapshot is the refreshed view after a check or mutation.
type RegistrationSnapshot struct {
	Quiz  domain.Quiz       `json:"quiz"`
	Teams []domain.QuizTeam `json:"teams"`
	Own   *domain.QuizTeam  `json:"own,omitempty"`
}

// RegistrationCoordinator sequences the competitor registration lifecycle
// against the backend and re-derives state after every mutation.
type RegistrationCoordinator struct {
	quizzes QuizSource
	teams   TeamBackend
	logger  *slog.Logger
}

func NewRegistrationCoordinator(quizzes QuizSource, teams TeamBackend, logger *slog.Logger) *RegistrationCoordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationCoordinator{quizzes: quizzes, teams: teams, logger: logger}
}

// ExistingRegistration scans the quiz's teams for one captained by the
// viewer. A fetch failure degrades to "none"; the UI then offers
// registration and the backend remains the authority that rejects
// duplicates.
func (c *RegistrationCoordinator) ExistingRegistration(ctx context.Context, quizID int64, viewerEmail string) *domain.QuizTeam {
	teams, err := c.teams.TeamsByQuiz(ctx, quizID)
	if err != nil {
		c.logger.Warn("existing-registration check failed, treating as none",
			"quizId", quizID, "err", err)
		return nil
	}
	return findByCaptain(teams, viewerEmail)
}

func findByCaptain(teams []domain.QuizTeam, email string) *domain.QuizTeam {
	for i := range teams {
		if strings.EqualFold(teams[i].CaptainEmail, email) {
			return &teams[i]
		}
	}
	return nil
}

// Register validates locally, creates the team, and refetches quiz and teams
// rather than patching counts optimistically.
func (c *RegistrationCoordinator) Register(ctx context.Context, dialog *Dialog, quiz domain.Quiz, viewerEmail, teamName string, participantCount int) (RegistrationSnapshot, error) {
	if err := dialog.beginSubmit(); err != nil {
		return RegistrationSnapshot{}, err
	}
	if err := c.validateTeam(teamName, participantCount, quiz.MaxParticipantsPerTeam); err != nil {
		dialog.fail(err)
		return RegistrationSnapshot{}, err
	}

	_, err := c.teams.CreateTeam(ctx, domain.CreateTeamRequest{
		Name:             strings.TrimSpace(teamName),
		ParticipantCount: participantCount,
		QuizID:           quiz.ID,
	})
	if err != nil {
		dialog.fail(err)
		return RegistrationSnapshot{}, err
	}

	dialog.succeed()
	return c.refresh(ctx, quiz.ID, viewerEmail)
}

// Update edits the viewer's registration under the same validation and
// refetch policy.
func (c *RegistrationCoordinator) Update(ctx context.Context, dialog *Dialog, quiz domain.Quiz, teamID int64, viewerEmail, newName string, newCount int) (RegistrationSnapshot, error) {
	if err := dialog.beginSubmit(); err != nil {
		return RegistrationSnapshot{}, err
	}
	if err := c.validateTeam(newName, newCount, quiz.MaxParticipantsPerTeam); err != nil {
		dialog.fail(err)
		return RegistrationSnapshot{}, err
	}

	_, err := c.teams.UpdateTeam(ctx, teamID, domain.UpdateTeamRequest{
		Name:             strings.TrimSpace(newName),
		ParticipantCount: newCount,
	})
	if err != nil {
		dialog.fail(err)
		return RegistrationSnapshot{}, err
	}

	dialog.succeed()
	return c.refresh(ctx, quiz.ID, viewerEmail)
}

// Withdraw deletes the registration. The confirmed flag is the caller's
// proof of the irreversible-action warning; without it no call is issued.
func (c *RegistrationCoordinator) Withdraw(ctx context.Context, quizID, teamID int64, viewerEmail string, confirmed bool) (RegistrationSnapshot, error) {
	if !confirmed {
		return RegistrationSnapshot{}, domain.ErrConfirmationRequired
	}
	if err := c.teams.DeleteTeam(ctx, teamID); err != nil {
		return RegistrationSnapshot{}, err
	}
	return c.refresh(ctx, quizID, viewerEmail)
}

func (c *RegistrationCoordinator) validateTeam(name string, count, maxPerTeam int) error {
	if err := validation.TeamName(name); err != nil {
		return err
	}
	return validation.ParticipantCount(count, maxPerTeam)
}

func (c *RegistrationCoordinator) refresh(ctx context.Context, quizID int64, viewerEmail string) (RegistrationSnapshot, error) {
	c.quizzes.Invalidate(ctx, quizID)

	quiz, err := c.quizzes.Quiz(ctx, quizID)
	if err != nil {
		return RegistrationSnapshot{}, err
	}
	teams, err := c.teams.TeamsByQuiz(ctx, quizID)
	if err != nil {
		return RegistrationSnapshot{}, err
	}
	return RegistrationSnapshot{
		Quiz:  quiz,
		Teams: teams,
		Own:   findByCaptain(teams, viewerEmail),
	}, nil
}
