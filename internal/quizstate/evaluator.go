// Package quizstate derives a quiz's display state from raw entity data, the
// wall clock, and the viewer. It is the single source of truth for the
// completed/full/available split, the date-proximity badges, and the action
// a given viewer may take; presentation layers call it instead of recomputing
// date math.
package quizstate

import (
	"math"
	"time"

	"quiz-master-gateway/internal/domain"
)

// Status is the lifecycle badge, priority order Completed > Full > Available.
type Status string

const (
	StatusAvailable Status = "available"
	StatusFull      Status = "full"
	StatusCompleted Status = "completed"
)

// DateBadge marks calendar proximity. A quiz maps to exactly one value.
type DateBadge string

const (
	BadgeNone     DateBadge = ""
	BadgeToday    DateBadge = "today"
	BadgeTomorrow DateBadge = "tomorrow"
	BadgeSoon     DateBadge = "soon"
)

// Action is the affordance offered to the viewer.
type Action string

const (
	ActionNone               Action = "none"
	ActionLogin              Action = "login"
	ActionRegister           Action = "register"
	ActionManageRegistration Action = "manage-registration"
	ActionFull               Action = "full"
	ActionManageQuiz         Action = "manage-quiz"
	ActionNotOwner           Action = "not-owner"
)

// Viewer describes who is looking at the quiz. Team is the viewer's existing
// registration on this quiz, nil when none.
type Viewer struct {
	Authenticated bool
	Role          domain.Role
	UserID        int64
	Email         string
	Team          *domain.QuizTeam
}

// Descriptor is the derived display state. Loaded is false when no quiz was
// available; callers render nothing actionable in that case.
type Descriptor struct {
	Loaded        bool      `json:"loaded"`
	Completed     bool      `json:"completed"`
	Full          bool      `json:"full"`
	Status        Status    `json:"status"`
	DateBadge     DateBadge `json:"dateBadge,omitempty"`
	Action        Action    `json:"action"`
	ActionEnabled bool      `json:"actionEnabled"`
}

// Evaluate is a pure derivation from {quiz, now, viewer}. A nil quiz yields
// the zero no-action descriptor rather than an error.
func Evaluate(quiz *domain.Quiz, now time.Time, viewer Viewer) Descriptor {
	if quiz == nil {
		return Descriptor{Action: ActionNone}
	}

	d := Descriptor{Loaded: true}
	d.Completed = Completed(quiz.DateTime, now)
	d.Full = Full(quiz.RegisteredTeamsCount, quiz.MaxTeams)
	d.Status, d.DateBadge = Badges(quiz.DateTime, quiz.MaxTeams, quiz.RegisteredTeamsCount, now)
	d.Action = action(quiz, d.Completed, d.Full, viewer)
	d.ActionEnabled = actionEnabled(d.Action)
	return d
}

// Completed reports whether the quiz start has passed. Monotonic: once true
// at an instant, true for every later instant.
func Completed(dateTime, now time.Time) bool {
	return !dateTime.After(now)
}

// Full reports whether the registered-team snapshot has reached capacity.
// Display-only; the backend enforces real capacity.
func Full(registeredTeams, maxTeams int) bool {
	return registeredTeams >= maxTeams
}

// Badges derives the status and date-proximity badges from card-level fields,
// so list views can share the derivation without a full detail record.
func Badges(dateTime time.Time, maxTeams, registeredTeams int, now time.Time) (Status, DateBadge) {
	status := StatusAvailable
	switch {
	case Completed(dateTime, now):
		status = StatusCompleted
	case Full(registeredTeams, maxTeams):
		status = StatusFull
	}
	return status, dateBadge(dateTime, now)
}

// dateBadge compares calendar days at local-midnight boundaries: same day is
// today, the next tomorrow, day offsets 2 through 7 are soon.
func dateBadge(dateTime, now time.Time) DateBadge {
	switch days := calendarDaysUntil(dateTime, now); {
	case days == 0:
		return BadgeToday
	case days == 1:
		return BadgeTomorrow
	case days >= 2 && days <= 7:
		return BadgeSoon
	default:
		return BadgeNone
	}
}

func calendarDaysUntil(dateTime, now time.Time) int {
	loc := now.Location()
	from := midnight(now)
	to := midnight(dateTime.In(loc))
	// Rounding absorbs DST-shifted days that are not exactly 24h long.
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// action applies the affordance table. The owner check precedes generic role
// dispatch, and an existing team precedes completion and fullness for
// competitors: a team on a finished quiz still resolves to its registration,
// a missing one on a finished quiz resolves to nothing at all.
func action(quiz *domain.Quiz, completed, full bool, viewer Viewer) Action {
	if !viewer.Authenticated {
		return ActionLogin
	}
	switch viewer.Role {
	case domain.RoleAdmin:
		return ActionManageQuiz
	case domain.RoleOrganizer:
		if viewer.UserID == quiz.OrganizerID {
			return ActionManageQuiz
		}
		return ActionNotOwner
	case domain.RoleCompetitor:
		if viewer.Team != nil {
			return ActionManageRegistration
		}
		if completed {
			return ActionNone
		}
		if full {
			return ActionFull
		}
		return ActionRegister
	}
	return ActionNone
}

func actionEnabled(a Action) bool {
	switch a {
	case ActionNone, ActionFull, ActionNotOwner:
		return false
	}
	return true
}
