// Package validation is the single home for the form rules that used to be
// duplicated across submission handlers. Failures are tagged with a field so
// they can surface inline next to the offending group, and they never trigger
// a network round-trip.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"quiz-master-gateway/internal/domain"
)

const (
	minTeamNameLen = 2
	minPasswordLen = 6
)

// TeamName requires a trimmed, non-empty name of at least two characters.
func TeamName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("teamName", "team name is required")
	}
	if utf8.RuneCountInString(name) < minTeamNameLen {
		return domain.NewValidationError("teamName",
			fmt.Sprintf("team name must be at least %d characters", minTeamNameLen))
	}
	return nil
}

// ParticipantCount bounds the head count by the quiz's per-team limit.
func ParticipantCount(count, maxPerTeam int) error {
	if count < 1 || count > maxPerTeam {
		return domain.NewValidationError("participantCount",
			fmt.Sprintf("number of players must be between 1 and %d", maxPerTeam))
	}
	return nil
}

// CategoryName requires a trimmed, non-empty category name.
func CategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "category name is required")
	}
	return nil
}

// Password enforces the minimum length and the confirm-field match.
func Password(password, confirm string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return domain.NewValidationError("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if password != confirm {
		return domain.NewValidationError("confirmPassword", "passwords do not match")
	}
	return nil
}

// Registration checks an account signup. Organizer signups additionally need
// an organization name.
func Registration(req domain.RegisterRequest, confirmPassword string) error {
	for _, field := range []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"username", req.Username},
	} {
		if strings.TrimSpace(field.value) == "" {
			return domain.NewValidationError(field.name, field.name+" is required")
		}
	}
	if !strings.Contains(req.Email, "@") {
		return domain.NewValidationError("email", "email address is not valid")
	}
	return Password(req.Password, confirmPassword)
}
