// Package results orders and groups a quiz's teams for results display and
// prepares the organizer's position-entry sheet.
package results

import (
	"fmt"
	"sort"
	"strings"

	"quiz-master-gateway/internal/domain"
)

// Published reports whether results exist for the quiz: any team carrying a
// final position counts as published.
func Published(teams []domain.QuizTeam) bool {
	for _, team := range teams {
		if team.FinalPosition != nil {
			return true
		}
	}
	return false
}

// Group is one result slot. Teams sharing a position form one group (a tie,
// which is a supported outcome, not an error). Unplaced teams collect into a
// single distinguished group sorted after every positioned one.
type Group struct {
	Position int               `json:"position,omitempty"`
	Unplaced bool              `json:"unplaced,omitempty"`
	Teams    []domain.QuizTeam `json:"teams"`
}

// GroupByPosition partitions teams into position groups, ascending, unplaced
// last.
func GroupByPosition(teams []domain.QuizTeam) []Group {
	ordered := orderForDisplay(teams)

	var groups []Group
	for _, team := range ordered {
		if n := len(groups); n > 0 && sameSlot(groups[n-1], team) {
			groups[n-1].Teams = append(groups[n-1].Teams, team)
			continue
		}
		group := Group{Teams: []domain.QuizTeam{team}}
		if team.FinalPosition != nil {
			group.Position = *team.FinalPosition
		} else {
			group.Unplaced = true
		}
		groups = append(groups, group)
	}
	return groups
}

func sameSlot(g Group, team domain.QuizTeam) bool {
	if team.FinalPosition == nil {
		return g.Unplaced
	}
	return !g.Unplaced && g.Position == *team.FinalPosition
}

// Entry is one row of the organizer's position-entry sheet.
type Entry struct {
	TeamID   int64  `json:"teamId"`
	TeamName string `json:"teamName"`
	Position int    `json:"position"`
}

// EntrySheet builds the default ordering for the set-results flow: existing
// positions ascending, unplaced teams after all positioned ones with name as
// the tie-break, and each unplaced team offered its 1-based rank as default.
func EntrySheet(teams []domain.QuizTeam) []Entry {
	ordered := orderForDisplay(teams)

	entries := make([]Entry, 0, len(ordered))
	for i, team := range ordered {
		position := i + 1
		if team.FinalPosition != nil {
			position = *team.FinalPosition
		}
		entries = append(entries, Entry{TeamID: team.ID, TeamName: team.Name, Position: position})
	}
	return entries
}

// ValidatePositions checks a submission payload: every position must be an
// integer in [1, teamCount]. Duplicates are accepted: a shared position is a
// tie, and the grouped display renders it as one.
func ValidatePositions(entries []Entry, teamCount int) error {
	for _, entry := range entries {
		if entry.Position < 1 || entry.Position > teamCount {
			return domain.NewValidationError("positions",
				fmt.Sprintf("positions must be between 1 and %d", teamCount))
		}
	}
	return nil
}

// ValidateTeamSet checks that every entry targets one of the quiz's own
// teams, so a sheet cannot write a result onto another quiz's team.
func ValidateTeamSet(entries []Entry, teams []domain.QuizTeam) error {
	known := make(map[int64]bool, len(teams))
	for _, team := range teams {
		known[team.ID] = true
	}
	for _, entry := range entries {
		if !known[entry.TeamID] {
			return domain.NewValidationError("teamId",
				fmt.Sprintf("team %d is not registered for this quiz", entry.TeamID))
		}
	}
	return nil
}

// orderForDisplay sorts by position ascending, positioned before unplaced,
// names (case-insensitive) as the stability tie-break.
func orderForDisplay(teams []domain.QuizTeam) []domain.QuizTeam {
	ordered := make([]domain.QuizTeam, len(teams))
	copy(ordered, teams)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		switch {
		case a.FinalPosition != nil && b.FinalPosition != nil:
			if *a.FinalPosition != *b.FinalPosition {
				return *a.FinalPosition < *b.FinalPosition
			}
		case a.FinalPosition != nil:
			return true
		case b.FinalPosition != nil:
			return false
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return ordered
}
