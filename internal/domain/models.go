package domain

import "time"

// Role is the backend-assigned user role.
type Role string

const (
	RoleCompetitor Role = "COMPETITOR"
	RoleOrganizer  Role = "ORGANIZER"
	RoleAdmin      Role = "ADMIN"
)

// User mirrors the backend user record. IsApproved is meaningful for
// organizers only; they stay unapproved until an admin signs off.
type User struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	Role             Role   `json:"roleName"`
	OrganizationName string `json:"organizationName,omitempty"`
	Description      string `json:"description,omitempty"`
	IsApproved       bool   `json:"isApproved"`
}

// QuizSummary is the card-level projection used by list views.
type QuizSummary struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	OrganizerName        string    `json:"organizerName"`
	LocationName         string    `json:"locationName"`
	DateTime             time.Time `json:"dateTime"`
	CategoryName         string    `json:"categoryName"`
	MaxTeams             int       `json:"maxTeams"`
	RegisteredTeamsCount int       `json:"registeredTeamsCount"`
}

// Quiz is the full detail record. RegisteredTeamsCount is a display snapshot;
// capacity enforcement stays with the backend and the count must never feed
// a write decision.
type Quiz struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	CategoryID             int64     `json:"categoryId"`
	CategoryName           string    `json:"categoryName"`
	OrganizerID            int64     `json:"organizerId"`
	OrganizerName          string    `json:"organizerName"`
	LocationName           string    `json:"locationName"`
	Address                string    `json:"address"`
	Latitude               *float64  `json:"latitude,omitempty"`
	Longitude              *float64  `json:"longitude,omitempty"`
	DateTime               time.Time `json:"dateTime"`
	DurationMinutes        *int      `json:"durationMinutes,omitempty"`
	EntryFee               *float64  `json:"entryFee,omitempty"`
	MaxTeams               int       `json:"maxTeams"`
	MaxParticipantsPerTeam int       `json:"maxParticipantsPerTeam"`
	RegisteredTeamsCount   int       `json:"registeredTeamsCount"`
	Description            string    `json:"description,omitempty"`
}

// Summary projects the detail record down to its card form.
func (q Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:                   q.ID,
		Name:                 q.Name,
		OrganizerName:        q.OrganizerName,
		LocationName:         q.LocationName,
		DateTime:             q.DateTime,
		CategoryName:         q.CategoryName,
		MaxTeams:             q.MaxTeams,
		RegisteredTeamsCount: q.RegisteredTeamsCount,
	}
}

// Team is a registration as seen by its captain ("my teams" view).
type Team struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	ParticipantCount       int       `json:"participantCount"`
	FinalPosition          *int      `json:"finalPosition,omitempty"`
	CaptainName            string    `json:"captainName"`
	QuizID                 int64     `json:"quizId"`
	QuizName               string    `json:"quizName"`
	QuizDateTime           time.Time `json:"quizDateTime"`
	MaxParticipantsPerTeam int       `json:"maxParticipantsPerTeam"`
}

// QuizTeam is a registration as listed under a quiz. FinalPosition is absent
// until the organizer publishes results; the backend guarantees at most one
// team per (quiz, captain).
type QuizTeam struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ParticipantCount int    `json:"participantCount"`
	FinalPosition    *int   `json:"finalPosition,omitempty"`
	CaptainName      string `json:"captainName"`
	CaptainEmail     string `json:"captainEmail"`
}

// Category is a flat quiz category.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Notification is created by backend events only, never client-side.
type Notification struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	Type            string    `json:"type"`
	IsRead          bool      `json:"isRead"`
	CreatedAt       time.Time `json:"createdAt"`
	RelatedEntityID *int64    `json:"relatedEntityId,omitempty"`
}

// Subscription is a competitor's follow-relationship to an organizer.
type Subscription struct {
	ID               int64  `json:"id"`
	OrganizerID      int64  `json:"organizerId"`
	OrganizerName    string `json:"organizerName"`
	OrganizationName string `json:"organizationName,omitempty"`
}

// Session is the gateway's record of a logged-in user: the backend bearer
// token plus a snapshot of the profile. It is the only state the gateway
// keeps beyond per-request lifetimes.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its lifetime at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// SortField and SortDirection are the backend's quiz list orderings.
type SortField string

const (
	SortByDateTime        SortField = "DateTime"
	SortByName            SortField = "Name"
	SortByCategoryName    SortField = "CategoryName"
	SortByRegisteredTeams SortField = "RegisteredTeams"
)

type SortDirection string

const (
	SortAscending  SortDirection = "Ascending"
	SortDescending SortDirection = "Descending"
)

// QuizSearchParams are the optional quiz list filters.
type QuizSearchParams struct {
	SearchTerm    string        `json:"searchTerm,omitempty"`
	CategoryID    int64         `json:"categoryId,omitempty"`
	SortBy        SortField     `json:"sortBy,omitempty"`
	SortDirection SortDirection `json:"sortDirection,omitempty"`
}

// QuizRequest is the create/update payload for a quiz.
type QuizRequest struct {
	Name                   string    `json:"name"`
	CategoryID             int64     `json:"categoryId"`
	LocationName           string    `json:"locationName"`
	Address                string    `json:"address"`
	Latitude               *float64  `json:"latitude,omitempty"`
	Longitude              *float64  `json:"longitude,omitempty"`
	DateTime               time.Time `json:"dateTime"`
	DurationMinutes        *int      `json:"durationMinutes,omitempty"`
	EntryFee               *float64  `json:"entryFee,omitempty"`
	MaxTeams               int       `json:"maxTeams"`
	MaxParticipantsPerTeam int       `json:"maxParticipantsPerTeam"`
	Description            string    `json:"description,omitempty"`
}

// CreateTeamRequest registers a team for a quiz.
type CreateTeamRequest struct {
	Name             string `json:"name"`
	ParticipantCount int    `json:"participantCount"`
	QuizID           int64  `json:"quizId"`
}

// UpdateTeamRequest edits an existing registration.
type UpdateTeamRequest struct {
	Name             string `json:"name"`
	ParticipantCount int    `json:"participantCount"`
}

// TeamResultRequest publishes one team's final position.
type TeamResultRequest struct {
	FinalPosition int `json:"finalPosition"`
}

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// RegisterRequest creates a new account. Organization fields apply to
// organizer signups only.
type RegisterRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	RoleID           int64  `json:"roleId"`
	OrganizationName string `json:"organizationName,omitempty"`
	Description      string `json:"description,omitempty"`
}

// UpdateProfileRequest edits the authenticated user's profile.
type UpdateProfileRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	OrganizationName string `json:"organizationName,omitempty"`
	Description      string `json:"description,omitempty"`
}

// ChangePasswordRequest rotates the authenticated user's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is the backend's login/register reply.
type AuthResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	User       User      `json:"user"`
}
