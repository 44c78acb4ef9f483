// Package http is the gateway's HTTP surface: a chi router over the app
// services, plus a websocket stream for live quiz state. Handlers stay thin;
// anything worth testing lives in the app and domain packages.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"quiz-master-gateway/internal/app"
	"quiz-master-gateway/internal/backend"
	"quiz-master-gateway/internal/domain"
	"quiz-master-gateway/internal/quizstate"
	"quiz-master-gateway/internal/results"
)

type sessionCtxKey struct{}

// Handler owns the route table and the per-session dialog registry.
type Handler struct {
	backend       *backend.Client
	quizzes       app.QuizSource
	sessions      *app.SessionService
	registrations *app.RegistrationCoordinator
	admin         *app.AdminService
	clock         func() time.Time
	logger        *slog.Logger

	pollInterval   time.Duration
	searchDebounce time.Duration

	dialogMu sync.Mutex
	dialogs  map[string]*app.Dialog
}

func NewHandler(
	client *backend.Client,
	quizzes app.QuizSource,
	sessions *app.SessionService,
	registrations *app.RegistrationCoordinator,
	admin *app.AdminService,
	pollInterval, searchDebounce time.Duration,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		backend:        client,
		quizzes:        quizzes,
		sessions:       sessions,
		registrations:  registrations,
		admin:          admin,
		clock:          time.Now,
		logger:         logger,
		pollInterval:   pollInterval,
		searchDebounce: searchDebounce,
		dialogs:        make(map[string]*app.Dialog),
	}
}

// Routes builds the router with the base middleware stack.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(h.withSession)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			JSON(w, r, map[string]string{"status": "ok"})
		})

		r.Post("/auth/login", h.login)
		r.Post("/auth/register", h.register)

		r.Get("/quizzes", h.listQuizzes)
		r.Get("/quizzes/{quizID}", h.quizDetail)
		r.Get("/quizzes/{quizID}/results", h.quizResults)
		r.Get("/quizzes/{quizID}/stream", h.streamQuiz)

		r.Get("/categories", h.listCategories)
		r.Get("/organizers/{organizerID}", h.organizerProfile)
		r.Get("/organizers/{organizerID}/quizzes", h.organizerQuizzes)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Post("/auth/logout", h.logout)
			r.Get("/me", h.me)
			r.Put("/me/profile", h.updateProfile)
			r.Put("/me/password", h.changePassword)
			r.Get("/me/teams", h.myTeams)
			r.Get("/me/notifications", h.myNotifications)
			r.Post("/me/notifications/{notificationID}/read", h.markNotificationRead)
			r.Post("/me/notifications/read-all", h.markAllNotificationsRead)
			r.Delete("/me/notifications/{notificationID}", h.deleteNotification)
			r.Get("/me/subscriptions", h.mySubscriptions)

			r.Post("/quizzes/{quizID}/register", h.registerTeam)
			r.Put("/quizzes/{quizID}/teams/{teamID}", h.updateTeam)
			r.Delete("/quizzes/{quizID}/teams/{teamID}", h.withdrawTeam)

			r.Get("/quizzes/{quizID}/results/sheet", h.resultsSheet)
			r.Post("/quizzes/{quizID}/results", h.setResults)

			r.Post("/quizzes", h.createQuiz)
			r.Put("/quizzes/{quizID}", h.updateQuiz)
			r.Delete("/quizzes/{quizID}", h.deleteQuiz)

			r.Post("/categories", h.createCategory)
			r.Put("/categories/{categoryID}", h.updateCategory)
			r.Delete("/categories/{categoryID}", h.deleteCategory)

			r.Get("/organizers/{organizerID}/subscription", h.subscriptionStatus)
			r.Post("/organizers/{organizerID}/subscription/toggle", h.toggleSubscription)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", h.adminStats)
				r.Get("/users", h.adminUsers)
				r.Delete("/users/{userID}", h.adminDeleteUser)
				r.Get("/pending-organizers", h.pendingOrganizers)
				r.Post("/pending-organizers/{organizerID}/decision", h.resolvePending)
			})
		})
	})

	return r
}

// withSession resolves an optional "Authorization: Bearer <session-id>"
// header. A resolved session rides the context together with its backend
// token, so downstream calls authenticate transparently.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		session, err := h.sessions.Viewer(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			// Stale credentials degrade to anonymous on public routes;
			// requireSession rejects protected ones.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, session)
		ctx = backend.WithToken(ctx, session.Token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionFrom(r.Context()); !ok {
			Error(w, r, domain.ErrSessionNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(domain.Session)
	return session, ok
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, name+" must be a number")
	}
	return id, nil
}

// --- auth ---

type loginPayload struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type sessionResponse struct {
	SessionID string      `json:"sessionId"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func toSessionResponse(session domain.Session) sessionResponse {
	return sessionResponse{SessionID: session.ID, User: session.User, ExpiresAt: session.ExpiresAt}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	session, err := h.sessions.Login(r.Context(), payload.UsernameOrEmail, payload.Password)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, toSessionResponse(session))
}

type registerPayload struct {
	domain.RegisterRequest
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	session, err := h.sessions.Register(r.Context(), payload.RegisterRequest, payload.ConfirmPassword)
	if err != nil {
		Error(w, r, err)
		return
	}
	Created(w, r, toSessionResponse(session))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())
	if err := h.sessions.Logout(r.Context(), session.ID); err != nil {
		Error(w, r, err)
		return
	}
	h.dropSessionDialogs(session.ID)
	NoContent(w, r)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())
	JSON(w, r, session.User)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())
	var req domain.UpdateProfileRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	updated, err := h.sessions.UpdateProfile(r.Context(), session.ID, req)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, updated.User)
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())
	var payload changePasswordPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	if err := h.sessions.ChangePassword(r.Context(), session.ID, payload.CurrentPassword, payload.NewPassword, payload.ConfirmPassword); err != nil {
		Error(w, r, err)
		return
	}
	NoContent(w, r)
}

// --- quiz listing and detail ---

type quizCard struct {
	domain.QuizSummary
	Status    quizstate.Status    `json:"status"`
	DateBadge quizstate.DateBadge `json:"dateBadge,omitempty"`
}

func searchParams(r *http.Request) domain.QuizSearchParams {
	q := r.URL.Query()
	params := domain.QuizSearchParams{
		SearchTerm:    q.Get("searchTerm"),
		SortBy:        domain.SortField(q.Get("sortBy")),
		SortDirection: domain.SortDirection(q.Get("sortDirection")),
	}
	if raw := q.Get("categoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.CategoryID = id
		}
	}
	return params
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.backend.SearchQuizzes(r.Context(), searchParams(r))
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, h.toCards(quizzes))
}

func (h *Handler) toCards(quizzes []domain.QuizSummary) []quizCard {
	now := h.clock()
	cards := make([]quizCard, 0, len(quizzes))
	for _, quiz := range quizzes {
		status, badge := quizstate.Badges(quiz.DateTime, quiz.MaxTeams, quiz.RegisteredTeamsCount, now)
		cards = append(cards, quizCard{QuizSummary: quiz, Status: status, DateBadge: badge})
	}
	return cards
}

type quizDetailResponse struct {
	Quiz             domain.Quiz          `json:"quiz"`
	State            quizstate.Descriptor `json:"state"`
	Teams            []domain.QuizTeam    `json:"teams"`
	OwnTeam          *domain.QuizTeam     `json:"ownTeam,omitempty"`
	ResultsPublished bool                 `json:"resultsPublished"`
}

// viewerFrom maps an optional session to the evaluator's viewer.
func viewerFrom(session domain.Session, ok bool, team *domain.QuizTeam) quizstate.Viewer {
	if !ok {
		return quizstate.Viewer{}
	}
	return quizstate.Viewer{
		Authenticated: true,
		Role:          session.User.Role,
		UserID:        session.User.ID,
		Email:         session.User.Email,
		Team:          team,
	}
}

func (h *Handler) quizDetail(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}

	quiz, err := h.quizzes.Quiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}
	teams, err := h.backend.TeamsByQuiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}

	session, ok := sessionFrom(r.Context())
	var own *domain.QuizTeam
	if ok && session.User.Role == domain.RoleCompetitor {
		own = h.registrations.ExistingRegistration(r.Context(), quizID, session.User.Email)
	}

	JSON(w, r, quizDetailResponse{
		Quiz:             quiz,
		State:            quizstate.Evaluate(&quiz, h.clock(), viewerFrom(session, ok, own)),
		Teams:            teams,
		OwnTeam:          own,
		ResultsPublished: results.Published(teams),
	})
}

// --- registration ---

// dialog returns the per-session, per-quiz dialog so the submitting gate
// holds across requests from the same client.
func (h *Handler) dialog(sessionID string, quizID int64) *app.Dialog {
	key := sessionID + ":" + strconv.FormatInt(quizID, 10)
	h.dialogMu.Lock()
	defer h.dialogMu.Unlock()
	d, ok := h.dialogs[key]
	if !ok {
		d = app.NewDialog()
		h.dialogs[key] = d
	}
	return d
}

// dropDialog forgets a settled dialog; without eviction the registry grows
// for the life of the process.
func (h *Handler) dropDialog(sessionID string, quizID int64) {
	h.dialogMu.Lock()
	defer h.dialogMu.Unlock()
	delete(h.dialogs, sessionID+":"+strconv.FormatInt(quizID, 10))
}

// dropSessionDialogs clears every dialog the session opened.
func (h *Handler) dropSessionDialogs(sessionID string) {
	h.dialogMu.Lock()
	defer h.dialogMu.Unlock()
	for key := range h.dialogs {
		if strings.HasPrefix(key, sessionID+":") {
			delete(h.dialogs, key)
		}
	}
}

type teamPayload struct {
	TeamName         string `json:"teamName"`
	ParticipantCount int    `json:"participantCount"`
}

func (h *Handler) registerTeam(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	var payload teamPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}

	session, _ := sessionFrom(r.Context())
	quiz, err := h.quizzes.Quiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}

	dialog := h.dialog(session.ID, quizID)
	dialog.Open()
	snapshot, err := h.registrations.Register(r.Context(), dialog, quiz, session.User.Email, payload.TeamName, payload.ParticipantCount)
	if err != nil {
		Error(w, r, err)
		return
	}
	h.dropDialog(session.ID, quizID)
	Created(w, r, snapshot)
}

func (h *Handler) updateTeam(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	teamID, err := idParam(r, "teamID")
	if err != nil {
		Error(w, r, err)
		return
	}
	var payload teamPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}

	session, _ := sessionFrom(r.Context())
	quiz, err := h.quizzes.Quiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}

	dialog := h.dialog(session.ID, quizID)
	dialog.Open()
	snapshot, err := h.registrations.Update(r.Context(), dialog, quiz, teamID, session.User.Email, payload.TeamName, payload.ParticipantCount)
	if err != nil {
		Error(w, r, err)
		return
	}
	h.dropDialog(session.ID, quizID)
	JSON(w, r, snapshot)
}

func (h *Handler) withdrawTeam(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	teamID, err := idParam(r, "teamID")
	if err != nil {
		Error(w, r, err)
		return
	}

	session, _ := sessionFrom(r.Context())
	confirmed := r.URL.Query().Get("confirm") == "true"
	snapshot, err := h.registrations.Withdraw(r.Context(), quizID, teamID, session.User.Email, confirmed)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, snapshot)
}

func (h *Handler) myTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.backend.MyTeams(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, teams)
}

// --- results ---

type resultsResponse struct {
	Published bool            `json:"published"`
	Groups    []results.Group `json:"groups"`
}

func (h *Handler) quizResults(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	teams, err := h.backend.TeamsByQuiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, resultsResponse{
		Published: results.Published(teams),
		Groups:    results.GroupByPosition(teams),
	})
}

func (h *Handler) resultsSheet(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	teams, err := h.backend.TeamsByQuiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, results.EntrySheet(teams))
}

type setResultsPayload struct {
	Entries []results.Entry `json:"entries"`
}

// setResults validates the sheet locally, then pushes every position in
// parallel. One failed team fails the whole submission.
func (h *Handler) setResults(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	var payload setResultsPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}

	teams, err := h.backend.TeamsByQuiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}
	if err := results.ValidatePositions(payload.Entries, len(teams)); err != nil {
		Error(w, r, err)
		return
	}
	if err := results.ValidateTeamSet(payload.Entries, teams); err != nil {
		Error(w, r, err)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	for _, entry := range payload.Entries {
		entry := entry
		g.Go(func() error {
			return h.backend.SetTeamResult(ctx, entry.TeamID, domain.TeamResultRequest{FinalPosition: entry.Position})
		})
	}
	if err := g.Wait(); err != nil {
		Error(w, r, err)
		return
	}

	h.quizzes.Invalidate(r.Context(), quizID)
	updated, err := h.backend.TeamsByQuiz(r.Context(), quizID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, resultsResponse{
		Published: results.Published(updated),
		Groups:    results.GroupByPosition(updated),
	})
}

// --- organizer pages and quiz management ---

type organizerProfileResponse struct {
	Organizer domain.User `json:"organizer"`
	Quizzes   []quizCard  `json:"quizzes"`
}

// organizerProfile serves the public organizer page: the profile together
// with the organizer's quiz cards, one round trip for the client.
func (h *Handler) organizerProfile(w http.ResponseWriter, r *http.Request) {
	organizerID, err := idParam(r, "organizerID")
	if err != nil {
		Error(w, r, err)
		return
	}
	organizer, err := h.backend.User(r.Context(), organizerID)
	if err != nil {
		Error(w, r, err)
		return
	}
	if organizer.Role != domain.RoleOrganizer {
		Error(w, r, domain.NotFound("organizer"))
		return
	}
	quizzes, err := h.backend.QuizzesByOrganizer(r.Context(), organizerID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, organizerProfileResponse{Organizer: organizer, Quizzes: h.toCards(quizzes)})
}

func (h *Handler) organizerQuizzes(w http.ResponseWriter, r *http.Request) {
	organizerID, err := idParam(r, "organizerID")
	if err != nil {
		Error(w, r, err)
		return
	}
	quizzes, err := h.backend.QuizzesByOrganizer(r.Context(), organizerID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, h.toCards(quizzes))
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req domain.QuizRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	quiz, err := h.backend.CreateQuiz(r.Context(), req)
	if err != nil {
		Error(w, r, err)
		return
	}
	Created(w, r, quiz)
}

func (h *Handler) updateQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	var req domain.QuizRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	quiz, err := h.backend.UpdateQuiz(r.Context(), quizID, req)
	if err != nil {
		Error(w, r, err)
		return
	}
	h.quizzes.Invalidate(r.Context(), quizID)
	JSON(w, r, quiz)
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		Error(w, r, domain.ErrConfirmationRequired)
		return
	}
	if err := h.backend.DeleteQuiz(r.Context(), quizID); err != nil {
		Error(w, r, err)
		return
	}
	h.quizzes.Invalidate(r.Context(), quizID)
	NoContent(w, r)
}

// --- categories ---

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.backend.Categories(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.CategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	if err := h.backend.CreateCategory(r.Context(), req); err != nil {
		Error(w, r, err)
		return
	}
	Created(w, r, req)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r, "categoryID")
	if err != nil {
		Error(w, r, err)
		return
	}
	var req domain.CategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}
	if err := h.backend.UpdateCategory(r.Context(), categoryID, req); err != nil {
		Error(w, r, err)
		return
	}
	// Echoing the request would hide backend-side normalization, so re-read.
	updated, err := h.backend.Category(r.Context(), categoryID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, updated)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r, "categoryID")
	if err != nil {
		Error(w, r, err)
		return
	}
	if err := h.backend.DeleteCategory(r.Context(), categoryID); err != nil {
		Error(w, r, err)
		return
	}
	NoContent(w, r)
}

// --- notifications and subscriptions ---

func (h *Handler) myNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.backend.MyNotifications(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, notifications)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "notificationID")
	if err != nil {
		Error(w, r, err)
		return
	}
	if err := h.backend.MarkNotificationRead(r.Context(), id); err != nil {
		Error(w, r, err)
		return
	}
	NoContent(w, r)
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.MarkAllNotificationsRead(r.Context()); err != nil {
		Error(w, r, err)
		return
	}
	NoContent(w, r)
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "notificationID")
	if err != nil {
		Error(w, r, err)
		return
	}
	if err := h.backend.DeleteNotification(r.Context(), id); err != nil {
		Error(w, r, err)
		return
	}
	NoContent(w, r)
}

type subscriptionResponse struct {
	Subscribed bool `json:"subscribed"`
}

func (h *Handler) subscriptionStatus(w http.ResponseWriter, r *http.Request) {
	organizerID, err := idParam(r, "organizerID")
	if err != nil {
		Error(w, r, err)
		return
	}
	subscribed, err := h.backend.SubscriptionStatus(r.Context(), organizerID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, subscriptionResponse{Subscribed: subscribed})
}

func (h *Handler) toggleSubscription(w http.ResponseWriter, r *http.Request) {
	organizerID, err := idParam(r, "organizerID")
	if err != nil {
		Error(w, r, err)
		return
	}
	subscribed, err := h.backend.ToggleSubscription(r.Context(), organizerID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, subscriptionResponse{Subscribed: subscribed})
}

func (h *Handler) mySubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := h.backend.MySubscriptions(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, subscriptions)
}

// --- admin ---

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, stats)
}

func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.Users(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, users)
}

func (h *Handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userID")
	if err != nil {
		Error(w, r, err)
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.admin.DeleteUser(r.Context(), userID, confirmed); err != nil {
		Error(w, r, err)
		return
	}
	NoContent(w, r)
}

func (h *Handler) pendingOrganizers(w http.ResponseWriter, r *http.Request) {
	pending, err := h.admin.PendingOrganizers(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, pending)
}

type decisionPayload struct {
	Decision  app.Decision `json:"decision"`
	Confirmed bool         `json:"confirmed"`
}

func (h *Handler) resolvePending(w http.ResponseWriter, r *http.Request) {
	organizerID, err := idParam(r, "organizerID")
	if err != nil {
		Error(w, r, err)
		return
	}
	var payload decisionPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		Error(w, r, domain.NewValidationError("body", "request body is not valid JSON"))
		return
	}

	pending, err := h.admin.PendingOrganizers(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	remaining, err := h.admin.ResolvePending(r.Context(), pending, organizerID, payload.Decision, payload.Confirmed)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, remaining)
}
