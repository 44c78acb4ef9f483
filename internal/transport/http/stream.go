package http

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/gorilla/websocket"

	"quiz-master-gateway/internal/app"
	"quiz-master-gateway/internal/domain"
	"quiz-master-gateway/internal/quizstate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type searchResultPayload struct {
	Params  domain.QuizSearchParams `json:"params"`
	Quizzes []quizCard              `json:"quizzes"`
	Error   string                  `json:"error,omitempty"`
}

// streamQuiz upgrades to a websocket that pushes the quiz's derived state
// whenever it changes, re-evaluated on a fixed poll interval so badge flips
// (today turning completed, a quiz filling up) arrive without a reload. The
// client may also send debounced search requests over the same connection.
func (h *Handler) streamQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quizID")
	if err != nil {
		Error(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	session, hasSession := sessionFrom(r.Context())

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	pollerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-send:
				if err := conn.WriteJSON(msg); err != nil {
					h.logger.Debug("ws write error", "err", err)
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	// post never blocks forever: a dead writer stops draining send, so every
	// producer also watches writerDone and closeSignals.
	post := func(msg outboundMessage[any]) {
		select {
		case send <- msg:
		case <-writerDone:
		case <-closeSignals:
		}
	}

	go func() {
		defer close(pollerDone)
		ticker := time.NewTicker(h.pollInterval)
		defer ticker.Stop()

		var last quizstate.Descriptor
		first := true
		for {
			descriptor := h.evaluate(r, quizID, session, hasSession)
			if first || !reflect.DeepEqual(descriptor, last) {
				first = false
				last = descriptor
				post(outboundMessage[any]{Type: "state", Payload: descriptor})
			}
			select {
			case <-ticker.C:
			case <-closeSignals:
				return
			}
		}
	}()

	search := app.NewSearchCoordinator(h.backend, h.searchDebounce, func(params domain.QuizSearchParams, quizzes []domain.QuizSummary, err error) {
		payload := searchResultPayload{Params: params, Quizzes: h.toCards(quizzes)}
		if err != nil {
			payload.Error = err.Error()
		}
		post(outboundMessage[any]{Type: "searchResult", Payload: payload})
	}, h.logger)
	defer search.Stop()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "search":
			var params domain.QuizSearchParams
			if err := json.Unmarshal(inbound.Payload, &params); err != nil {
				post(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid search payload"}})
				continue
			}
			search.SetParams(r.Context(), params)
		default:
			post(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	close(closeSignals)
	<-pollerDone
	<-writerDone
}

func (h *Handler) evaluate(r *http.Request, quizID int64, session domain.Session, hasSession bool) quizstate.Descriptor {
	quiz, err := h.quizzes.Quiz(r.Context(), quizID)
	if err != nil {
		return quizstate.Evaluate(nil, h.clock(), quizstate.Viewer{})
	}

	var own *domain.QuizTeam
	if hasSession && session.User.Role == domain.RoleCompetitor {
		own = h.registrations.ExistingRegistration(r.Context(), quizID, session.User.Email)
	}
	return quizstate.Evaluate(&quiz, h.clock(), viewerFrom(session, hasSession, own))
}
