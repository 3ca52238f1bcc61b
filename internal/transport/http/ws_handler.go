package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

type WSHandler struct {
	service  *app.SessionService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.SessionService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option int `json:"option"`
}

type gotoPayload struct {
	Index int `json:"index"`
}

type finishPayload struct {
	Confirmed bool `json:"confirmed"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type confirmFinishPayload struct {
	Unanswered int `json:"unanswered"`
}

// optionView deliberately omits the correct flag: the answer key never
// crosses the wire while a session is active.
type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []optionView `json:"options"`
}

type documentView struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Topic           string         `json:"topic,omitempty"`
	Description     string         `json:"description,omitempty"`
	DurationMinutes int            `json:"durationMinutes"`
	Questions       []questionView `json:"questions"`
}

// resultsPayload carries the score summary plus the full question list so the
// review view can render correct options, explanations and reading material.
type resultsPayload struct {
	Score     domain.ScoreSummary `json:"score"`
	Questions []domain.Question   `json:"questions"`
}

func viewOf(doc domain.QuizDocument) documentView {
	view := documentView{
		ID:              doc.ID,
		Title:           doc.Title,
		Topic:           doc.Topic,
		Description:     doc.Description,
		DurationMinutes: doc.DurationMinutes,
		Questions:       make([]questionView, 0, len(doc.Questions)),
	}
	for _, q := range doc.Questions {
		qv := questionView{ID: q.ID, Prompt: q.Prompt, Options: make([]optionView, 0, len(q.Options))}
		for _, opt := range q.Options {
			qv.Options = append(qv.Options, optionView{ID: opt.ID, Text: opt.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session
// per connection. Passing sessionId reattaches to a running session (another
// tab); the connection that started a session owns its teardown.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	sessionID := r.URL.Query().Get("sessionId")
	if quizID == "" && sessionID == "" {
		http.Error(w, "missing quizId or sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var session *app.Session
	owned := false
	if sessionID != "" {
		session, err = h.service.Resume(sessionID)
	} else {
		session, err = h.service.StartSession(r.Context(), quizID)
		owned = true
	}
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	if owned {
		defer h.service.EndSession(session.ID())
	}

	updates, cancel := session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		resultsSent := false
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: snap}:
				case <-closeSignals:
					return
				}
				if snap.Phase == domain.PhaseActive {
					// A reset went through; the next finish carries fresh results.
					resultsSent = false
				}
				if snap.Phase == domain.PhaseFinished && !resultsSent {
					if summary, err := session.Results(); err == nil {
						resultsSent = true
						select {
						case send <- outboundMessage[any]{Type: "results", Payload: resultsPayload{
							Score:     summary,
							Questions: session.Document().Questions,
						}}:
						case <-closeSignals:
							return
						}
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{SessionID: session.ID()}}
	send <- outboundMessage[any]{Type: "document", Payload: viewOf(session.Document())}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}
				continue
			}
			if err := session.Select(payload.Option); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "save":
			if err := session.SaveAnswer(); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "goto":
			var payload gotoPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid goto payload"}}
				continue
			}
			session.GoTo(payload.Index)
		case "next":
			session.Next()
		case "prev":
			session.Prev()
		case "finish":
			var payload finishPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid finish payload"}}
					continue
				}
			}
			if payload.Confirmed {
				session.ConfirmFinish()
				continue
			}
			if session.RequestFinish() {
				unanswered := 0
				for _, answered := range session.Snapshot().Answered {
					if !answered {
						unanswered++
					}
				}
				send <- outboundMessage[any]{Type: "confirmFinish", Payload: confirmFinishPayload{Unanswered: unanswered}}
			}
		case "reset":
			session.Reset()
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
