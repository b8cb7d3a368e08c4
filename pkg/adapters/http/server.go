package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skene-dev/skene/internal/logging"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
	"github.com/skene-dev/skene/pkg/session"
)

// Server handles the assistant platform's webhook calls and maps them onto
// the engine's Request/Reply contract. It owns serialization; the engine
// never sees the wire format.
type Server struct {
	engine   ports.TurnEngine
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSessionManager enables server-side session persistence for hosts
// that do not round-trip the state blob themselves.
func WithSessionManager(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// WithLogger sets a structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the webhook.
func NewHandler(engine ports.TurnEngine, opts ...Option) http.Handler {
	server := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Post("/", server.handleTurn)
	r.Get("/healthz", server.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// handleTurn processes one webhook call: decode, run the turn, persist the
// next state (if configured), encode.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var body webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("turn: invalid request body", "err", err)
		return
	}

	state := domain.SessionState(body.State.Session)
	sessionID := body.Session.SessionID

	// Hosts that do not echo state back get it from the session store.
	if len(state) == 0 && s.sessions != nil && sessionID != "" {
		stored, err := s.sessions.Load(r.Context(), sessionID)
		switch {
		case err == nil:
			state = stored
		case err != domain.ErrSessionNotFound:
			s.logger.Warn("turn: session load failed, starting fresh",
				"session_id", sessionID, "err", err)
		}
	}

	req := mapRequest(body, state)

	reply, next, err := s.engine.HandleTurn(r.Context(), req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Turn error: %v", err), http.StatusInternalServerError)
		s.logger.Error("turn failed", "session_id", sessionID, "err", err)
		return
	}

	if s.sessions != nil && sessionID != "" {
		if err := s.sessions.Save(r.Context(), sessionID, next); err != nil {
			// The reply still ships; the platform's echoed state covers us.
			s.logger.Warn("turn: session save failed",
				"session_id", sessionID, "err", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(mapReply(reply, next)); err != nil {
		s.logger.Error("turn response encode failed", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// -- Wire format --

// entityTypeNumber is the NLU entity type carrying numeric values.
const entityTypeNumber = "YANDEX.NUMBER"

type webhookRequest struct {
	Session struct {
		SessionID string `json:"session_id"`
		MessageID int    `json:"message_id"`
		New       bool   `json:"new"`
	} `json:"session"`
	Request struct {
		Command           string `json:"command"`
		OriginalUtterance string `json:"original_utterance"`
		NLU               struct {
			Tokens   []string              `json:"tokens"`
			Entities []wireEntity          `json:"entities"`
			Intents  map[string]wireIntent `json:"intents"`
		} `json:"nlu"`
	} `json:"request"`
	State struct {
		Session map[string]any `json:"session"`
	} `json:"state"`
	Version string `json:"version"`
}

type wireEntity struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type wireIntent struct {
	Slots map[string]wireSlot `json:"slots"`
}

type wireSlot struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type webhookResponse struct {
	Response     wireReply      `json:"response"`
	SessionState map[string]any `json:"session_state"`
	Version      string         `json:"version"`
}

type wireReply struct {
	Text       string       `json:"text"`
	TTS        string       `json:"tts,omitempty"`
	Buttons    []wireButton `json:"buttons,omitempty"`
	Card       *wireCard    `json:"card,omitempty"`
	EndSession bool         `json:"end_session"`
}

type wireButton struct {
	Title string `json:"title"`
	Hide  bool   `json:"hide"`
}

type wireCard struct {
	Type  string         `json:"type"`
	Items []wireCardItem `json:"items"`
}

type wireCardItem struct {
	ImageID string `json:"image_id"`
}

func mapRequest(body webhookRequest, state domain.SessionState) domain.Request {
	intents := make(map[string]domain.Intent, len(body.Request.NLU.Intents))
	for name, in := range body.Request.NLU.Intents {
		slots := make(map[string]domain.Slot, len(in.Slots))
		for slotName, slot := range in.Slots {
			slots[slotName] = domain.Slot{Value: slotString(slot.Value)}
		}
		intents[name] = domain.Intent{Slots: slots}
	}

	var numbers []int
	for _, e := range body.Request.NLU.Entities {
		if e.Type != entityTypeNumber {
			continue
		}
		if n, ok := entityInt(e.Value); ok {
			numbers = append(numbers, n)
		}
	}

	if state == nil {
		state = domain.SessionState{}
	}

	return domain.Request{
		Utterance:       body.Request.OriginalUtterance,
		Intents:         intents,
		NumericEntities: numbers,
		Session:         state,
	}
}

func mapReply(reply domain.Reply, next domain.SessionState) webhookResponse {
	wire := wireReply{
		Text: reply.Text,
		TTS:  reply.TTS,
	}
	for _, b := range reply.Buttons {
		wire.Buttons = append(wire.Buttons, wireButton{Title: b.Title, Hide: b.Hide})
	}
	if reply.Gallery != nil {
		card := &wireCard{Type: "ImageGallery"}
		for _, id := range reply.Gallery.ImageIDs {
			card.Items = append(card.Items, wireCardItem{ImageID: id})
		}
		wire.Card = card
	}

	return webhookResponse{
		Response:     wire,
		SessionState: next,
		Version:      "1.0",
	}
}

// slotString renders a slot value for the engine. Slots the engine reads
// are strings on the wire; anything else is passed through via fmt.
func slotString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// entityInt extracts an exact integer from a numeric entity value.
// Fractional numbers are dropped: answers are exact-integer matches only.
func entityInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}
