package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/erazemk/tacka/internal/chat"
	"github.com/erazemk/tacka/internal/model"
	"github.com/erazemk/tacka/internal/store"
)

// ChatsHandler handles conversations between a reporter and the people
// who contact them about a report.
type ChatsHandler struct {
	DB  *sql.DB
	Now func() time.Time

	// mu serializes sends so message IDs stay sequential per chat.
	mu sync.Mutex
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type messageResponse struct {
	model.ChatMessage
	Time string `json:"time"`
}

// Open handles POST /api/reports/{id}/chat: it returns the caller's chat
// about the report, starting one on first contact.
func (h *ChatsHandler) Open(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	c, err := store.OpenChat(r.Context(), h.DB, r.PathValue("id"), claims.UserID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		jsonError(w, http.StatusNotFound, "report not found")
		return
	case errors.Is(err, store.ErrOwnReport):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to open chat", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to open chat")
		return
	}

	jsonResponse(w, http.StatusOK, c)
}

// List handles GET /api/chats.
func (h *ChatsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	chats, err := store.ListChatsForUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list chats", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list chats")
		return
	}
	if chats == nil {
		chats = []model.ChatSummary{}
	}
	jsonResponse(w, http.StatusOK, chats)
}

// Messages handles GET /api/chats/{id}/messages. Times are rendered in the
// ?tz= location, UTC by default.
func (h *ChatsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	loc := time.UTC
	if tz := r.URL.Query().Get("tz"); tz != "" {
		var err error
		if loc, err = time.LoadLocation(tz); err != nil {
			jsonError(w, http.StatusBadRequest, "unknown time zone")
			return
		}
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	msgs := session.Messages()
	resp := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, messageResponse{ChatMessage: m, Time: chat.FormatTime(m.Timestamp, loc)})
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Send handles POST /api/chats/{id}/messages. Blank text and text over
// chat.MaxMessageLength are rejected and nothing is stored.
func (h *ChatsHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if utf8.RuneCountInString(req.Text) > chat.MaxMessageLength {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("message is longer than %d characters", chat.MaxMessageLength))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.SetDraft(req.Text)
	msg, ok := session.Send()
	if !ok {
		jsonError(w, http.StatusBadRequest, "message text required")
		return
	}

	if err := store.AddChatMessage(r.Context(), h.DB, msg); err != nil {
		slog.Error("failed to store chat message", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	msg.SenderName = GetClaims(r.Context()).Username
	slog.Info("chat message sent", "user", msg.SenderName, "chat", msg.ChatID, "id", msg.ID)
	jsonResponse(w, http.StatusCreated, messageResponse{
		ChatMessage: msg,
		Time:        chat.FormatTime(msg.Timestamp, time.UTC),
	})
}

// session loads the chat named in the path for the caller. It writes the
// error response itself and returns false when the chat is missing or
// belongs to other users.
func (h *ChatsHandler) session(w http.ResponseWriter, r *http.Request) (*chat.Session, bool) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	c, err := store.GetChat(r.Context(), h.DB, id)
	if errors.Is(err, model.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "chat not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to get chat", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load chat")
		return nil, false
	}
	if !c.HasParticipant(claims.UserID) {
		jsonError(w, http.StatusForbidden, "not a participant of this chat")
		return nil, false
	}

	history, err := store.ListChatMessages(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to list chat messages", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load chat")
		return nil, false
	}

	now := h.Now
	if now == nil {
		now = time.Now
	}
	me := strconv.FormatInt(claims.UserID, 10)
	return chat.NewSession(me, history, chat.WithChatID(id), chat.WithClock(now)), true
}
