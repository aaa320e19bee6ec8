// Package chat models one open conversation: its message log and the
// text being composed.
package chat

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erazemk/tacka/internal/model"
)

// MaxMessageLength is the longest draft, in runes, a session accepts.
const MaxMessageLength = 500

// TimeLayout renders message times as hour:minute.
const TimeLayout = "15:04"

// State is the input state of a session.
type State int

// Session states.
const (
	Idle State = iota
	Composing
)

func (s State) String() string {
	if s == Composing {
		return "composing"
	}
	return "idle"
}

// Session holds the ordered log of one chat and the local draft.
type Session struct {
	me     string
	chatID string
	log    []model.ChatMessage
	draft  string
	now    func() time.Time
	lastID int64
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to timestamp sent messages.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithChatID tags sent messages with the given chat ID.
func WithChatID(id string) Option {
	return func(s *Session) { s.chatID = id }
}

// NewSession opens a session for user me, seeded with history in order.
// IsMine on the seeded messages is derived from their sender.
func NewSession(me string, history []model.ChatMessage, opts ...Option) *Session {
	s := &Session{
		me:  me,
		log: make([]model.ChatMessage, 0, len(history)+1),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, m := range history {
		m.IsMine = m.SenderID == me
		s.log = append(s.log, m)
		s.lastID = max(s.lastID, m.ID)
	}
	return s
}

// SetDraft replaces the text being composed. Text past MaxMessageLength
// runes is cut off.
func (s *Session) SetDraft(text string) {
	if utf8.RuneCountInString(text) > MaxMessageLength {
		runes := []rune(text)
		text = string(runes[:MaxMessageLength])
	}
	s.draft = text
}

// Draft returns the text being composed.
func (s *Session) Draft() string {
	return s.draft
}

// State reports Composing while the draft has non-blank text.
func (s *Session) State() State {
	if strings.TrimSpace(s.draft) == "" {
		return Idle
	}
	return Composing
}

// Send appends the trimmed draft as a new message from me and clears the
// draft. With a blank draft nothing happens and ok is false.
func (s *Session) Send() (msg model.ChatMessage, ok bool) {
	text := strings.TrimSpace(s.draft)
	if text == "" {
		return model.ChatMessage{}, false
	}

	s.lastID++
	msg = model.ChatMessage{
		ID:        s.lastID,
		ChatID:    s.chatID,
		Text:      text,
		SenderID:  s.me,
		Timestamp: s.now(),
		IsMine:    true,
	}
	s.log = append(s.log, msg)
	s.draft = ""
	return msg, true
}

// Messages returns a copy of the log in send order.
func (s *Session) Messages() []model.ChatMessage {
	return slices.Clone(s.log)
}

// FormatTime renders ts as hour:minute in loc. A nil loc means local time.
func FormatTime(ts time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(TimeLayout)
}
