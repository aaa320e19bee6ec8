package model

import "time"

// ChatMessage is one entry of a conversation log. SenderID is opaque; the
// service sets it to the sender's user ID.
type ChatMessage struct {
	ID         int64     `json:"id"`
	ChatID     string    `json:"chatId,omitempty"`
	Text       string    `json:"text"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IsMine     bool      `json:"isMine"`
}

// Chat is a conversation about a report between its reporter and one
// inquirer. Participants are identified by user ID; the names are for display.
type Chat struct {
	ID         string    `json:"id"`
	ReportID   string    `json:"reportId"`
	ReporterID int64     `json:"reporterId"`
	Reporter   string    `json:"reporter"`
	InquirerID int64     `json:"inquirerId"`
	Inquirer   string    `json:"inquirer"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasParticipant reports whether the user takes part in the chat.
func (c Chat) HasParticipant(userID int64) bool {
	return userID != 0 && (c.ReporterID == userID || c.InquirerID == userID)
}

// Counterpart returns the name of the other participant from userID's point of view.
func (c Chat) Counterpart(userID int64) string {
	if c.ReporterID == userID {
		return c.Inquirer
	}
	return c.Reporter
}

// ChatSummary is a row of a user's conversation list.
type ChatSummary struct {
	Chat
	With        string     `json:"with"`
	PetKind     Kind       `json:"petType"`
	PetLabel    string     `json:"petLabel"`
	LastMessage string     `json:"lastMessage,omitempty"`
	LastAt      *time.Time `json:"lastAt,omitempty"`
}
