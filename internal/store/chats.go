package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/erazemk/tacka/internal/model"
)

// ErrOwnReport is returned when a reporter tries to open a chat about their own report.
var ErrOwnReport = errors.New("cannot open a chat about your own report")

const chatSelect = `SELECT c.id, c.report_id, r.reporter_id, ru.username, c.inquirer_id, iu.username, c.created_at`

const chatJoins = ` FROM chats c
	JOIN reports r ON r.id = c.report_id
	JOIN users ru ON ru.id = r.reporter_id
	JOIN users iu ON iu.id = c.inquirer_id`

// OpenChat returns the chat between a report's reporter and the inquirer,
// creating it on first contact.
func OpenChat(ctx context.Context, db *sql.DB, reportID string, inquirerID int64) (*model.Chat, error) {
	report, err := GetReport(ctx, db, reportID)
	if err != nil {
		return nil, err
	}
	if report.ReporterID == inquirerID {
		return nil, ErrOwnReport
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO chats (id, report_id, inquirer_id) VALUES (?, ?, ?)`,
		uuid.NewString(), reportID, inquirerID,
	)
	if err != nil {
		return nil, fmt.Errorf("opening chat: %w", err)
	}

	c, err := scanChat(db.QueryRowContext(ctx,
		chatSelect+chatJoins+` WHERE c.report_id = ? AND c.inquirer_id = ?`, reportID, inquirerID,
	))
	if err != nil {
		return nil, fmt.Errorf("reading chat: %w", err)
	}
	return c, nil
}

// GetChat returns a chat by ID, or model.ErrNotFound.
func GetChat(ctx context.Context, db *sql.DB, id string) (*model.Chat, error) {
	c, err := scanChat(db.QueryRowContext(ctx, chatSelect+chatJoins+` WHERE c.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chat %q: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting chat: %w", err)
	}
	return c, nil
}

func scanChat(s scanner) (*model.Chat, error) {
	c := &model.Chat{}
	err := s.Scan(&c.ID, &c.ReportID, &c.ReporterID, &c.Reporter, &c.InquirerID, &c.Inquirer, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListChatsForUser returns the conversations the user takes part in,
// most recently active first.
func ListChatsForUser(ctx context.Context, db *sql.DB, userID int64) ([]model.ChatSummary, error) {
	rows, err := db.QueryContext(ctx,
		chatSelect+`, r.type, r.species, COALESCE(r.name, ''), m.text, m.created_at`+chatJoins+`
		 LEFT JOIN chat_messages m ON m.chat_id = c.id
		      AND m.id = (SELECT MAX(id) FROM chat_messages WHERE chat_id = c.id)
		 WHERE r.reporter_id = ? OR c.inquirer_id = ?
		 ORDER BY COALESCE(m.created_at, c.created_at) DESC`, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	defer rows.Close()

	var chats []model.ChatSummary
	for rows.Next() {
		var (
			s             model.ChatSummary
			species, name string
			last          sql.NullString
			lastAt        sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.ReportID, &s.ReporterID, &s.Reporter, &s.InquirerID, &s.Inquirer,
			&s.CreatedAt, &s.PetKind, &species, &name, &last, &lastAt); err != nil {
			return nil, fmt.Errorf("scanning chat: %w", err)
		}
		s.With = s.Counterpart(userID)
		s.PetLabel = species
		if name != "" {
			s.PetLabel = name + " (" + species + ")"
		}
		s.LastMessage = last.String
		if lastAt.Valid {
			s.LastAt = &lastAt.Time
		}
		chats = append(chats, s)
	}
	return chats, rows.Err()
}

// AddChatMessage appends a message to a chat. SenderID must be a user ID
// and the message ID the next one in the chat; a duplicate ID fails.
func AddChatMessage(ctx context.Context, db *sql.DB, msg model.ChatMessage) error {
	senderID, err := strconv.ParseInt(msg.SenderID, 10, 64)
	if err != nil {
		return fmt.Errorf("adding chat message: invalid sender %q", msg.SenderID)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO chat_messages (chat_id, id, sender_id, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ChatID, msg.ID, senderID, msg.Text, msg.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("adding chat message: %w", err)
	}
	return nil
}

// ListChatMessages returns a chat's messages in send order, with the
// sender's user ID as SenderID. IsMine is not set.
func ListChatMessages(ctx context.Context, db *sql.DB, chatID string) ([]model.ChatMessage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.chat_id, m.id, m.sender_id, u.username, m.text, m.created_at
		 FROM chat_messages m JOIN users u ON u.id = m.sender_id
		 WHERE m.chat_id = ? ORDER BY m.id`, chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.ChatMessage
	for rows.Next() {
		var (
			m        model.ChatMessage
			senderID int64
		)
		if err := rows.Scan(&m.ChatID, &m.ID, &senderID, &m.SenderName, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.SenderID = strconv.FormatInt(senderID, 10)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
