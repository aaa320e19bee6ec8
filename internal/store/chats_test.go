package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/tacka/internal/db"
	"github.com/erazemk/tacka/internal/model"
)

func TestOpenChatIsIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	r, _ := CreateReport(ctx, database, newLost("Max"))

	first, err := OpenChat(ctx, database, r.ID, borID)
	if err != nil {
		t.Fatalf("OpenChat: %v", err)
	}
	if first.ReporterID != anaID || first.Reporter != "ana" || first.InquirerID != borID || first.Inquirer != "bor" {
		t.Errorf("unexpected participants: %+v", first)
	}

	second, err := OpenChat(ctx, database, r.ID, borID)
	if err != nil {
		t.Fatalf("second OpenChat: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected same chat, got %q and %q", first.ID, second.ID)
	}

	if _, err := OpenChat(ctx, database, r.ID, anaID); !errors.Is(err, ErrOwnReport) {
		t.Error("reporter should not open a chat with themselves")
	}
	if _, err := OpenChat(ctx, database, "missing", borID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestChatMessages(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	r, _ := CreateReport(ctx, database, newLost("Max"))
	c, _ := OpenChat(ctx, database, r.ID, borID)

	base := time.Date(2025, 6, 21, 10, 30, 0, 0, time.UTC)
	msgs := []model.ChatMessage{
		{ChatID: c.ID, ID: 1, SenderID: "2", Text: "I saw him near the lake", Timestamp: base},
		{ChatID: c.ID, ID: 2, SenderID: "1", Text: "Really?", Timestamp: base.Add(2 * time.Minute)},
	}
	for _, m := range msgs {
		if err := AddChatMessage(ctx, database, m); err != nil {
			t.Fatalf("AddChatMessage: %v", err)
		}
	}
	if err := AddChatMessage(ctx, database, msgs[0]); err == nil {
		t.Error("expected duplicate message id to fail")
	}
	if err := AddChatMessage(ctx, database, model.ChatMessage{ChatID: c.ID, ID: 3, SenderID: "ana", Text: "x", Timestamp: base}); err == nil {
		t.Error("expected non-numeric sender to fail")
	}

	got, err := ListChatMessages(ctx, database, c.ID)
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if len(got) != 2 || got[0].Text != msgs[0].Text || got[1].SenderID != "1" || got[1].SenderName != "ana" {
		t.Fatalf("unexpected messages: %+v", got)
	}
	if !got[1].Timestamp.Equal(msgs[1].Timestamp) {
		t.Errorf("timestamp = %v, want %v", got[1].Timestamp, msgs[1].Timestamp)
	}

	chats, err := ListChatsForUser(ctx, database, anaID)
	if err != nil {
		t.Fatalf("ListChatsForUser: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("expected 1 chat, got %d", len(chats))
	}
	if chats[0].With != "bor" || chats[0].LastMessage != "Really?" || chats[0].PetLabel != "Max (Dog)" {
		t.Errorf("unexpected summary: %+v", chats[0])
	}

	if other, _ := ListChatsForUser(ctx, database, eveID); len(other) != 0 {
		t.Errorf("expected no chats for outsider, got %d", len(other))
	}

	if _, err := GetChat(ctx, database, "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
