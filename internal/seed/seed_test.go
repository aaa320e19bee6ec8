package seed

import (
	"context"
	"testing"

	"github.com/erazemk/tacka/internal/chat"
	"github.com/erazemk/tacka/internal/db"
	"github.com/erazemk/tacka/internal/model"
	"github.com/erazemk/tacka/internal/reports"
	"github.com/erazemk/tacka/internal/store"
)

func TestReportsAreValid(t *testing.T) {
	for _, r := range Reports() {
		d := model.Draft{
			Name: r.Name(), Species: r.Species, Color: r.Color, Location: r.Location,
			Date: r.Date, Description: r.Description, ContactInfo: r.ContactInfo,
		}
		if errs := model.ValidateDraft(d, r.Kind()); len(errs) > 0 {
			t.Errorf("seed report %q invalid: %v", r.Description, errs)
		}
	}
}

func TestReportsAreFresh(t *testing.T) {
	a := Reports()
	a[0].Images[0] = "changed"
	if Reports()[0].Images[0] == "changed" {
		t.Error("Reports shares state between calls")
	}
}

func TestListByTypeOverSeed(t *testing.T) {
	s := reports.New(Reports()...)

	var names []string
	for r := range s.ListByType(model.KindLost) {
		names = append(names, r.Name())
	}
	if len(names) != 2 || names[0] != "Max" || names[1] != "Luna" {
		t.Errorf("lost reports = %v, want [Max Luna]", names)
	}
}

func TestConversationOwnership(t *testing.T) {
	s := chat.NewSession("owner", Conversation("owner", "other"))
	msgs := s.Messages()
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5", len(msgs))
	}
	for i, m := range msgs {
		if want := i%2 == 1; m.IsMine != want {
			t.Errorf("message %d IsMine = %v, want %v", m.ID, m.IsMine, want)
		}
	}
}

func TestApply(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ana, err := store.CreateUser(ctx, database, "ana", "hash", model.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	applied, err := Apply(ctx, database, ana.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !applied {
		t.Fatal("expected seed to apply to an empty database")
	}

	all, _ := store.ListReports(ctx, database, "", "")
	if len(all) != 4 {
		t.Fatalf("got %d reports, want 4", len(all))
	}
	if all[0].Name() != "Max" || all[0].ReporterID != ana.ID || all[0].Reporter != "ana" {
		t.Errorf("first report = %+v", all[0])
	}

	chats, _ := store.ListChatsForUser(ctx, database, ana.ID)
	if len(chats) != 1 || chats[0].With != Inquirer {
		t.Fatalf("chats = %+v, want one with %s", chats, Inquirer)
	}
	msgs, _ := store.ListChatMessages(ctx, database, chats[0].ID)
	if len(msgs) != 5 || msgs[1].SenderName != "ana" {
		t.Errorf("messages = %+v", msgs)
	}

	again, err := Apply(ctx, database, ana.ID)
	if err != nil || again {
		t.Errorf("second Apply = %v, %v; want false, nil", again, err)
	}
}
