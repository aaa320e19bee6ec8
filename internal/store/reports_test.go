package store

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/erazemk/tacka/internal/db"
	"github.com/erazemk/tacka/internal/model"
)

// Test accounts, created by addUsers in this order.
const (
	anaID int64 = iota + 1
	borID
	eveID
)

func addUsers(t *testing.T, database *sql.DB) {
	t.Helper()
	for i, name := range []string{"ana", "bor", "eve"} {
		u, err := CreateUser(context.Background(), database, name, "hash", model.RoleMember)
		if err != nil {
			t.Fatalf("CreateUser(%s): %v", name, err)
		}
		if u.ID != int64(i+1) {
			t.Fatalf("user %s got id %d", name, u.ID)
		}
	}
}

func newLost(name string) model.Report {
	return model.Report{
		Species:     "Dog",
		Breed:       "Golden Retriever",
		Color:       "Golden",
		Location:    "Central Park, NYC",
		Date:        "2025-06-20",
		Description: "Friendly dog, wearing blue collar",
		ContactInfo: "john@email.com",
		Images:      []string{"p1", "p2"},
		ReporterID:  anaID,
		Reporter:    "ana",
		Details:     model.Lost{Name: name, Reward: "$200"},
	}
}

func newFound(species string) model.Report {
	return model.Report{
		Species:     species,
		Color:       "Orange and White",
		Location:    "Brooklyn Heights",
		Date:        "2025-06-21",
		Description: "Found hiding under a car",
		ContactInfo: "mike@email.com",
		ReporterID:  borID,
		Reporter:    "bor",
		Details:     model.Found{},
	}
}

func TestCreateAndGetReport(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	created, err := CreateReport(ctx, database, newLost("Max"))
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Status != model.StatusActive {
		t.Errorf("expected status active, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := GetReport(ctx, database, created.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	want := newLost("Max")
	want.ID, want.Status, want.CreatedAt = created.ID, model.StatusActive, got.CreatedAt
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("got %#v\nwant %#v", *got, want)
	}
}

func TestCreateFoundReportHasNoName(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	created, err := CreateReport(ctx, database, newFound("Cat"))
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if created.Kind() != model.KindFound || created.Name() != "" {
		t.Errorf("unexpected found report: %+v", created)
	}
	if len(created.Images) != 0 {
		t.Errorf("expected no images, got %v", created.Images)
	}
}

func TestGetReportNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	if _, err := GetReport(context.Background(), database, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListReportsInsertionOrder(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	a, _ := CreateReport(ctx, database, newLost("Max"))
	CreateReport(ctx, database, newFound("Cat"))
	c, _ := CreateReport(ctx, database, newLost("Luna"))

	lost, err := ListReports(ctx, database, model.KindLost, "")
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(lost) != 2 || lost[0].ID != a.ID || lost[1].ID != c.ID {
		t.Fatalf("unexpected lost listing: %+v", lost)
	}
	if !reflect.DeepEqual(lost[0].Images, []string{"p1", "p2"}) {
		t.Errorf("images = %v", lost[0].Images)
	}

	all, _ := ListReports(ctx, database, "", "")
	if len(all) != 3 {
		t.Errorf("expected 3 reports, got %d", len(all))
	}

	recent, _ := ListRecentReports(ctx, database, 2)
	if len(recent) != 2 || recent[0].ID != c.ID {
		t.Errorf("expected newest first, got %+v", recent)
	}
}

func TestSetReportStatus(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	r, _ := CreateReport(ctx, database, newLost("Max"))
	CreateReport(ctx, database, newLost("Luna"))

	if err := SetReportStatus(ctx, database, r.ID, model.StatusReunited); err != nil {
		t.Fatalf("SetReportStatus: %v", err)
	}

	active, _ := ListReports(ctx, database, model.KindLost, model.StatusActive)
	if len(active) != 1 {
		t.Errorf("expected 1 active lost report, got %d", len(active))
	}

	if err := SetReportStatus(ctx, database, "missing", model.StatusClosed); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := SetReportStatus(ctx, database, r.ID, "gone"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestCreateReportNeedsReporter(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	r := newLost("Max")
	r.ReporterID = 0
	if _, err := CreateReport(ctx, database, r); err == nil {
		t.Error("expected error for report without reporter")
	}

	r.ReporterID = 99
	if _, err := CreateReport(ctx, database, r); err == nil {
		t.Error("expected error for unknown reporter")
	}
}

func TestReportOwnerSurvivesNameReuse(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	r, _ := CreateReport(ctx, database, newLost("Max"))
	if err := DeleteUser(ctx, database, anaID); err != nil {
		t.Fatal(err)
	}
	again, err := CreateUser(ctx, database, "ana", "hash", model.RoleMember)
	if err != nil {
		t.Fatalf("re-registering name: %v", err)
	}

	got, _ := GetReport(ctx, database, r.ID)
	if got.ReporterID != anaID || got.ReporterID == again.ID {
		t.Errorf("reporter id = %d, want original %d", got.ReporterID, anaID)
	}
}
