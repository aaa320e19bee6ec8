package store

import (
	"context"
	"testing"

	"github.com/erazemk/tacka/internal/db"
	"github.com/erazemk/tacka/internal/model"
)

func TestGetDashboardStats(t *testing.T) {
	database := db.NewTestDB(t)
	addUsers(t, database)
	ctx := context.Background()

	maxReport, _ := CreateReport(ctx, database, newLost("Max"))
	luna, _ := CreateReport(ctx, database, newLost("Luna"))
	CreateReport(ctx, database, newFound("Cat"))
	SetReportStatus(ctx, database, luna.ID, model.StatusReunited)
	OpenChat(ctx, database, maxReport.ID, borID)

	stats, err := GetDashboardStats(ctx, database, anaID)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	want := model.DashboardStats{TotalLost: 1, TotalFound: 1, TotalReunited: 1, MyReports: 2, MyMessages: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
