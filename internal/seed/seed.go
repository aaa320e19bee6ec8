// Package seed provides demo reports and a sample conversation.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/erazemk/tacka/internal/model"
	"github.com/erazemk/tacka/internal/store"
)

// Inquirer is the username that writes to the reporter in the demo chat.
const Inquirer = "neighbour"

// lockedHash matches no password, so the demo inquirer cannot log in.
const lockedHash = "!"

// Reports returns the demo reports: two lost pets followed by two found ones.
// Each call returns fresh values.
func Reports() []model.Report {
	return []model.Report{
		{
			Species:     "Dog",
			Breed:       "Golden Retriever",
			Color:       "Golden",
			Date:        "2025-06-20",
			Location:    "Central Park, NYC",
			Description: "Friendly dog, wearing blue collar with name tag",
			ContactInfo: "john@email.com",
			Images:      []string{"https://place-puppy.com/300x300"},
			Status:      model.StatusActive,
			Details:     model.Lost{Name: "Max", Reward: "$200"},
		},
		{
			Species:     "Cat",
			Breed:       "Siamese Cat",
			Color:       "Cream and Brown",
			Date:        "2025-06-21",
			Location:    "Brooklyn Heights",
			Description: "Indoor cat, very shy, blue eyes",
			ContactInfo: "sarah@email.com",
			Images:      []string{"https://placekitten.com/300/300"},
			Status:      model.StatusActive,
			Details:     model.Lost{Name: "Luna"},
		},
		{
			Species:     "Dog",
			Breed:       "Golden Retriever",
			Color:       "Golden",
			Date:        "2025-06-21",
			Location:    "Central Park, NYC",
			Description: "Found wandering near the lake, very friendly, wearing blue collar",
			ContactInfo: "jane@email.com",
			Images:      []string{"https://place-puppy.com/300x300"},
			Status:      model.StatusActive,
			Details:     model.Found{},
		},
		{
			Species:     "Cat",
			Color:       "Orange and White",
			Date:        "2025-06-20",
			Location:    "Brooklyn Heights",
			Description: "Found hiding under car, seems domesticated, no collar",
			ContactInfo: "mike@email.com",
			Images:      []string{"https://placekitten.com/300/300"},
			Status:      model.StatusActive,
			Details:     model.Found{},
		},
	}
}

// Conversation returns the demo exchange between an inquirer who spotted
// Max and his owner, oldest first. Both are given as sender IDs.
func Conversation(owner, inquirer string) []model.ChatMessage {
	at := func(minute int) time.Time {
		return time.Date(2025, 6, 21, 10, minute, 0, 0, time.UTC)
	}
	return []model.ChatMessage{
		{ID: 1, SenderID: inquirer, Timestamp: at(30),
			Text: "Hi! I saw your post about the lost Golden Retriever. I think I might have seen him near Central Park."},
		{ID: 2, SenderID: owner, Timestamp: at(32),
			Text: "Really? That would be amazing! Can you tell me more details about what you saw?"},
		{ID: 3, SenderID: inquirer, Timestamp: at(35),
			Text: "I saw a golden retriever around 3 PM yesterday near the lake area. He was wearing a blue collar and seemed friendly but lost."},
		{ID: 4, SenderID: owner, Timestamp: at(37),
			Text: "That sounds exactly like Max! Did you happen to see which direction he went?"},
		{ID: 5, SenderID: inquirer, Timestamp: at(40),
			Text: "He was heading towards the north entrance when I last saw him. I can meet you there if you want to look together."},
	}
}

// Apply stores the demo data on behalf of the user reporterID and creates
// the Inquirer account if needed. It does nothing when the database
// already holds reports and reports whether it wrote anything.
func Apply(ctx context.Context, db *sql.DB, reporterID int64) (bool, error) {
	existing, err := store.ListReports(ctx, db, "", "")
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	inquirer, err := store.GetUserByUsername(ctx, db, Inquirer)
	if errors.Is(err, model.ErrNotFound) {
		inquirer, err = store.CreateUser(ctx, db, Inquirer, lockedHash, model.RoleMember)
	}
	if err != nil {
		return false, fmt.Errorf("seeding inquirer: %w", err)
	}

	var first *model.Report
	for _, r := range Reports() {
		r.ReporterID = reporterID
		created, err := store.CreateReport(ctx, db, r)
		if err != nil {
			return false, fmt.Errorf("seeding report: %w", err)
		}
		if first == nil {
			first = created
		}
	}

	c, err := store.OpenChat(ctx, db, first.ID, inquirer.ID)
	if err != nil {
		return false, fmt.Errorf("seeding chat: %w", err)
	}
	owner := strconv.FormatInt(reporterID, 10)
	for _, msg := range Conversation(owner, strconv.FormatInt(inquirer.ID, 10)) {
		msg.ChatID = c.ID
		if err := store.AddChatMessage(ctx, db, msg); err != nil {
			return false, fmt.Errorf("seeding chat: %w", err)
		}
	}

	slog.Info("demo data seeded", "reports", len(Reports()), "reporter", first.Reporter)
	return true, nil
}
