package reports

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/erazemk/tacka/internal/form"
	"github.com/erazemk/tacka/internal/model"
)

func lost(id, name, reward string) model.Report {
	return model.Report{ID: id, Species: "Dog", Color: "Golden", Location: "Central Park", Status: model.StatusActive,
		Details: model.Lost{Name: name, Reward: reward}}
}

func found(id, species string) model.Report {
	return model.Report{ID: id, Species: species, Color: "Orange", Location: "Brooklyn Heights", Status: model.StatusActive,
		Details: model.Found{}}
}

func ids(seq []model.Report) []string {
	var out []string
	for _, r := range seq {
		out = append(out, r.ID)
	}
	return out
}

func TestListByTypeKeepsInsertionOrder(t *testing.T) {
	s := New(lost("a", "Max", ""), found("b", "Cat"), lost("c", "Luna", ""))

	got := ids(slices.Collect(s.ListByType(model.KindLost)))
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("lost = %v, want [a c]", got)
	}
	got = ids(slices.Collect(s.ListByType(model.KindFound)))
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("found = %v, want [b]", got)
	}
}

func TestListByTypeRestartable(t *testing.T) {
	s := New(lost("a", "Max", ""), lost("b", "Luna", ""))
	seq := s.ListByType(model.KindLost)

	first := ids(slices.Collect(seq))
	second := ids(slices.Collect(seq))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass %v differs from first %v", second, first)
	}

	// Early stop.
	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected to stop after 1, got %d", n)
	}
}

func TestAddAssignsID(t *testing.T) {
	s := New()
	r := s.Add(found("", "Cat"))
	if r.ID == "" {
		t.Fatal("expected generated id")
	}
	got, err := s.Get(r.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Species != "Cat" {
		t.Errorf("species = %q", got.Species)
	}

	kept := s.Add(found("fixed", "Dog"))
	if kept.ID != "fixed" {
		t.Errorf("existing id replaced: %q", kept.ID)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestGetNotFound(t *testing.T) {
	s := New()
	if _, err := s.Get("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreOwnsImages(t *testing.T) {
	r := found("a", "Cat")
	r.Images = []string{"p1"}
	s := New(r)
	r.Images[0] = "mutated"

	got, _ := s.Get("a")
	if got.Images[0] != "p1" {
		t.Error("store shares image slice with caller")
	}
	got.Images[0] = "mutated"
	again, _ := s.Get("a")
	if again.Images[0] != "p1" {
		t.Error("Get leaks image slice")
	}
}

func TestSetStatus(t *testing.T) {
	s := New(lost("a", "Max", ""))
	if err := s.SetStatus("a", model.StatusReunited); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got, _ := s.Get("a")
	if got.Status != model.StatusReunited {
		t.Errorf("status = %q", got.Status)
	}
	if err := s.SetStatus("a", "lost"); err == nil {
		t.Error("expected error for invalid status")
	}
	if err := s.SetStatus("zzz", model.StatusClosed); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	s := New(
		lost("a", "Max", "$200"),
		lost("b", "Luna", ""),
		found("c", "Cat"),
		found("d", "Dog"),
	)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"a", "b", "c", "d"}},
		{"reward", Filter{HasReward: true}, []string{"a"}},
		{"species", Filter{Species: "dog"}, []string{"a", "b", "d"}},
		{"found dogs", Filter{Kind: model.KindFound, Species: "DOG"}, []string{"d"}},
		{"location", Filter{Location: "brooklyn"}, []string{"c", "d"}},
		{"none", Filter{Color: "purple"}, nil},
	}
	for _, tt := range tests {
		got := ids(slices.Collect(s.Search(tt.filter)))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSubmitAddListRoundTrip(t *testing.T) {
	c := form.NewWithDraft(model.KindLost, model.Draft{})
	for name, value := range map[string]string{
		model.FieldName:        "Max",
		model.FieldSpecies:     "Dog",
		model.FieldBreed:       "Golden Retriever",
		model.FieldColor:       "Golden",
		model.FieldLocation:    "Central Park, NYC",
		model.FieldDate:        "2025-06-20",
		model.FieldDescription: "Friendly dog, wearing blue collar",
		model.FieldContactInfo: "john@email.com",
		model.FieldReward:      "$200",
	} {
		if err := c.UpdateField(name, value); err != nil {
			t.Fatal(err)
		}
	}
	c.AddImage("p1")

	submitted, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s := New(found("x", "Cat"))
	added := s.Add(submitted)

	listed := slices.Collect(s.ListByType(submitted.Kind()))
	if len(listed) != 1 {
		t.Fatalf("expected 1 lost report, got %d", len(listed))
	}

	want := submitted
	want.ID = added.ID
	if !reflect.DeepEqual(listed[0], want) {
		t.Errorf("listed = %#v\nwant %#v", listed[0], want)
	}
}
