package form

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/erazemk/tacka/internal/model"
)

func fill(t *testing.T, c *Controller, fields map[string]string) {
	t.Helper()
	for name, value := range fields {
		if err := c.UpdateField(name, value); err != nil {
			t.Fatalf("UpdateField(%q): %v", name, err)
		}
	}
}

func validFields() map[string]string {
	return map[string]string{
		model.FieldSpecies:     "Cat",
		model.FieldColor:       "Orange and White",
		model.FieldLocation:    "Brooklyn Heights",
		model.FieldDate:        "2025-06-20",
		model.FieldDescription: "Hiding under a car",
		model.FieldContactInfo: "mike@email.com",
	}
}

func TestNewPrefillsDate(t *testing.T) {
	c := New(model.KindLost)
	want := time.Now().UTC().Format(DateLayout)
	if got := c.Draft().Date; got != want {
		t.Errorf("date = %q, want %q", got, want)
	}
}

func TestNewPrefillsUTCDate(t *testing.T) {
	t.Cleanup(func() { now = time.Now })
	now = func() time.Time {
		return time.Date(2025, 6, 20, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	}

	if got := New(model.KindFound).Draft().Date; got != "2025-06-21" {
		t.Errorf("date = %q, want 2025-06-21", got)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	for _, kind := range []model.Kind{model.KindLost, model.KindFound} {
		for field := range validFields() {
			c := NewWithDraft(kind, model.Draft{})
			fields := validFields()
			delete(fields, field)
			fill(t, c, fields)
			if kind == model.KindLost {
				fill(t, c, map[string]string{model.FieldName: "Luna"})
			}

			_, err := c.Submit()
			var fe model.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("%s/%s: expected FieldErrors, got %v", kind, field, err)
			}
			if _, ok := fe[field]; !ok {
				t.Errorf("%s/%s: missing error for field, got %v", kind, field, fe)
			}
			if len(c.Errors()) == 0 {
				t.Errorf("%s/%s: form errors not recorded", kind, field)
			}
		}
	}
}

func TestSubmitLostRequiresName(t *testing.T) {
	c := NewWithDraft(model.KindLost, model.Draft{})
	fill(t, c, validFields())

	_, err := c.Submit()
	var fe model.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe[model.FieldName] != "Pet name is required for lost pets" {
		t.Errorf("unexpected errors: %v", fe)
	}
}

func TestSubmitFoundSucceeds(t *testing.T) {
	c := NewWithDraft(model.KindFound, model.Draft{})
	fill(t, c, validFields())
	fill(t, c, map[string]string{model.FieldBreed: "Tabby"})
	c.AddImage("p1")

	r, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := model.Report{
		Species:     "Cat",
		Breed:       "Tabby",
		Color:       "Orange and White",
		Location:    "Brooklyn Heights",
		Date:        "2025-06-20",
		Description: "Hiding under a car",
		ContactInfo: "mike@email.com",
		Images:      []string{"p1"},
		Status:      model.StatusActive,
		Details:     model.Found{},
	}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("report = %#v\nwant %#v", r, want)
	}
	if len(c.Errors()) != 0 {
		t.Errorf("expected no errors after success, got %v", c.Errors())
	}
}

func TestSubmitLostCarriesNameAndReward(t *testing.T) {
	c := NewWithDraft(model.KindLost, model.Draft{})
	fill(t, c, validFields())
	fill(t, c, map[string]string{model.FieldName: "Max", model.FieldReward: "$200"})

	r, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.Details != (model.Lost{Name: "Max", Reward: "$200"}) {
		t.Errorf("details = %#v", r.Details)
	}
}

func TestUpdateFieldLastWriteWins(t *testing.T) {
	c := New(model.KindFound)
	fill(t, c, map[string]string{model.FieldColor: "Black"})
	fill(t, c, map[string]string{model.FieldColor: "White"})
	if got := c.Draft().Color; got != "White" {
		t.Errorf("color = %q, want White", got)
	}
}

func TestUpdateFieldClearsOnlyItsError(t *testing.T) {
	c := NewWithDraft(model.KindLost, model.Draft{})
	c.Submit()

	before := c.Errors()
	if before[model.FieldColor] == "" || before[model.FieldSpecies] == "" {
		t.Fatalf("expected color and species errors, got %v", before)
	}

	fill(t, c, map[string]string{model.FieldColor: "Black"})
	after := c.Errors()
	if _, ok := after[model.FieldColor]; ok {
		t.Error("color error should be cleared")
	}
	if after[model.FieldSpecies] != "Species is required" {
		t.Errorf("species error should persist, got %v", after)
	}
	if len(after) != len(before)-1 {
		t.Errorf("expected %d errors, got %d", len(before)-1, len(after))
	}
}

func TestUpdateFieldUnknown(t *testing.T) {
	c := New(model.KindLost)
	if err := c.UpdateField("images", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestImages(t *testing.T) {
	c := New(model.KindLost)
	c.AddImage("p1")
	c.AddImage("p2")
	if got := c.Draft().Images; !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Fatalf("images = %v", got)
	}

	c.AddImage("p3")
	if c.RemoveImage(5) {
		t.Error("RemoveImage(5) should report no-op")
	}
	if got := c.Draft().Images; !reflect.DeepEqual(got, []string{"p1", "p2", "p3"}) {
		t.Errorf("out-of-range remove changed images: %v", got)
	}
	if c.RemoveImage(-1) {
		t.Error("RemoveImage(-1) should report no-op")
	}

	if !c.RemoveImage(1) {
		t.Fatal("RemoveImage(1) failed")
	}
	if got := c.Draft().Images; !reflect.DeepEqual(got, []string{"p1", "p3"}) {
		t.Errorf("images = %v, want [p1 p3]", got)
	}
}

func TestDraftIsCopy(t *testing.T) {
	c := New(model.KindLost)
	c.AddImage("p1")
	d := c.Draft()
	d.Images[0] = "changed"
	if c.Draft().Images[0] != "p1" {
		t.Error("Draft() leaked internal slice")
	}
}
