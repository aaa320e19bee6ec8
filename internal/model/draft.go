package model

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// Form field names, as used in field-error mappings and by form.UpdateField.
const (
	FieldName        = "name"
	FieldSpecies     = "species"
	FieldBreed       = "breed"
	FieldColor       = "color"
	FieldLocation    = "location"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldContactInfo = "contactInfo"
	FieldReward      = "reward"
)

// Draft is a report under edit: every field except the id and status.
type Draft struct {
	Name        string   `json:"name,omitempty"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed,omitempty"`
	Color       string   `json:"color"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	ContactInfo string   `json:"contactInfo"`
	Reward      string   `json:"reward,omitempty"`
	Images      []string `json:"images"`
}

// Finalize turns the draft into an active report of the given kind.
// Name and reward are only carried over for lost reports.
func (d Draft) Finalize(kind Kind) (Report, error) {
	details, err := NewDetails(kind, d.Name, d.Reward)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Species:     d.Species,
		Breed:       d.Breed,
		Color:       d.Color,
		Location:    d.Location,
		Date:        d.Date,
		Description: d.Description,
		ContactInfo: d.ContactInfo,
		Images:      slices.Clone(d.Images),
		Status:      StatusActive,
		Details:     details,
	}, nil
}

// FieldErrors maps form field names to human-readable messages.
type FieldErrors map[string]string

// Error implements error.
func (fe FieldErrors) Error() string {
	fields := slices.Collect(maps.Keys(fe))
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateDraft checks the required fields of a draft for the given kind.
// All violations are collected; an empty result means the draft is valid.
// Date and contact info are free text and only checked for presence.
func ValidateDraft(d Draft, kind Kind) FieldErrors {
	errs := FieldErrors{}

	if blank(d.Species) {
		errs[FieldSpecies] = "Species is required"
	}
	if blank(d.Color) {
		errs[FieldColor] = "Color is required"
	}
	if blank(d.Location) {
		errs[FieldLocation] = "Location is required"
	}
	if d.Date == "" {
		errs[FieldDate] = "Date is required"
	}
	if blank(d.Description) {
		errs[FieldDescription] = "Description is required"
	}
	if blank(d.ContactInfo) {
		errs[FieldContactInfo] = "Contact info is required"
	}
	if kind == KindLost && blank(d.Name) {
		errs[FieldName] = "Pet name is required for lost pets"
	}

	return errs
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
