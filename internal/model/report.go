package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNotFound is returned when a lookup does not match any record.
var ErrNotFound = errors.New("not found")

// Kind tells lost reports apart from found ones.
type Kind string

// Report kinds.
const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindLost || k == KindFound
}

// Status is the lifecycle state of a report.
type Status string

// Report statuses.
const (
	StatusActive   Status = "active"
	StatusReunited Status = "reunited"
	StatusClosed   Status = "closed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusReunited || s == StatusClosed
}

// Details carries the fields that only exist for one kind of report.
// It is implemented by Lost and Found only.
type Details interface {
	Kind() Kind
	details()
}

// Lost holds the fields of a lost-pet report.
type Lost struct {
	Name   string
	Reward string
}

// Kind implements Details.
func (Lost) Kind() Kind { return KindLost }
func (Lost) details()   {}

// Found holds the fields of a found-pet report. It has none of its own.
type Found struct{}

// Kind implements Details.
func (Found) Kind() Kind { return KindFound }
func (Found) details()   {}

// Report is a lost or found pet record.
type Report struct {
	ID          string
	Species     string
	Breed       string
	Color       string
	Location    string
	Date        string
	Description string
	ContactInfo string
	Images      []string
	Status      Status
	ReporterID  int64
	Reporter    string
	CreatedAt   time.Time
	Details     Details
}

// Kind returns the report kind, derived from its details.
func (r Report) Kind() Kind {
	if r.Details == nil {
		return ""
	}
	return r.Details.Kind()
}

// Name returns the pet name of a lost report, or "" for found reports.
func (r Report) Name() string {
	if l, ok := r.Details.(Lost); ok {
		return l.Name
	}
	return ""
}

// Reward returns the reward of a lost report, or "" for found reports.
func (r Report) Reward() string {
	if l, ok := r.Details.(Lost); ok {
		return l.Reward
	}
	return ""
}

// Clone returns a copy that shares no mutable state with r.
func (r Report) Clone() Report {
	r.Images = slices.Clone(r.Images)
	return r
}

// reportJSON is the flat wire shape of a Report.
type reportJSON struct {
	ID          string    `json:"id"`
	Type        Kind      `json:"type"`
	Name        string    `json:"name,omitempty"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	Color       string    `json:"color"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	ContactInfo string    `json:"contactInfo"`
	Reward      string    `json:"reward,omitempty"`
	Images      []string  `json:"images"`
	Status      Status    `json:"status"`
	ReporterID  int64     `json:"reporterId,omitempty"`
	Reporter    string    `json:"reporter,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MarshalJSON encodes the report in its flat form.
func (r Report) MarshalJSON() ([]byte, error) {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return json.Marshal(reportJSON{
		ID:          r.ID,
		Type:        r.Kind(),
		Name:        r.Name(),
		Species:     r.Species,
		Breed:       r.Breed,
		Color:       r.Color,
		Location:    r.Location,
		Date:        r.Date,
		Description: r.Description,
		ContactInfo: r.ContactInfo,
		Reward:      r.Reward(),
		Images:      images,
		Status:      r.Status,
		ReporterID:  r.ReporterID,
		Reporter:    r.Reporter,
		CreatedAt:   r.CreatedAt,
	})
}

// UnmarshalJSON decodes the flat form. Name and reward are dropped for found reports.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw reportJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	details, err := NewDetails(raw.Type, raw.Name, raw.Reward)
	if err != nil {
		return err
	}
	*r = Report{
		ID:          raw.ID,
		Species:     raw.Species,
		Breed:       raw.Breed,
		Color:       raw.Color,
		Location:    raw.Location,
		Date:        raw.Date,
		Description: raw.Description,
		ContactInfo: raw.ContactInfo,
		Images:      raw.Images,
		Status:      raw.Status,
		ReporterID:  raw.ReporterID,
		Reporter:    raw.Reporter,
		CreatedAt:   raw.CreatedAt,
		Details:     details,
	}
	return nil
}

// NewDetails builds the kind-specific part of a report.
func NewDetails(kind Kind, name, reward string) (Details, error) {
	switch kind {
	case KindLost:
		return Lost{Name: name, Reward: reward}, nil
	case KindFound:
		return Found{}, nil
	default:
		return nil, fmt.Errorf("unknown report type %q", kind)
	}
}
