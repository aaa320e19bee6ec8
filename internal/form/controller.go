// Package form holds the state of a report form while it is being filled in.
package form

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/erazemk/tacka/internal/model"
)

// ErrUnknownField is returned by UpdateField for names that are not text fields.
var ErrUnknownField = errors.New("unknown form field")

// DateLayout is the format of the pre-filled date.
const DateLayout = "2006-01-02"

var now = time.Now

// Controller owns one in-progress draft and its field errors.
type Controller struct {
	kind   model.Kind
	draft  model.Draft
	errors model.FieldErrors
}

// New returns an empty form for the given kind, with today's UTC date filled in.
func New(kind model.Kind) *Controller {
	return NewWithDraft(kind, model.Draft{Date: now().UTC().Format(DateLayout)})
}

// NewWithDraft returns a form pre-filled with initial.
func NewWithDraft(kind model.Kind, initial model.Draft) *Controller {
	initial.Images = slices.Clone(initial.Images)
	return &Controller{
		kind:   kind,
		draft:  initial,
		errors: model.FieldErrors{},
	}
}

// Kind returns the report kind the form was opened for.
func (c *Controller) Kind() model.Kind {
	return c.kind
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() model.Draft {
	d := c.draft
	d.Images = slices.Clone(d.Images)
	return d
}

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() model.FieldErrors {
	return maps.Clone(c.errors)
}

// UpdateField replaces one text field of the draft. An error previously
// reported for that field is cleared; errors on other fields are kept.
func (c *Controller) UpdateField(name, value string) error {
	field := c.field(name)
	if field == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*field = value
	delete(c.errors, name)
	return nil
}

func (c *Controller) field(name string) *string {
	switch name {
	case model.FieldName:
		return &c.draft.Name
	case model.FieldSpecies:
		return &c.draft.Species
	case model.FieldBreed:
		return &c.draft.Breed
	case model.FieldColor:
		return &c.draft.Color
	case model.FieldLocation:
		return &c.draft.Location
	case model.FieldDate:
		return &c.draft.Date
	case model.FieldDescription:
		return &c.draft.Description
	case model.FieldContactInfo:
		return &c.draft.ContactInfo
	case model.FieldReward:
		return &c.draft.Reward
	}
	return nil
}

// AddImage appends an image reference.
func (c *Controller) AddImage(ref string) {
	c.draft.Images = append(c.draft.Images, ref)
}

// RemoveImage removes the image at index i, keeping the order of the rest.
// It returns false and changes nothing when i is out of range.
func (c *Controller) RemoveImage(i int) bool {
	if i < 0 || i >= len(c.draft.Images) {
		return false
	}
	c.draft.Images = slices.Delete(slices.Clone(c.draft.Images), i, i+1)
	return true
}

// Submit validates the draft. On success it returns the finalized report
// and leaves no errors; on failure it returns model.FieldErrors, which
// also replace the form's error mapping.
func (c *Controller) Submit() (model.Report, error) {
	errs := model.ValidateDraft(c.draft, c.kind)
	c.errors = errs
	if len(errs) > 0 {
		return model.Report{}, maps.Clone(errs)
	}
	return c.draft.Finalize(c.kind)
}
