package form

import (
	"strconv"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

var startTimeLayouts = []string{
	model.TimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ShowForm is the schema of the create show form.
type ShowForm struct {
	ArtistID  string `form:"artist_id" json:"artist_id" validate:"required,number"`
	VenueID   string `form:"venue_id" json:"venue_id" validate:"required,number"`
	StartTime string `form:"start_time" json:"start_time" validate:"required"`
}

// NewShowForm returns a form whose start time defaults to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC().Format(model.TimeLayout)}
}

// Show validates the submitted values and returns the show they
// describe.  Times without a zone are read as UTC.  Whether the artist
// and venue exist is checked later by the store.
func (f *ShowForm) Show() (*model.Show, error) {
	trimAll(&f.ArtistID, &f.VenueID, &f.StartTime)

	ve := &ValidationError{}
	check(f, ve)
	artistID := parseID("artist_id", f.ArtistID, ve)
	venueID := parseID("venue_id", f.VenueID, ve)
	var start time.Time
	if f.StartTime != "" {
		var ok bool
		if start, ok = parseStart(f.StartTime); !ok {
			ve.add("start_time", "start_time must look like "+model.TimeLayout)
		}
	}
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

func parseID(field, raw string, ve *ValidationError) uint64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		ve.add(field, field+" must be a numeric id")
		return 0
	}
	return id
}

func parseStart(s string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
