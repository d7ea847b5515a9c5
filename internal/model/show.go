package model

import "time"

// TimeLayout is how start times are written in forms and rendered in
// listings.
const TimeLayout = "2006-01-02 15:04:05"

// Show joins one artist and one venue at a start time.  Whether a show
// is past or upcoming is never stored; it is derived from StartTime at
// read time.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – artist performing (references artists.id).
//  VenueID   – venue hosting the show (references venues.id).
//  StartTime – when the show begins (UTC).
type Show struct {
	ID        uint64    // shows.id
	ArtistID  uint64    // shows.artist_id
	VenueID   uint64    // shows.venue_id
	StartTime time.Time // shows.start_time
}

// ShowListing is a show joined with the display fields of its artist
// and venue.
type ShowListing struct {
	Show
	ArtistName      string
	ArtistImageLink string
	VenueName       string
	VenueImageLink  string
}
