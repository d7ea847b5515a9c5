package model

import "time"

// Venue is a location where shows take place.  It corresponds to a row
// in the `venues` table.  Genres are stored as a comma separated column
// and expanded into a slice by the repository layer.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location used to group venues in listings.
//  Address            – street address.
//  Phone              – contact number in NNN-NNN-NNNN form.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – optional pitch shown when seeking talent.
//  CreatedAt          – when the listing was created.
type Venue struct {
	ID                 uint64    // venues.id
	Name               string    // venues.name
	City               string    // venues.city
	State              string    // venues.state
	Address            string    // venues.address
	Phone              string    // venues.phone
	ImageLink          string    // venues.image_link
	FacebookLink       string    // venues.facebook_link
	WebsiteLink        string    // venues.website_link
	SeekingTalent      bool      // venues.seeking_talent
	SeekingDescription string    // venues.seeking_description (nullable)
	Genres             []string  // venues.genres
	CreatedAt          time.Time // venues.created_at
}

// Location is a distinct (city, state) pair used to group venues.
type Location struct {
	City  string
	State string
}
