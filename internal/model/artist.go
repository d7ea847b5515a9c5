package model

import "time"

// Artist is a performer that plays shows at venues.  It maps to the
// `artists` table.
type Artist struct {
	ID                 uint64    // artists.id
	Name               string    // artists.name
	City               string    // artists.city
	State              string    // artists.state
	Phone              string    // artists.phone
	Genres             []string  // artists.genres
	ImageLink          string    // artists.image_link
	FacebookLink       string    // artists.facebook_link
	WebsiteLink        string    // artists.website_link
	SeekingVenue       bool      // artists.seeking_venue
	SeekingDescription string    // artists.seeking_description (nullable)
	CreatedAt          time.Time // artists.created_at
}
