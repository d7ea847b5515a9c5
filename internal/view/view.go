// Package view assembles the JSON view-models served by the handlers.
// Every function is pure: the current time is passed in, and whether a
// show is past or upcoming is decided here, never stored.
package view

import (
	"sort"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// HomeLimit is how many recent venues and artists the home page lists.
const HomeLimit = 10

// Summary is the short form of a venue or artist used in grouped
// listings and search results.
type Summary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// AreaView groups the venues of one city.
type AreaView struct {
	City   string    `json:"city"`
	State  string    `json:"state"`
	Venues []Summary `json:"venues"`
}

// SearchView is the result of a venue or artist search.
type SearchView struct {
	SearchTerm string    `json:"search_term"`
	Count      int       `json:"count"`
	Data       []Summary `json:"data"`
}

// ArtistShow is a show listed on a venue page.
type ArtistShow struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueShow is a show listed on an artist page.
type VenueShow struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// VenueView is the venue detail page.
type VenueView struct {
	ID                 uint64       `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	Address            string       `json:"address"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	WebsiteLink        string       `json:"website_link"`
	FacebookLink       string       `json:"facebook_link"`
	SeekingTalent      bool         `json:"seeking_talent"`
	SeekingDescription string       `json:"seeking_description"`
	ImageLink          string       `json:"image_link"`
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ArtistView is the artist detail page.
type ArtistView struct {
	ID                 uint64      `json:"id"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	WebsiteLink        string      `json:"website_link"`
	FacebookLink       string      `json:"facebook_link"`
	SeekingVenue       bool        `json:"seeking_venue"`
	SeekingDescription string      `json:"seeking_description"`
	ImageLink          string      `json:"image_link"`
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// Named is an id and a name.
type Named struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// HomeView lists the most recently created artists and venues.
type HomeView struct {
	Artists []Named `json:"artists"`
	Venues  []Named `json:"venues"`
}

// ShowView is one row of the shows listing.
type ShowView struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// IsUpcoming reports whether a show starting at start is still to come.
// A show starting exactly now counts as past.
func IsUpcoming(start, now time.Time) bool {
	return start.After(now)
}

// UpcomingByVenue counts the upcoming shows of each venue.
func UpcomingByVenue(shows []model.Show, now time.Time) map[uint64]int {
	out := map[uint64]int{}
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			out[s.VenueID]++
		}
	}
	return out
}

// UpcomingByArtist counts the upcoming shows of each artist.
func UpcomingByArtist(shows []model.Show, now time.Time) map[uint64]int {
	out := map[uint64]int{}
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			out[s.ArtistID]++
		}
	}
	return out
}

// Area builds the listing block for one location.
func Area(loc model.Location, venues []model.Venue, upcoming map[uint64]int) AreaView {
	out := AreaView{City: loc.City, State: loc.State, Venues: make([]Summary, 0, len(venues))}
	for _, v := range venues {
		out.Venues = append(out.Venues, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return out
}

// VenueSearch builds the search result page for venues.
func VenueSearch(term string, venues []model.Venue, upcoming map[uint64]int) SearchView {
	data := make([]Summary, 0, len(venues))
	for _, v := range venues {
		data = append(data, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return SearchView{SearchTerm: term, Count: len(data), Data: data}
}

// ArtistSearch builds the search result page for artists.
func ArtistSearch(term string, artists []model.Artist, upcoming map[uint64]int) SearchView {
	data := make([]Summary, 0, len(artists))
	for _, a := range artists {
		data = append(data, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]})
	}
	return SearchView{SearchTerm: term, Count: len(data), Data: data}
}

// Partition splits listings into past and upcoming shows, keeping their
// order.
func Partition(listings []model.ShowListing, now time.Time) (past, upcoming []model.ShowListing) {
	for _, l := range listings {
		if IsUpcoming(l.StartTime, now) {
			upcoming = append(upcoming, l)
		} else {
			past = append(past, l)
		}
	}
	return past, upcoming
}

func artistShows(ls []model.ShowListing) []ArtistShow {
	out := make([]ArtistShow, 0, len(ls))
	for _, l := range ls {
		out = append(out, ArtistShow{
			ArtistID:        l.ArtistID,
			ArtistName:      l.ArtistName,
			ArtistImageLink: l.ArtistImageLink,
			StartTime:       FormatTime(l.StartTime),
		})
	}
	return out
}

func venueShows(ls []model.ShowListing) []VenueShow {
	out := make([]VenueShow, 0, len(ls))
	for _, l := range ls {
		out = append(out, VenueShow{
			VenueID:        l.VenueID,
			VenueName:      l.VenueName,
			VenueImageLink: l.VenueImageLink,
			StartTime:      FormatTime(l.StartTime),
		})
	}
	return out
}

// VenueDetail builds the venue page from the venue and the shows booked
// there.
func VenueDetail(v *model.Venue, listings []model.ShowListing, now time.Time) VenueView {
	past, upcoming := Partition(listings, now)
	return VenueView{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             nonNil(v.Genres),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		WebsiteLink:        v.WebsiteLink,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          artistShows(past),
		UpcomingShows:      artistShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

// ArtistDetail builds the artist page from the artist and the shows they
// play.
func ArtistDetail(a *model.Artist, listings []model.ShowListing, now time.Time) ArtistView {
	past, upcoming := Partition(listings, now)
	return ArtistView{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             nonNil(a.Genres),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		WebsiteLink:        a.WebsiteLink,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		PastShows:          venueShows(past),
		UpcomingShows:      venueShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
}

// Home takes artists and venues ordered newest first, keeps the newest
// HomeLimit of each and lists them oldest first.
func Home(artists []model.Artist, venues []model.Venue) HomeView {
	if len(artists) > HomeLimit {
		artists = artists[:HomeLimit]
	}
	if len(venues) > HomeLimit {
		venues = venues[:HomeLimit]
	}
	out := HomeView{Artists: make([]Named, 0, len(artists)), Venues: make([]Named, 0, len(venues))}
	for i := len(artists) - 1; i >= 0; i-- {
		out.Artists = append(out.Artists, Named{ID: artists[i].ID, Name: artists[i].Name})
	}
	for i := len(venues) - 1; i >= 0; i-- {
		out.Venues = append(out.Venues, Named{ID: venues[i].ID, Name: venues[i].Name})
	}
	return out
}

// Shows builds the shows listing.
func Shows(listings []model.ShowListing) []ShowView {
	out := make([]ShowView, 0, len(listings))
	for _, l := range listings {
		out = append(out, ShowView{
			VenueID:         l.VenueID,
			VenueName:       l.VenueName,
			ArtistID:        l.ArtistID,
			ArtistName:      l.ArtistName,
			ArtistImageLink: l.ArtistImageLink,
			StartTime:       FormatTime(l.StartTime),
		})
	}
	return out
}

// ArtistList builds the artists listing.
func ArtistList(artists []model.Artist) []Named {
	out := make([]Named, 0, len(artists))
	for _, a := range artists {
		out = append(out, Named{ID: a.ID, Name: a.Name})
	}
	return out
}

// VenueList lists venues by id and name, for the show form.
func VenueList(venues []model.Venue) []Named {
	out := make([]Named, 0, len(venues))
	for _, v := range venues {
		out = append(out, Named{ID: v.ID, Name: v.Name})
	}
	return out
}

// Choices lists the values the venue and artist forms accept for their
// select fields.
type Choices struct {
	Genres []string `json:"genres"`
	States []string `json:"states"`
}

// FormChoices returns the genre and state choices, states sorted.
func FormChoices() Choices {
	states := append([]string(nil), model.States...)
	sort.Strings(states)
	return Choices{Genres: append([]string(nil), model.Genres...), States: states}
}

// FormatTime renders t in UTC using model.TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(model.TimeLayout)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
