package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func listing(id, artistID, venueID uint64, start time.Time) model.ShowListing {
	return model.ShowListing{
		Show:            model.Show{ID: id, ArtistID: artistID, VenueID: venueID, StartTime: start},
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://example.com/gnp.jpg",
		VenueName:       "The Musical Hop",
		VenueImageLink:  "https://example.com/hop.jpg",
	}
}

func TestIsUpcomingBoundary(t *testing.T) {
	assert.False(t, IsUpcoming(now, now), "a show starting now is past")
	assert.True(t, IsUpcoming(now.Add(time.Second), now))
	assert.False(t, IsUpcoming(now.Add(-time.Second), now))
}

func TestPartitionKeepsOrder(t *testing.T) {
	ls := []model.ShowListing{
		listing(1, 1, 1, now.Add(-48*time.Hour)),
		listing(2, 1, 1, now),
		listing(3, 1, 1, now.Add(time.Hour)),
		listing(4, 1, 1, now.Add(48*time.Hour)),
	}
	past, upcoming := Partition(ls, now)
	require.Len(t, past, 2)
	require.Len(t, upcoming, 2)
	assert.Equal(t, uint64(1), past[0].ID)
	assert.Equal(t, uint64(2), past[1].ID)
	assert.Equal(t, uint64(3), upcoming[0].ID)
	assert.Equal(t, uint64(4), upcoming[1].ID)
}

func TestUpcomingCounts(t *testing.T) {
	shows := []model.Show{
		{ArtistID: 1, VenueID: 1, StartTime: now.Add(time.Hour)},
		{ArtistID: 1, VenueID: 2, StartTime: now.Add(time.Hour)},
		{ArtistID: 2, VenueID: 1, StartTime: now.Add(-time.Hour)},
		{ArtistID: 2, VenueID: 1, StartTime: now.Add(2 * time.Hour)},
	}
	assert.Equal(t, map[uint64]int{1: 2, 2: 1}, UpcomingByVenue(shows, now))
	assert.Equal(t, map[uint64]int{1: 2, 2: 1}, UpcomingByArtist(shows, now))
	assert.Empty(t, UpcomingByVenue(nil, now))
}

func TestAreaAndSearch(t *testing.T) {
	venues := []model.Venue{{ID: 1, Name: "The Musical Hop"}, {ID: 3, Name: "Park Square Live Music & Coffee"}}
	upcoming := map[uint64]int{1: 2}

	area := Area(model.Location{City: "San Francisco", State: "CA"}, venues, upcoming)
	assert.Equal(t, "San Francisco", area.City)
	assert.Equal(t, []Summary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 2}, {ID: 3, Name: "Park Square Live Music & Coffee"}}, area.Venues)

	res := VenueSearch("Music", venues, upcoming)
	assert.Equal(t, "Music", res.SearchTerm)
	assert.Equal(t, 2, res.Count)

	empty := ArtistSearch("zzz", nil, nil)
	assert.Equal(t, 0, empty.Count)
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"search_term":"zzz","count":0,"data":[]}`, string(b))
}

func TestVenueDetailPlacesFutureShowInUpcoming(t *testing.T) {
	v := &model.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz"}}
	start := time.Date(2030, 1, 1, 20, 0, 0, 0, time.UTC)
	d := VenueDetail(v, []model.ShowListing{
		listing(1, 4, 1, start),
		listing(2, 5, 1, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)),
	}, now)

	assert.Equal(t, 1, d.UpcomingShowsCount)
	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, ArtistShow{
		ArtistID:        4,
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://example.com/gnp.jpg",
		StartTime:       "2030-01-01 20:00:00",
	}, d.UpcomingShows[0])
	assert.Equal(t, uint64(5), d.PastShows[0].ArtistID)
}

func TestVenueDetailWithoutShows(t *testing.T) {
	d := VenueDetail(&model.Venue{ID: 9, Name: "Empty"}, nil, now)
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, []any{}, m["past_shows"])
	assert.Equal(t, []any{}, m["upcoming_shows"])
	assert.Equal(t, []any{}, m["genres"])
	assert.Equal(t, float64(0), m["upcoming_shows_count"])
}

func TestArtistDetail(t *testing.T) {
	a := &model.Artist{ID: 4, Name: "Guns N Petals", SeekingVenue: true, SeekingDescription: "Looking for shows"}
	d := ArtistDetail(a, []model.ShowListing{listing(1, 4, 1, now.Add(24*time.Hour))}, now)
	assert.True(t, d.SeekingVenue)
	require.Len(t, d.UpcomingShows, 1)
	assert.Equal(t, VenueShow{
		VenueID:        1,
		VenueName:      "The Musical Hop",
		VenueImageLink: "https://example.com/hop.jpg",
		StartTime:      "2026-10-18 12:00:00",
	}, d.UpcomingShows[0])
	assert.Empty(t, d.PastShows)
}

func TestHomeKeepsNewestTenAscending(t *testing.T) {
	var venues []model.Venue
	for id := uint64(12); id >= 1; id-- {
		venues = append(venues, model.Venue{ID: id, Name: "V"})
	}
	artists := []model.Artist{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}

	h := Home(artists, venues)
	require.Len(t, h.Venues, HomeLimit)
	assert.Equal(t, uint64(3), h.Venues[0].ID)
	assert.Equal(t, uint64(12), h.Venues[9].ID)
	assert.Equal(t, []Named{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, h.Artists)

	empty := Home(nil, nil)
	assert.NotNil(t, empty.Artists)
	assert.NotNil(t, empty.Venues)
}

func TestShowsAndArtistList(t *testing.T) {
	rows := Shows([]model.ShowListing{listing(1, 4, 1, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC))})
	assert.Equal(t, []ShowView{{
		VenueID:         1,
		VenueName:       "The Musical Hop",
		ArtistID:        4,
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://example.com/gnp.jpg",
		StartTime:       "2019-05-21 21:30:00",
	}}, rows)

	assert.Equal(t, []Named{{ID: 4, Name: "Guns N Petals"}}, ArtistList([]model.Artist{{ID: 4, Name: "Guns N Petals"}}))
	assert.NotNil(t, ArtistList(nil))
}

func TestFormChoices(t *testing.T) {
	c := FormChoices()
	assert.Len(t, c.Genres, len(model.Genres))
	assert.Len(t, c.States, len(model.States))
	assert.Equal(t, "AK", c.States[0])
	assert.Equal(t, "AL", model.States[0], "the shared list must not be reordered")
}

func TestFormatTimeUsesUTC(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	assert.Equal(t, "2030-01-02 03:00:00", FormatTime(time.Date(2030, 1, 1, 20, 0, 0, 0, loc)))
}
