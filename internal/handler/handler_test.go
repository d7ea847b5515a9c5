package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/testutil"
)

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type recorder struct {
	mu            sync.Mutex
	events        []queue.ListingEvent
	invalidations int
}

func (r *recorder) Publish(_ context.Context, ev queue.ListingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Invalidate(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidations++
	return nil
}

type server struct {
	t   *testing.T
	e   *echo.Echo
	db  *sql.DB
	rec *recorder
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.New(db, "test-secret", logger)
	h.Now = func() time.Time { return now }
	rec := &recorder{}
	h.Events = rec
	h.Cache = rec

	e := echo.New()
	e.HTTPErrorHandler = router.ErrorHandler(logger)
	router.RegisterRoutes(e, h, router.Middlewares{})
	return &server{t: t, e: e, db: db, rec: rec}
}

func (s *server) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	var last *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flash.CookieName {
			last = ck
		}
	}
	return last
}

func fillmoreForm() url.Values {
	return url.Values{
		"name":           {"The Fillmore"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1805 Geary Blvd"},
		"phone":          {"415-346-6000"},
		"genres":         {"Rock n Roll"},
		"seeking_talent": {"n"},
	}
}

func artistForm(name string) url.Values {
	return url.Values{
		"name":          {name},
		"city":          {"San Francisco"},
		"state":         {"CA"},
		"phone":         {"326-123-5000"},
		"genres":        {"Rock n Roll", "Jazz"},
		"seeking_venue": {"y"},
		"facebook_link": {"https://www.facebook.com/GunsNPetals"},
	}
}

func (s *server) createVenue(form url.Values) uint64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/venues/create", form)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(decode(s.t, rec)["id"].(float64))
}

func (s *server) createArtist(form url.Values) uint64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/artists/create", form)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(decode(s.t, rec)["id"].(float64))
}

func TestCreateVenue(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodPost, "/venues/create", fillmoreForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Venue The Fillmore was successfully listed!", body["message"])
	assert.Equal(t, float64(1), body["id"])
	assert.NotNil(t, flashCookie(rec))

	require.Len(t, s.rec.events, 1)
	assert.Equal(t, queue.ActionCreated, s.rec.events[0].Action)
	assert.Equal(t, queue.EntityVenue, s.rec.events[0].Entity)
	assert.Equal(t, 1, s.rec.invalidations)

	rec = s.do(http.MethodGet, "/venues/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	assert.Equal(t, "The Fillmore", detail["name"])
	assert.Equal(t, []any{"Rock n Roll"}, detail["genres"])
	assert.Equal(t, false, detail["seeking_talent"])
	assert.Equal(t, []any{}, detail["upcoming_shows"])
}

func TestCreateVenueRejectsPhoneWithoutDashes(t *testing.T) {
	s := newServer(t)
	f := fillmoreForm()
	f.Set("phone", "4153466000")

	rec := s.do(http.MethodPost, "/venues/create", f)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "An error occurred. Venue The Fillmore could not be listed.", body["error"])
	assert.Equal(t, map[string]any{"phone": "phone is not in the correct format: xxx-xxx-xxxx"}, body["fields"])

	rec = s.do(http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decode(t, rec)["areas"], "nothing may be stored")
	assert.Empty(t, s.rec.events)
}

func TestCreateVenueListsEveryInvalidField(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodPost, "/venues/create", url.Values{"genres": {"Polka"}, "state": {"XX"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]any)
	for _, name := range []string{"name", "city", "state", "address", "phone", "genres"} {
		assert.Contains(t, fields, name)
	}
}

func TestVenueNotFound(t *testing.T) {
	s := newServer(t)
	for _, target := range []string{"/venues/999", "/venues/abc", "/venues/0", "/venues/999/edit"} {
		rec := s.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "venue not found", decode(t, rec)["error"], target)
	}
	rec := s.do(http.MethodDelete, "/venues/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodPost, "/venues/999/edit", fillmoreForm())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodGet, "/artists/999", nil)
	assert.Equal(t, "artist not found", decode(t, rec)["error"])
}

func TestListVenuesGroupsByLocation(t *testing.T) {
	s := newServer(t)
	hop := s.createVenue(url.Values{"name": {"The Musical Hop"}, "city": {"San Francisco"}, "state": {"CA"},
		"address": {"1015 Folsom Street"}, "phone": {"123-123-1234"}, "genres": {"Jazz"}})
	s.createVenue(url.Values{"name": {"The Dueling Pianos Bar"}, "city": {"New York"}, "state": {"NY"},
		"address": {"335 Delancey Street"}, "phone": {"914-003-1132"}, "genres": {"Classical"}})
	artist := s.createArtist(artistForm("Guns N Petals"))
	rec := s.do(http.MethodPost, "/shows/create", url.Values{
		"artist_id": {itoa(artist)}, "venue_id": {itoa(hop)}, "start_time": {"2030-01-01T20:00:00"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/venues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	areas := decode(t, rec)["areas"].([]any)
	require.Len(t, areas, 2)
	sf := areas[0].(map[string]any)
	assert.Equal(t, "San Francisco", sf["city"])
	venues := sf["venues"].([]any)
	require.Len(t, venues, 1)
	assert.Equal(t, float64(1), venues[0].(map[string]any)["num_upcoming_shows"])
}

func TestSearch(t *testing.T) {
	s := newServer(t)
	s.createVenue(url.Values{"name": {"The Musical Hop"}, "city": {"San Francisco"}, "state": {"CA"},
		"address": {"1015 Folsom Street"}, "phone": {"123-123-1234"}, "genres": {"Jazz"}})
	s.createVenue(fillmoreForm())
	s.createArtist(artistForm("Guns N Petals"))
	s.createArtist(artistForm("The Wild Sax Band"))

	rec := s.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"hop"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "hop", body["search_term"])
	assert.Equal(t, float64(1), body["count"])

	rec = s.do(http.MethodPost, "/venues/search", url.Values{"search_term": {"san francisco"}})
	assert.Equal(t, float64(2), decode(t, rec)["count"])

	rec = s.do(http.MethodPost, "/artists/search", url.Values{"search_term": {"BAND"}})
	body = decode(t, rec)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]any)
	assert.Equal(t, "The Wild Sax Band", data[0].(map[string]any)["name"])
}

func TestCreateShowAndDetailPages(t *testing.T) {
	s := newServer(t)
	venue := s.createVenue(fillmoreForm())
	artist := s.createArtist(artistForm("Guns N Petals"))

	for _, start := range []string{"2030-01-01T20:00:00", "2019-05-21 21:30:00"} {
		rec := s.do(http.MethodPost, "/shows/create", url.Values{
			"artist_id": {itoa(artist)}, "venue_id": {itoa(venue)}, "start_time": {start},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "Show was successfully listed!", decode(t, rec)["message"])
	}

	rec := s.do(http.MethodGet, "/venues/"+itoa(venue), nil)
	detail := decode(t, rec)
	assert.Equal(t, float64(1), detail["upcoming_shows_count"])
	assert.Equal(t, float64(1), detail["past_shows_count"])
	up := detail["upcoming_shows"].([]any)[0].(map[string]any)
	assert.Equal(t, "Guns N Petals", up["artist_name"])
	assert.Equal(t, "2030-01-01 20:00:00", up["start_time"])

	rec = s.do(http.MethodGet, "/artists/"+itoa(artist), nil)
	detail = decode(t, rec)
	assert.Equal(t, true, detail["seeking_venue"])
	past := detail["past_shows"].([]any)[0].(map[string]any)
	assert.Equal(t, "The Fillmore", past["venue_name"])
	assert.Equal(t, "2019-05-21 21:30:00", past["start_time"])

	rec = s.do(http.MethodGet, "/shows", nil)
	shows := decode(t, rec)["shows"].([]any)
	require.Len(t, shows, 2)
	assert.Equal(t, "2019-05-21 21:30:00", shows[0].(map[string]any)["start_time"])
}

func TestCreateShowWithMissingReferences(t *testing.T) {
	s := newServer(t)
	venue := s.createVenue(fillmoreForm())
	artist := s.createArtist(artistForm("Guns N Petals"))

	rec := s.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {"42"}, "venue_id": {itoa(venue)}, "start_time": {"2030-01-01 20:00:00"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "An error occurred. Show could not be listed.", body["error"])
	assert.Equal(t, map[string]any{"artist_id": "artist does not exist"}, body["fields"])

	rec = s.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {itoa(artist)}, "venue_id": {"42"}, "start_time": {"2030-01-01 20:00:00"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"venue_id": "venue does not exist"}, decode(t, rec)["fields"])

	rec = s.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {"x"}, "start_time": {"soon"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]any)
	assert.Len(t, fields, 3)

	rec = s.do(http.MethodGet, "/shows", nil)
	assert.Equal(t, []any{}, decode(t, rec)["shows"])
}

func TestNewShowFormDefaults(t *testing.T) {
	s := newServer(t)
	s.createVenue(fillmoreForm())
	rec := s.do(http.MethodGet, "/shows/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "2026-10-17 12:00:00", body["form"].(map[string]any)["start_time"])
	assert.Len(t, body["venues"], 1)
	assert.Equal(t, []any{}, body["artists"])
}

func TestUpdateVenue(t *testing.T) {
	s := newServer(t)
	id := s.createVenue(fillmoreForm())

	rec := s.do(http.MethodGet, "/venues/"+itoa(id)+"/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prefill := decode(t, rec)["form"].(map[string]any)
	assert.Equal(t, "The Fillmore", prefill["name"])
	assert.Equal(t, "false", prefill["seeking_talent"])

	bad := fillmoreForm()
	bad.Set("phone", "nope")
	rec = s.do(http.MethodPost, "/venues/"+itoa(id)+"/edit", bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "An error occurred. Venue The Fillmore could not be updated.", decode(t, rec)["error"])

	good := fillmoreForm()
	good.Set("name", "The Fillmore West")
	good.Set("seeking_talent", "y")
	good.Set("seeking_description", "Bands wanted")
	rec = s.do(http.MethodPost, "/venues/"+itoa(id)+"/edit", good)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Venue The Fillmore West was successfully updated!", decode(t, rec)["message"])

	detail := decode(t, s.do(http.MethodGet, "/venues/"+itoa(id), nil))
	assert.Equal(t, "The Fillmore West", detail["name"])
	assert.Equal(t, true, detail["seeking_talent"])
	assert.Equal(t, "Bands wanted", detail["seeking_description"])
}

func TestUpdateArtist(t *testing.T) {
	s := newServer(t)
	id := s.createArtist(artistForm("Guns N Petals"))

	prefill := decode(t, s.do(http.MethodGet, "/artists/"+itoa(id)+"/edit", nil))["form"].(map[string]any)
	assert.Equal(t, "true", prefill["seeking_venue"])

	f := artistForm("Guns N Roses")
	f.Set("seeking_venue", "")
	rec := s.do(http.MethodPost, "/artists/"+itoa(id)+"/edit", f)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	detail := decode(t, s.do(http.MethodGet, "/artists/"+itoa(id), nil))
	assert.Equal(t, "Guns N Roses", detail["name"])
	assert.Equal(t, false, detail["seeking_venue"])
}

func TestDeleteVenueRedirectsHomeWithFlash(t *testing.T) {
	s := newServer(t)
	venue := s.createVenue(fillmoreForm())
	artist := s.createArtist(artistForm("Guns N Petals"))
	rec := s.do(http.MethodPost, "/shows/create", url.Values{"artist_id": {itoa(artist)}, "venue_id": {itoa(venue)}, "start_time": {"2030-01-01 20:00:00"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodDelete, "/venues/"+itoa(venue), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	ck := flashCookie(rec)
	require.NotNil(t, ck)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/venues/"+itoa(venue), nil).Code)
	assert.Equal(t, []any{}, decode(t, s.do(http.MethodGet, "/shows", nil))["shows"])

	home := decode(t, s.do(http.MethodGet, "/", nil, ck))
	msgs := home["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Venue The Fillmore was successfully deleted!", msgs[0].(map[string]any)["message"])
	assert.Equal(t, []any{}, home["venues"])

	last := s.rec.events[len(s.rec.events)-1]
	assert.Equal(t, queue.ActionDeleted, last.Action)
}

func TestDeleteArtist(t *testing.T) {
	s := newServer(t)
	id := s.createArtist(artistForm("Guns N Petals"))
	rec := s.do(http.MethodDelete, "/artists/"+itoa(id), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []any{}, decode(t, s.do(http.MethodGet, "/artists", nil))["artists"])
}

func TestHomeListsRecentAscending(t *testing.T) {
	s := newServer(t)
	for _, name := range []string{"A", "B", "C"} {
		s.createArtist(artistForm(name))
	}
	home := decode(t, s.do(http.MethodGet, "/", nil))
	artists := home["artists"].([]any)
	require.Len(t, artists, 3)
	assert.Equal(t, "A", artists[0].(map[string]any)["name"])
	assert.Equal(t, "C", artists[2].(map[string]any)["name"])
	assert.Equal(t, []any{}, home["messages"])
}

func TestStoreFailureIsReported(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.db.Close())

	rec := s.do(http.MethodPost, "/venues/create", fillmoreForm())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "An error occurred. Venue The Fillmore could not be listed.", body["error"])
	assert.NotContains(t, body, "fields")

	rec = s.do(http.MethodGet, "/artists", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, s.rec.events)
}

func TestRoutingErrors(t *testing.T) {
	s := newServer(t)
	rec := s.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode(t, rec)["error"])

	rec = s.do(http.MethodPut, "/venues/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestFormPages(t *testing.T) {
	s := newServer(t)
	for _, target := range []string{"/venues/create", "/artists/create"} {
		rec := s.do(http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		choices := body["choices"].(map[string]any)
		assert.Len(t, choices["genres"], 19)
		assert.Len(t, choices["states"], 51)
	}
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
