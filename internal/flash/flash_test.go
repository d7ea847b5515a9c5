package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var last *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			last = ck
		}
	}
	require.NotNil(t, last, "no %s cookie set", CookieName)
	return last
}

func TestSetThenPop(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/venues/create", nil), rec)
	require.NoError(t, Set(c, secret, Info, "Venue The Fillmore was successfully listed!"))
	require.NoError(t, Set(c, secret, Error, "second"))
	ck := cookieFrom(t, rec)
	assert.True(t, ck.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	msgs := Pop(c, secret)
	assert.Equal(t, []Message{
		{Category: Info, Text: "Venue The Fillmore was successfully listed!"},
		{Category: Error, Text: "second"},
	}, msgs)
	assert.Equal(t, -1, cookieFrom(t, rec).MaxAge)
}

func TestPopWithoutCookie(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, []Message{}, Pop(c, secret))
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, Set(c, "other-secret", Info, "forged"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookieFrom(t, rec))
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Empty(t, Pop(c, secret))

	_, err := Decode("not-a-token", secret)
	assert.Error(t, err)
}
