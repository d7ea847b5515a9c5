// Package flash carries one-shot user messages across a redirect.  The
// pending messages live in a cookie holding an HS256-signed JWT, so a
// client cannot forge or alter them.
package flash

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName is the cookie that stores pending messages.
const CookieName = "flash"

// TTL bounds how long an unread message survives.
const TTL = 10 * time.Minute

// Message categories.
const (
	Info  = "info"
	Error = "error"
)

// Message is a single flashed message.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"message"`
}

type claims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Set appends a message to the pending messages of the client.  Messages
// set earlier in the same request are kept.
func Set(c echo.Context, secret, category, text string) error {
	pending := read(c, secret)
	if v, ok := c.Get(contextKey).([]Message); ok {
		pending = v
	}
	pending = append(pending, Message{Category: category, Text: text})
	c.Set(contextKey, pending)

	now := time.Now().UTC()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(TTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending messages and clears the cookie.  Missing,
// expired or tampered cookies yield no messages.
func Pop(c echo.Context, secret string) []Message {
	msgs := read(c, secret)
	if _, err := c.Cookie(CookieName); err == nil {
		c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
	if msgs == nil {
		return []Message{}
	}
	return msgs
}

const contextKey = "flash.pending"

func read(c echo.Context, secret string) []Message {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	msgs, err := Decode(ck.Value, secret)
	if err != nil {
		return nil
	}
	return msgs
}

// Decode verifies a signed cookie value and returns its messages.
func Decode(value, secret string) ([]Message, error) {
	var cl claims
	t, err := jwt.ParseWithClaims(value, &cl, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, errors.New("invalid flash token")
	}
	return cl.Messages, nil
}
