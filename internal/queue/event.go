// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"fmt"
	"time"
)

// ListingQueueName is the durable queue listing events are published to.
const ListingQueueName = "listing.events"

// Listing actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Listing entities.
const (
	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"
)

// ListingEvent is published after a venue, artist or show was written.
// It carries enough to log the change without querying the database.
type ListingEvent struct {
	Action string    `json:"action"`
	Entity string    `json:"entity"`
	ID     uint64    `json:"id"`
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}

// NewListingEvent stamps an event with the current UTC time.
func NewListingEvent(action, entity string, id uint64, name string) ListingEvent {
	return ListingEvent{Action: action, Entity: entity, ID: id, Name: name, At: time.Now().UTC()}
}

// String renders the event as one log line.
func (e ListingEvent) String() string {
	return fmt.Sprintf("[%s] Listing %s | entity=%s | id=%d | name=%q",
		e.At.UTC().Format(time.RFC3339), e.Action, e.Entity, e.ID, e.Name)
}
