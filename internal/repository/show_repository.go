// Package repository contains data access logic for Show domain operations.
// A show only exists while both its artist and its venue exist, so Create
// checks both references inside the insert transaction.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show.  ErrArtistNotFound or ErrVenueNotFound is
// returned, and nothing is written, when either referenced row is absent.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "artists", s.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		if ok, err = exists(ctx, tx, "venues", s.VenueID); err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
	return wrap("create", "show", err)
}

// ListAll returns every show without joined fields, ordered by start
// time.  It is enough to count upcoming shows per venue or artist.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT id, artist_id, venue_id, start_time FROM shows ORDER BY start_time, id`
	var out []model.Show
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var s model.Show
			if err := rows.Scan(&s.ID, &s.ArtistID, &s.VenueID, &s.StartTime); err != nil {
				return err
			}
			s.StartTime = s.StartTime.UTC()
			out = append(out, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, wrap("list", "show", err)
	}
	return out, nil
}

// ListListings returns every show joined with its artist and venue.
func (r *ShowRepo) ListListings(ctx context.Context) ([]model.ShowListing, error) {
	return r.listings(ctx, "")
}

// ListByVenue returns the shows booked at a venue, joined with the
// performing artist.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, "WHERE s.venue_id = ?", venueID)
}

// ListByArtist returns the shows an artist plays, joined with the venue.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, "WHERE s.artist_id = ?", artistID)
}

func (r *ShowRepo) listings(ctx context.Context, where string, args ...any) ([]model.ShowListing, error) {
	q := `SELECT s.id, s.artist_id, s.venue_id, s.start_time,
	             a.name, COALESCE(a.image_link, ''),
	             v.name, COALESCE(v.image_link, '')
	      FROM shows s
	      JOIN artists a ON a.id = s.artist_id
	      JOIN venues v  ON v.id = s.venue_id
	      ` + where + `
	      ORDER BY s.start_time ASC, s.id ASC`
	var out []model.ShowListing
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var l model.ShowListing
			if err := rows.Scan(&l.ID, &l.ArtistID, &l.VenueID, &l.StartTime,
				&l.ArtistName, &l.ArtistImageLink, &l.VenueName, &l.VenueImageLink); err != nil {
				return err
			}
			l.StartTime = l.StartTime.UTC()
			out = append(out, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, wrap("list", "show", err)
	}
	return out, nil
}
