// Package repository contains data access logic separated from HTTP handlers.
// This file defines the venue repository: CRUD, the distinct-location query
// used by the grouped listing, search and the recent-venues query for the
// home page.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	website_link, seeking_talent, seeking_description, genres, created_at`

// VenueRepo encapsulates all database queries related to venues.  Every
// method runs in its own transaction.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func scanVenue(s rowScanner) (*model.Venue, error) {
	var (
		v      model.Venue
		desc   sql.NullString
		genres string
	)
	if err := s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent, &desc, &genres, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.SeekingDescription = desc.String
	v.Genres = splitGenres(genres)
	v.CreatedAt = v.CreatedAt.UTC()
	return &v, nil
}

func (r *VenueRepo) query(ctx context.Context, op, q string, args ...any) ([]model.Venue, error) {
	var out []model.Venue
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			v, err := scanVenue(rows)
			if err != nil {
				return err
			}
			out = append(out, *v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, wrap(op, "venue", err)
	}
	return out, nil
}

// Create inserts a new venue.  On success ID and CreatedAt are populated
// on v.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
	           website_link, seeking_talent, seeking_description, genres, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	created := stamp()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.FacebookLink, v.WebsiteLink, v.SeekingTalent, nullString(v.SeekingDescription),
			joinGenres(v.Genres), created)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
	if err != nil {
		return wrap("create", "venue", err)
	}
	v.CreatedAt = created
	return nil
}

// GetByID fetches a venue by id.  It returns ErrVenueNotFound if no row
// is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v *model.Venue
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		v, err = scanVenue(tx.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	})
	if err != nil {
		return nil, wrap("get", "venue", err)
	}
	return v, nil
}

// ListAll returns every venue ordered by id.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.query(ctx, "list", "SELECT "+venueColumns+" FROM venues ORDER BY id")
}

// ListLocations returns the distinct (city, state) pairs venues are
// located in, ordered by state then city.
func (r *VenueRepo) ListLocations(ctx context.Context) ([]model.Location, error) {
	var out []model.Location
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT DISTINCT city, state FROM venues ORDER BY state, city`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var l model.Location
			if err := rows.Scan(&l.City, &l.State); err != nil {
				return err
			}
			out = append(out, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, wrap("list locations", "venue", err)
	}
	return out, nil
}

// ListByLocation returns the venues in a given city and state.
func (r *VenueRepo) ListByLocation(ctx context.Context, loc model.Location) ([]model.Venue, error) {
	return r.query(ctx, "list", "SELECT "+venueColumns+" FROM venues WHERE city = ? AND state = ? ORDER BY id",
		loc.City, loc.State)
}

// Search returns venues whose name, city or state contains term,
// ignoring case.  An empty term returns every venue.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]model.Venue, error) {
	p := containsPattern(term)
	return r.query(ctx, "search", "SELECT "+venueColumns+` FROM venues
		WHERE LOWER(name) LIKE ? ESCAPE '!'
		   OR LOWER(city) LIKE ? ESCAPE '!'
		   OR LOWER(state) LIKE ? ESCAPE '!'
		ORDER BY id`, p, p, p)
}

// ListRecent returns up to limit venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]model.Venue, error) {
	return r.query(ctx, "list recent", "SELECT "+venueColumns+" FROM venues ORDER BY created_at DESC, id DESC LIMIT ?", limit)
}

// Update replaces every editable field of the venue identified by v.ID.
// It returns ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?,
	               website_link = ?, seeking_talent = ?, seeking_description = ?, genres = ?
	           WHERE id = ?`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "venues", v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		_, err = tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.FacebookLink, v.WebsiteLink, v.SeekingTalent, nullString(v.SeekingDescription),
			joinGenres(v.Genres), v.ID)
		return err
	})
	return wrap("update", "venue", err)
}

// Delete removes a venue together with every show booked at it.  Both
// deletes happen in one transaction, so either the venue and its shows
// disappear or nothing changes.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "venues", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		return err
	})
	return wrap("delete", "venue", err)
}
