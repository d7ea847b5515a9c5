package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/fyyur/internal/model"
)

const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link,
	website_link, seeking_venue, seeking_description, created_at`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(s rowScanner) (*model.Artist, error) {
	var (
		a      model.Artist
		desc   sql.NullString
		genres string
	)
	if err := s.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.ImageLink,
		&a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &desc, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.SeekingDescription = desc.String
	a.Genres = splitGenres(genres)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func (r *ArtistRepo) query(ctx context.Context, op, q string, args ...any) ([]model.Artist, error) {
	var out []model.Artist
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			a, err := scanArtist(rows)
			if err != nil {
				return err
			}
			out = append(out, *a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, wrap(op, "artist", err)
	}
	return out, nil
}

// Create inserts a new artist and populates ID and CreatedAt.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
	           website_link, seeking_venue, seeking_description, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	created := stamp()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, joinGenres(a.Genres),
			a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, nullString(a.SeekingDescription), created)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
	if err != nil {
		return wrap("create", "artist", err)
	}
	a.CreatedAt = created
	return nil
}

// GetByID retrieves an artist by id.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a *model.Artist
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		a, err = scanArtist(tx.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	})
	if err != nil {
		return nil, wrap("get", "artist", err)
	}
	return a, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.query(ctx, "list", "SELECT "+artistColumns+" FROM artists ORDER BY id")
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string) ([]model.Artist, error) {
	return r.query(ctx, "search", "SELECT "+artistColumns+` FROM artists
		WHERE LOWER(name) LIKE ? ESCAPE '!'
		ORDER BY id`, containsPattern(term))
}

// ListRecent returns up to limit artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int) ([]model.Artist, error) {
	return r.query(ctx, "list recent", "SELECT "+artistColumns+" FROM artists ORDER BY created_at DESC, id DESC LIMIT ?", limit)
}

// Update replaces the editable fields of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?, facebook_link = ?,
	               website_link = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "artists", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		_, err = tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, joinGenres(a.Genres), a.ImageLink,
			a.FacebookLink, a.WebsiteLink, a.SeekingVenue, nullString(a.SeekingDescription), a.ID)
		return err
	})
	return wrap("update", "artist", err)
}

// Delete removes an artist and all of their shows in one transaction.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "artists", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		return err
	})
	return wrap("delete", "artist", err)
}
