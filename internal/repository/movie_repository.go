// Package repository contains data access logic separated from HTTP
// handlers. This file holds the movie repository: every query it issues is
// filtered by the owning user id, so row-level isolation is enforced here
// and not left to callers.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/VarunKarthikB-18/movie-watchlist/internal/model"
)

const movieColumns = "id, title, year, watched, rating, notes, poster_url, user_id, created_at, updated_at"

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// ListByOwner returns all movies belonging to ownerID, newest first. The
// full set is loaded; watchlists are small and unpaginated.
func (r *MovieRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies WHERE user_id = ? ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows.Scan, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new movie for m.UserID. On success m is refreshed from
// the database so the caller receives the assigned id and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const qInsert = `INSERT INTO movies (title, year, watched, rating, notes, poster_url, user_id)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		m.Title, m.Year, m.Watched, m.Rating, m.Notes, m.PosterURL, m.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.reload(ctx, m)
}

// GetByIDAndOwner fetches a movie by id but only if it belongs to the
// specified owner. A missing row and a row owned by someone else both
// return ErrMovieNotFound.
func (r *MovieRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies WHERE id = ? AND user_id = ?"
	var m model.Movie
	err := scanMovie(r.db.QueryRowContext(ctx, q, id, ownerID).Scan, &m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Movie{}, ErrMovieNotFound
		}
		return model.Movie{}, err
	}
	return m, nil
}

// Update applies the non-nil fields of patch to the movie identified by id
// and ownerID, returning the updated row. Fields absent from the patch keep
// their stored values; an empty patch returns the row unchanged. The
// ownership check happens first so a not-found result is indistinguishable
// from a foreign-owned row.
func (r *MovieRepo) Update(ctx context.Context, ownerID, id uint64, patch model.MoviePatch) (model.Movie, error) {
	if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		return model.Movie{}, err
	}
	if patch.IsZero() {
		return r.GetByIDAndOwner(ctx, id, ownerID)
	}

	// Build the SET clause column by column from the allow-listed patch
	// fields. Column names are constants here; only values are bound.
	sets := make([]string, 0, 6)
	args := make([]any, 0, 8)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Year != nil {
		sets = append(sets, "year = ?")
		args = append(args, *patch.Year)
	}
	if patch.Watched != nil {
		sets = append(sets, "watched = ?")
		args = append(args, *patch.Watched)
	}
	if patch.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *patch.Rating)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.PosterURL != nil {
		sets = append(sets, "poster_url = ?")
		args = append(args, *patch.PosterURL)
	}
	args = append(args, id, ownerID)

	q := "UPDATE movies SET " + strings.Join(sets, ", ") +
		", updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return model.Movie{}, err
	}
	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// Delete removes the movie if it belongs to ownerID. Deleting an absent or
// foreign-owned movie returns ErrMovieNotFound, so a repeated delete of the
// same id reports not-found even though the end state is identical.
func (r *MovieRepo) Delete(ctx context.Context, ownerID, id uint64) error {
	const q = "DELETE FROM movies WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// reload refreshes m from the database by primary key.
func (r *MovieRepo) reload(ctx context.Context, m *model.Movie) error {
	const q = "SELECT " + movieColumns + " FROM movies WHERE id = ?"
	return scanMovie(r.db.QueryRowContext(ctx, q, m.ID).Scan, m)
}

// scanMovie scans one movies row using the given Scan function, converting
// nullable columns to pointer fields.
func scanMovie(scan func(dest ...any) error, m *model.Movie) error {
	var (
		year   sql.NullInt64
		rating sql.NullFloat64
		notes  sql.NullString
		poster sql.NullString
	)
	if err := scan(&m.ID, &m.Title, &year, &m.Watched, &rating, &notes, &poster,
		&m.UserID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}
	if year.Valid {
		y := int(year.Int64)
		m.Year = &y
	}
	if rating.Valid {
		v := rating.Float64
		m.Rating = &v
	}
	if notes.Valid {
		s := notes.String
		m.Notes = &s
	}
	if poster.Valid {
		s := poster.String
		m.PosterURL = &s
	}
	return nil
}
