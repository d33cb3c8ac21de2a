package model

import "time"

// Movie represents a watchlist entry in the `movies` table. Every movie
// belongs to exactly one user and is only ever visible through requests
// authenticated as that user. Optional columns map to pointer fields so
// that absent values serialize as JSON null, matching the API contract.
//
// Fields:
//  ID        – primary key identifier.
//  Title     – required movie title.
//  Year      – optional release year.
//  Watched   – whether the user has watched the movie (defaults to false).
//  Rating    – optional rating between 0 and 10, two decimal places.
//  Notes     – optional free-form notes.
//  PosterURL – optional poster image URL.
//  UserID    – owning user id (movies.user_id).
type Movie struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year"`
	Watched   bool      `json:"watched"`
	Rating    *float64  `json:"rating"`
	Notes     *string   `json:"notes"`
	PosterURL *string   `json:"poster_url"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// MoviePatch carries a partial update for a movie. Only non-nil fields are
// applied; everything else keeps its stored value. The explicit field list
// is the allow-list of what a client may change: the id and the owner are
// never patchable.
type MoviePatch struct {
	Title     *string  `json:"title"`
	Year      *int     `json:"year"`
	Watched   *bool    `json:"watched"`
	Rating    *float64 `json:"rating"`
	Notes     *string  `json:"notes"`
	PosterURL *string  `json:"poster_url"`
}

// IsZero reports whether the patch carries no fields at all.
func (p MoviePatch) IsZero() bool {
	return p.Title == nil && p.Year == nil && p.Watched == nil &&
		p.Rating == nil && p.Notes == nil && p.PosterURL == nil
}
