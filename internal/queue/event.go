// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity kinds published on the watchlist.activity queue.
const (
    ActivityMovieAdded   = "movie.added"
    ActivityMovieWatched = "movie.watched"
    ActivityMovieDeleted = "movie.deleted"
)

// ActivityEvent is published whenever a user's watchlist changes. It
// carries enough information for downstream consumers to build an audit
// trail without querying the primary database.
type ActivityEvent struct {
    Kind       string `json:"kind"`
    UserID     uint64 `json:"user_id"`
    MovieID    uint64 `json:"movie_id"`
    MovieTitle string `json:"movie_title"`
    OccurredAt string `json:"occurred_at"`
}
