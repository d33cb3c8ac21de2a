package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/VarunKarthikB-18/movie-watchlist/internal/cache"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/middleware"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/model"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/queue"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/repository"
    queue_publisher "github.com/VarunKarthikB-18/movie-watchlist/internal/service"
)

// Ratings are accepted in [0,10]; the store keeps two decimal places.
const maxRating = 10

// MovieStore is the owner-scoped movie repository contract.
// *repository.MovieRepo satisfies it; tests substitute an in-memory fake.
type MovieStore interface {
    ListByOwner(ctx context.Context, ownerID uint64) ([]model.Movie, error)
    Create(ctx context.Context, m *model.Movie) error
    GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (model.Movie, error)
    Update(ctx context.Context, ownerID, id uint64, patch model.MoviePatch) (model.Movie, error)
    Delete(ctx context.Context, ownerID, id uint64) error
}

// WatchlistCache caches the serialized list payload per owner.
// *cache.Watchlist satisfies it; tests substitute a recording fake.
type WatchlistCache interface {
    Get(ctx context.Context, ownerID uint64) ([]byte, bool)
    Set(ctx context.Context, ownerID uint64, payload []byte)
    Invalidate(ctx context.Context, ownerID uint64)
}

var _ WatchlistCache = (*cache.Watchlist)(nil)

// MovieHandler bundles dependencies for the watchlist endpoints. Every
// operation is scoped to the identity verified by the JWT middleware; ids
// found in the path or body play no part in authorization.
type MovieHandler struct {
    Movies MovieStore
    Cache  WatchlistCache // may be nil to run without caching
}

func NewMovieHandler(movies MovieStore, wc WatchlistCache) *MovieHandler {
    return &MovieHandler{Movies: movies, Cache: wc}
}

// movieReq binds both the create body and the partial-update body. Pointer
// fields distinguish "absent" from zero values, which is what makes partial
// updates explicit instead of reflective.
type movieReq struct {
    Title     *string  `json:"title"`
    Year      *int     `json:"year"`
    Watched   *bool    `json:"watched"`
    Rating    *float64 `json:"rating"`
    Notes     *string  `json:"notes"`
    PosterURL *string  `json:"poster_url"`
}

func (r movieReq) patch() model.MoviePatch {
    return model.MoviePatch{
        Title:     r.Title,
        Year:      r.Year,
        Watched:   r.Watched,
        Rating:    r.Rating,
        Notes:     r.Notes,
        PosterURL: r.PosterURL,
    }
}

func ratingInRange(r *float64) bool {
    return r == nil || (*r >= 0 && *r <= maxRating)
}

// List handles GET /movies and returns the caller's watchlist, newest
// first. The serialized payload is cached per user when Redis is
// configured.
func (h *MovieHandler) List(c echo.Context) error {
    uid, err := middleware.UserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if h.Cache != nil {
        if payload, ok := h.Cache.Get(ctx, uid); ok {
            return c.JSONBlob(http.StatusOK, payload)
        }
    }

    movies, err := h.Movies.ListByOwner(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
    }

    payload, err := json.Marshal(movies)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "encode failed"})
    }
    if h.Cache != nil {
        h.Cache.Set(ctx, uid, payload)
    }
    return c.JSONBlob(http.StatusOK, payload)
}

// Create handles POST /movies. Title is required; watched defaults to
// false; rating must fall within [0,10] when present.
func (h *MovieHandler) Create(c echo.Context) error {
    uid, err := middleware.UserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
    }
    var req movieReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
    }
    title := ""
    if req.Title != nil {
        title = strings.TrimSpace(*req.Title)
    }
    if title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "title is required"})
    }
    if !ratingInRange(req.Rating) {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "rating must be between 0 and 10"})
    }

    m := model.Movie{
        Title:     title,
        Year:      req.Year,
        Rating:    req.Rating,
        Notes:     req.Notes,
        PosterURL: req.PosterURL,
        UserID:    uid,
    }
    if req.Watched != nil {
        m.Watched = *req.Watched
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Movies.Create(ctx, &m); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "create movie failed"})
    }
    h.invalidate(ctx, uid)
    h.publish(ctx, queue.ActivityMovieAdded, m)

    return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id. Only fields present in the body are
// overwritten; a movie that does not exist or belongs to another user
// yields the same 404.
func (h *MovieHandler) Update(c echo.Context) error {
    uid, err := middleware.UserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"msg": "movie not found"})
    }
    var req movieReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
    }
    if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "title is required"})
    }
    if !ratingInRange(req.Rating) {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "rating must be between 0 and 10"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.Movies.Update(ctx, uid, id, req.patch())
    if err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"msg": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "update movie failed"})
    }
    h.invalidate(ctx, uid)
    if req.Watched != nil && *req.Watched {
        h.publish(ctx, queue.ActivityMovieWatched, m)
    }

    return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id. The effect is idempotent (the movie
// ends up absent) but a second call reports not-found.
func (h *MovieHandler) Delete(c echo.Context) error {
    uid, err := middleware.UserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusNotFound, echo.Map{"msg": "movie not found"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.Movies.GetByIDAndOwner(ctx, id, uid)
    if err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"msg": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
    }
    if err := h.Movies.Delete(ctx, uid, id); err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"msg": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "delete movie failed"})
    }
    h.invalidate(ctx, uid)
    h.publish(ctx, queue.ActivityMovieDeleted, m)

    return c.JSON(http.StatusOK, echo.Map{"msg": "movie deleted"})
}

// invalidate drops the owner's cached list after a successful write.
func (h *MovieHandler) invalidate(ctx context.Context, uid uint64) {
    if h.Cache != nil {
        h.Cache.Invalidate(ctx, uid)
    }
}

// publish emits an activity event within the request. Failures are logged
// by the publisher and otherwise ignored; the request outcome never
// depends on the broker.
func (h *MovieHandler) publish(ctx context.Context, kind string, m model.Movie) {
    if !queue_publisher.BrokerConfigured() {
        return
    }
    ev := queue.ActivityEvent{
        Kind:       kind,
        UserID:     m.UserID,
        MovieID:    m.ID,
        MovieTitle: m.Title,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
    _ = queue_publisher.PublishActivity(ctx, ev)
}
