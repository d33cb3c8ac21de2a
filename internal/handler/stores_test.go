package handler_test

// In-memory fakes implementing the handler store contracts. They mirror the
// repository semantics the SQL layer provides: normalized unique emails,
// owner-filtered movie access with a single not-found outcome, and id-
// descending list order.

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/VarunKarthikB-18/movie-watchlist/internal/config"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/handler"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/model"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/repository"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/router"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/utils"
)

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[string]model.User // keyed by normalized email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, password string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.users[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.users[email] = model.User{ID: s.nextID, Email: email, PasswordHash: hash}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type fakeMovieStore struct {
	mu     sync.Mutex
	nextID uint64
	movies map[uint64]model.Movie
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[uint64]model.Movie{}}
}

func cloneMovie(m model.Movie) model.Movie {
	out := m
	if m.Year != nil {
		y := *m.Year
		out.Year = &y
	}
	if m.Rating != nil {
		r := *m.Rating
		out.Rating = &r
	}
	if m.Notes != nil {
		n := *m.Notes
		out.Notes = &n
	}
	if m.PosterURL != nil {
		p := *m.PosterURL
		out.PosterURL = &p
	}
	return out
}

func (s *fakeMovieStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Movie{}
	for _, m := range s.movies {
		if m.UserID == ownerID {
			out = append(out, cloneMovie(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeMovieStore) Create(_ context.Context, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	s.movies[m.ID] = cloneMovie(*m)
	return nil
}

func (s *fakeMovieStore) GetByIDAndOwner(_ context.Context, id, ownerID uint64) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok || m.UserID != ownerID {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (s *fakeMovieStore) Update(_ context.Context, ownerID, id uint64, patch model.MoviePatch) (model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok || m.UserID != ownerID {
		return model.Movie{}, repository.ErrMovieNotFound
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Year != nil {
		m.Year = patch.Year
	}
	if patch.Watched != nil {
		m.Watched = *patch.Watched
	}
	if patch.Rating != nil {
		m.Rating = patch.Rating
	}
	if patch.Notes != nil {
		m.Notes = patch.Notes
	}
	if patch.PosterURL != nil {
		m.PosterURL = patch.PosterURL
	}
	s.movies[id] = cloneMovie(m)
	return cloneMovie(m), nil
}

func (s *fakeMovieStore) Delete(_ context.Context, ownerID, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok || m.UserID != ownerID {
		return repository.ErrMovieNotFound
	}
	delete(s.movies, id)
	return nil
}

func (s *fakeMovieStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

// fakeWatchlistCache records every cache interaction so tests can assert
// the hit/miss and invalidation behavior the handlers promise.
type fakeWatchlistCache struct {
	mu      sync.Mutex
	entries map[uint64][]byte
	hits    int
	sets    int
	dropped []uint64 // owner ids passed to Invalidate, in order
}

func newFakeWatchlistCache() *fakeWatchlistCache {
	return &fakeWatchlistCache{entries: map[uint64][]byte{}}
}

func (c *fakeWatchlistCache) Get(_ context.Context, ownerID uint64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[ownerID]
	if ok {
		c.hits++
	}
	return payload, ok
}

func (c *fakeWatchlistCache) Set(_ context.Context, ownerID uint64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[ownerID] = append([]byte(nil), payload...)
}

func (c *fakeWatchlistCache) Invalidate(_ context.Context, ownerID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropped = append(c.dropped, ownerID)
	delete(c.entries, ownerID)
}

func (c *fakeWatchlistCache) cached(ownerID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[ownerID]
	return ok
}

// plant stores a payload directly, bypassing the handlers.
func (c *fakeWatchlistCache) plant(ownerID uint64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ownerID] = payload
}

// --- API test harness ---

const testJWTSecret = "handler-test-secret"

type testAPI struct {
	e      *echo.Echo
	users  *fakeUserStore
	movies *fakeMovieStore
	cache  *fakeWatchlistCache // nil unless built with newTestAPIWithCache
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return buildTestAPI(t, nil)
}

// newTestAPIWithCache wires a recording cache fake into the movie handler.
func newTestAPIWithCache(t *testing.T) *testAPI {
	t.Helper()
	return buildTestAPI(t, newFakeWatchlistCache())
}

func buildTestAPI(t *testing.T, wc *fakeWatchlistCache) *testAPI {
	t.Helper()
	cfg := config.Config{
		JWTSecret:      testJWTSecret,
		AccessTTLHours: 24,
		BcryptCost:     bcrypt.MinCost,
	}
	users := newFakeUserStore()
	movies := newFakeMovieStore()

	var cacheDep handler.WatchlistCache
	if wc != nil {
		cacheDep = wc
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterMovies(e, handler.NewMovieHandler(movies, cacheDep), cfg.JWTSecret)
	return &testAPI{e: e, users: users, movies: movies, cache: wc}
}

// do performs one JSON request against the API. token == "" sends no
// Authorization header.
func (a *testAPI) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(bs)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin provisions an account and returns its token and id.
func (a *testAPI) registerAndLogin(t *testing.T, email, password string) (token string, userID uint64) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/register", "", echo.Map{"email": email, "password": password})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: got %d, want 201 (body %s)", email, rec.Code, rec.Body)
	}
	rec = a.do(t, http.MethodPost, "/auth/login", "", echo.Map{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: got %d, want 200 (body %s)", email, rec.Code, rec.Body)
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		UserID      uint64 `json:"user_id"`
	}
	decodeBody(t, rec, &resp)
	if resp.AccessToken == "" {
		t.Fatalf("login %s: empty access_token", email)
	}
	return resp.AccessToken, resp.UserID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body, err)
	}
}
