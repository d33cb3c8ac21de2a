package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/VarunKarthikB-18/movie-watchlist/internal/cache"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/config"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/database"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/handler"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/queue"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/repository"
	"github.com/VarunKarthikB-18/movie-watchlist/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)

	// Optional Redis-backed watchlist cache; nil disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, watchlist cache disabled")
	}
	wc := cache.NewWatchlist(rdb, config.LoadCacheConfig())

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterMovies(e, handler.NewMovieHandler(movies, wc), cfg.JWTSecret)

	// Background activity-log consumer; returns immediately when no broker
	// is configured.
	go queue.StartActivityConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
