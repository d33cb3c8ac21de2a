package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/VarunKarthikB-18/movie-watchlist/internal/config"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/model"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/repository"
    "github.com/VarunKarthikB-18/movie-watchlist/internal/utils"
)

// UserStore is the credential store contract the auth handler depends on.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake.
type UserStore interface {
    Create(ctx context.Context, email, password string, cost int) (uint64, error)
    GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type credentialsReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type registerResp struct {
    Msg    string `json:"msg"`
    UserID uint64 `json:"user_id"`
}

type loginResp struct {
    AccessToken string `json:"access_token"`
    UserID      uint64 `json:"user_id"`
}

// Register creates a new account and returns its id. The password is
// hashed inside the credential store; neither it nor the hash appears in
// any response.
func (h *AuthHandler) Register(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email and password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Pre-read for a friendly duplicate message. The unique index on
    // users.email is what actually guarantees uniqueness; a concurrent
    // registration that slips past this check surfaces as ErrEmailExists
    // from Create below.
    if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email already registered"})
    } else if !errors.Is(err, sql.ErrNoRows) {
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
    }

    uid, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email already registered"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "create user failed"})
    }

    return c.JSON(http.StatusCreated, registerResp{Msg: "user created", UserID: uid})
}

// Login verifies credentials and returns a fresh access token. Unknown
// email and wrong password produce the identical response so callers
// cannot enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email and password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "bad credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "bad credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLHours)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "issue token failed"})
    }

    return c.JSON(http.StatusOK, loginResp{AccessToken: access.Token, UserID: u.ID})
}
