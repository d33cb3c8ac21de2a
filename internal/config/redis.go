package config

// Redis client constructor. Redis backs the per-user watchlist response
// cache; it is an optional dependency. When the connection cannot be
// established at startup the constructor returns nil and the caller runs
// with caching disabled.

import (
    "context"
    "crypto/tls"
    "os"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment variables:
//
//   REDIS_ADDR     host:port (takes precedence)
//   REDIS_HOST/REDIS_PORT  assembled into an address when REDIS_ADDR is unset
//   REDIS_PASSWORD optional password
//   REDIS_DB       database number, default 0
//   REDIS_TLS      enable TLS when "true" or "1"
//
// Returns nil if the server does not answer a ping within two seconds.
func NewRedisClient() *redis.Client {
    addr := os.Getenv("REDIS_ADDR")
    if addr == "" {
        if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
            addr = host + ":" + port
        }
    }
    if addr == "" {
        addr = "localhost:6379"
    }

    var tlsConf *tls.Config
    if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }

    client := redis.NewClient(&redis.Options{
        Addr:      addr,
        Password:  os.Getenv("REDIS_PASSWORD"),
        DB:        envInt("REDIS_DB", 0),
        TLSConfig: tlsConf,
    })

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
