package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"yatube/internal/app"
	"yatube/internal/cache"
	"yatube/internal/db"
	httpx "yatube/internal/http"
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := app.LoadConfig()
	d, err := db.Open(cfg.DatabaseURL)
	app.Must(err)
	app.Must(db.Migrate(d, "schema.sql"))

	pages := cache.NewRedis(cfg.RedisAddr)
	defer pages.Close()

	srv := httpx.NewServer(d, pages, cfg, log)
	log.Info().Str("addr", cfg.Addr).Msg("listening")
	app.Must(http.ListenAndServe(cfg.Addr, srv))
}
