// Command mockbackend serves the product backend contract locally, in
// memory or on MySQL/Postgres when DB_DSN is set.
package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/viccjiang/hexadmin/internal/backend/fakeapi"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("MOCK_ADDR", ":8081"), "listen address")
	apiPath := flag.String("path", envOr("API_PATH", "hexadmin"), "API path segment")
	user := flag.String("user", envOr("MOCK_USERNAME", "admin@example.com"), "admin username")
	pass := flag.String("password", envOr("MOCK_PASSWORD", "admin1234"), "admin password")
	secret := flag.String("secret", envOr("MOCK_TOKEN_SECRET", "dev-only-secret"), "token signing secret")
	ttl := flag.Duration("ttl", 7*24*time.Hour, "token lifetime")
	dsn := flag.String("dsn", os.Getenv("DB_DSN"), "database DSN (empty: in-memory)")
	origins := flag.String("cors", os.Getenv("MOCK_CORS_ORIGINS"), "comma-separated origins allowed by CORS")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	hash, err := fakeapi.HashPassword(*pass)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var store fakeapi.Store = fakeapi.NewMemoryStore(sampleProducts()...)
	if *dsn != "" {
		db, err := fakeapi.OpenDB(*dsn)
		if err != nil {
			log.Fatal(err)
		}
		if err := fakeapi.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		store = fakeapi.NewGormStore(db)
	}

	srv := fakeapi.NewServer(fakeapi.Config{
		APIPath:      *apiPath,
		Username:     *user,
		PasswordHash: hash,
		Secret:       []byte(*secret),
		TokenTTL:     *ttl,
		AllowOrigins: splitList(*origins),
	}, store, logger)

	logger.Info("mock_backend_listening", slog.String("addr", *addr), slog.String("path", *apiPath), slog.Bool("db", *dsn != ""))
	s := &http.Server{Addr: *addr, Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
	log.Fatal(s.ListenAndServe())
}

func sampleProducts() []fakeapi.Product {
	return []fakeapi.Product{
		{
			Title: "Alishan oolong", Category: "tea", Unit: "box",
			OriginPrice: 1200, Price: 980, IsEnabled: 1,
			Description: "High mountain oolong, 150 g.",
			ImagesURL:   []string{},
		},
		{
			Title: "Ceramic gaiwan", Category: "teaware", Unit: "piece",
			OriginPrice: 800, Price: 800, IsEnabled: 0,
			ImagesURL: []string{},
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
