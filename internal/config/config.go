// Package config reads the console's settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/viccjiang/hexadmin/internal/storage"
)

type Config struct {
	APIBase    string
	APIPath    string
	ListenAddr string

	CookieSecret []byte
	CookieSecure bool

	BackendTimeout   time.Duration
	WorkspaceIdleTTL time.Duration
	SweepSpec        string

	LogLevel string
	LogFile  string

	Storage   storage.Config
	MaxUpload int64
}

var ErrMissing = errors.New("config: required setting is missing")

func setDefaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("BACKEND_TIMEOUT", "0s")
	v.SetDefault("WORKSPACE_IDLE_TTL", "12h")
	v.SetDefault("WORKSPACE_SWEEP_SPEC", "@every 10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("LOCAL_UPLOAD_DIR", "./storage/uploads")
	v.SetDefault("LOCAL_UPLOAD_URL_PREFIX", "/uploads")
	v.SetDefault("S3_PREFIX", "products")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
}

// Load reads .env files (if present) into the process environment and then
// the environment into a Config. Real environment variables win over .env.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		APIBase:          strings.TrimSpace(v.GetString("API_BASE")),
		APIPath:          strings.Trim(strings.TrimSpace(v.GetString("API_PATH")), "/"),
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		CookieSecret:     []byte(v.GetString("COOKIE_SECRET")),
		CookieSecure:     v.GetBool("COOKIE_SECURE"),
		BackendTimeout:   v.GetDuration("BACKEND_TIMEOUT"),
		WorkspaceIdleTTL: v.GetDuration("WORKSPACE_IDLE_TTL"),
		SweepSpec:        v.GetString("WORKSPACE_SWEEP_SPEC"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:          v.GetString("LOG_FILE"),
		MaxUpload:        v.GetInt64("UPLOAD_MAX_BYTES"),
		Storage: storage.Config{
			Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
			LocalDir:       v.GetString("LOCAL_UPLOAD_DIR"),
			LocalURLPrefix: v.GetString("LOCAL_UPLOAD_URL_PREFIX"),
			S3: storage.S3Config{
				Region:        v.GetString("S3_REGION"),
				Bucket:        v.GetString("S3_BUCKET"),
				Prefix:        v.GetString("S3_PREFIX"),
				PublicBaseURL: v.GetString("S3_PUBLIC_BASE_URL"),
				Endpoint:      v.GetString("S3_ENDPOINT"),

				AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			},
		},
	}

	var missing []string
	if cfg.APIBase == "" {
		missing = append(missing, "API_BASE")
	}
	if cfg.APIPath == "" {
		missing = append(missing, "API_PATH")
	}
	if len(cfg.CookieSecret) == 0 {
		missing = append(missing, "COOKIE_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	if len(cfg.CookieSecret) < 16 {
		return Config{}, fmt.Errorf("config: COOKIE_SECRET must be at least 16 bytes")
	}
	return cfg, nil
}
