// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto a typed [Config].

A local .env file, when present, is loaded first (godotenv) so development
setups need no exported variables; real environment values always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Media backends accepted by MEDIA_BACKEND.
const (
	MediaCloudinary = "cloudinary"
	MediaS3         = "s3"
)

// # Configuration Schema

// Config holds all runtime configuration for the Vidtube API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string        `env:"REDIS_URL,required"`
	ViewDedupeTTL time.Duration `env:"VIEW_DEDUPE_TTL" envDefault:"6h"`

	// Token signing
	JWTPrivKeyPath  string        `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath   string        `env:"JWT_PUBLIC_KEY_PATH,required"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"240h"`

	// Media hosting
	MediaBackend     string `env:"MEDIA_BACKEND"     envDefault:"cloudinary"`
	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	MediaFolder      string `env:"MEDIA_FOLDER"      envDefault:"vidtube"`

	// Object Storage (S3-compatible)
	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`

	// Multipart spooling
	UploadDir      string `env:"UPLOAD_DIR"       envDefault:"./public/temp"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"524288000"`

	// Cross-Origin Resource Sharing, comma separated
	CORSOrigins string `env:"CORS_ORIGINS"`

	// Reverse proxies whose X-Real-IP / X-Forwarded-For are believed (CIDRs or bare IPs)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	proxyPrefixes []netip.Prefix
}

// # Configuration Loading

// Load reads an optional .env file and parses the environment into a [Config].
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	prefixes, err := ParsePrefixes(c.TrustedProxies)
	if err != nil {
		return err
	}
	c.proxyPrefixes = prefixes

	switch c.MediaBackend {
	case MediaCloudinary:
		if c.CloudinaryURL == "" {
			return errors.New("config: CLOUDINARY_URL is required when MEDIA_BACKEND=cloudinary")
		}
	case MediaS3:
		if c.S3Bucket == "" {
			return errors.New("config: S3_BUCKET is required when MEDIA_BACKEND=s3")
		}
	default:
		return fmt.Errorf("config: unknown MEDIA_BACKEND %q", c.MediaBackend)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits CORS_ORIGINS into a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// TrustedProxyPrefixes returns the networks parsed from TRUSTED_PROXIES.
func (c *Config) TrustedProxyPrefixes() []netip.Prefix {
	return c.proxyPrefixes
}

// ParsePrefixes accepts CIDRs and bare addresses; a bare address becomes a
// single-host prefix. Blank entries are skipped.
func ParsePrefixes(values []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", value, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(value)
		if err != nil {
			return nil, fmt.Errorf("config: invalid TRUSTED_PROXIES entry %q: %w", value, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
