package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/kleinnic74/geodist/consts"
	"github.com/joho/godotenv"
)

const (
	defaultPort        = 8000
	defaultGeocoderURL = "https://nominatim.openstreetmap.org"
	defaultTimeout     = 10 * time.Second
)

// Config holds the process wide settings. Zero values are never valid, use
// Load or FromEnv.
type Config struct {
	Port            uint          `json:"port"`
	GeocoderURL     string        `json:"geocoderUrl"`
	GeocoderTimeout time.Duration `json:"geocoderTimeout"`
	UserAgent       string        `json:"userAgent"`
	Languages       []string      `json:"languages"`
	DevMode         bool          `json:"devmode"`
}

// Load reads the given .env files (".env" when none given) without
// overriding variables already set, then builds the configuration from the
// environment. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (c Config, err error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.ParseUint(get("PORT", strconv.Itoa(defaultPort)), 10, 16)
	if err != nil || port == 0 {
		return c, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	timeout, err := time.ParseDuration(get("GEOCODER_TIMEOUT", defaultTimeout.String()))
	if err != nil || timeout <= 0 {
		return c, fmt.Errorf("invalid GEOCODER_TIMEOUT %q", getenv("GEOCODER_TIMEOUT"))
	}
	devmode, err := strconv.ParseBool(get("DEVMODE", strconv.FormatBool(consts.IsDevMode())))
	if err != nil {
		return c, fmt.Errorf("invalid DEVMODE %q: %w", getenv("DEVMODE"), err)
	}
	var langs []string
	for _, l := range strings.Split(get("GEOCODER_LANG", "en"), ",") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}

	return Config{
		Port:            uint(port),
		GeocoderURL:     strings.TrimRight(get("GEOCODER_URL", defaultGeocoderURL), "/"),
		GeocoderTimeout: timeout,
		UserAgent:       get("GEOCODER_USER_AGENT", consts.UserAgent()),
		Languages:       langs,
		DevMode:         devmode,
	}, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
