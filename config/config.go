package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// API endpoints for the hosted Astrometry.net service.
const (
	// BaseURL is the root of the nova.astrometry.net JSON API.
	BaseURL = "http://nova.astrometry.net/api"
	// LoginURL is the session login endpoint.
	LoginURL = BaseURL + "/login"
)

// EnvAPIKey is the environment variable consulted when no explicit key
// or key file is provided.
const EnvAPIKey = "ASTROMETRY_API_KEY"

// ErrNoAPIKey indicates that no API key could be resolved from any source.
var ErrNoAPIKey = errors.New("no astrometry API key found")

// ResolveAPIKey resolves the API key used to authenticate against the
// Astrometry.net API. Sources are consulted in priority order, first
// match wins:
//
//  1. the explicit key argument
//  2. the contents of the file at keyFile (surrounding whitespace trimmed)
//  3. the ASTROMETRY_API_KEY environment variable
//
// If none of the sources yields a key, an error wrapping ErrNoAPIKey is
// returned.
func ResolveAPIKey(explicit, keyFile string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if keyFile != "" {
		contents, err := os.ReadFile(keyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(contents))
		if key == "" {
			return "", fmt.Errorf("API key file %s is empty", keyFile)
		}
		return key, nil
	}

	v := viper.New()
	if err := v.BindEnv("apikey", EnvAPIKey); err != nil {
		return "", fmt.Errorf("failed to bind environment: %w", err)
	}
	if key := v.GetString("apikey"); key != "" {
		return key, nil
	}

	return "", fmt.Errorf("%w: provide a key argument, a key file path, or set %s", ErrNoAPIKey, EnvAPIKey)
}
