package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "astrometry.key")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		keyFile  string
		env      string
		want     string
	}{
		{
			name:     "explicit key wins over file and env",
			explicit: "explicit-key",
			keyFile:  "file-key",
			env:      "env-key",
			want:     "explicit-key",
		},
		{
			name:    "key file wins over env",
			keyFile: "file-key",
			env:     "env-key",
			want:    "file-key",
		},
		{
			name: "env var used last",
			env:  "env-key",
			want: "env-key",
		},
		{
			name:    "key file contents are trimmed",
			keyFile: "  padded-key \n",
			want:    "padded-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tt.env)

			var path string
			if tt.keyFile != "" {
				path = writeKeyFile(t, tt.keyFile)
			}

			key, err := ResolveAPIKey(tt.explicit, path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestResolveAPIKeyNoSources(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := ResolveAPIKey("", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.Contains(t, err.Error(), EnvAPIKey)
}

func TestResolveAPIKeyBadFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveAPIKey("", filepath.Join(t.TempDir(), "missing.key"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read API key file")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ResolveAPIKey("", writeKeyFile(t, " \n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}
