package config_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"componentengine/internal/config"
	"componentengine/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flags map[string]string

func (f flags) String(name string) string {
	return f[name]
}

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestReadDefaults(t *testing.T) {
	cfg, err := config.Read(flags{}, env(nil))
	require.NoError(t, err)

	assert.Equal(t, ".afx", cfg.Extension)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Globals)

	scope, err := cfg.Scope()
	require.NoError(t, err)
	assert.Nil(t, scope)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, config.SaveFile(path, &config.File{
		Extension: ".ui",
		Globals:   map[string]string{"siteName": "string", "visits": "?number[]"},
		LogLevel:  "warn",
	}))

	cfg, err := config.Read(flags{"config": path}, env(nil))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFilePath)
	assert.Equal(t, ".ui", cfg.Extension)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)

	scope, err := cfg.Scope()
	require.NoError(t, err)

	siteName, err := scope.Lookup("siteName")
	require.NoError(t, err)
	assert.Equal(t, types.String(), siteName)

	visits, err := scope.Lookup("visits")
	require.NoError(t, err)
	assert.Equal(t, "number[] | null", visits.String())
}

func TestReadLogLevelPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, config.SaveFile(path, &config.File{LogLevel: "error"}))

	type testCase struct {
		name  string
		flags flags
		env   map[string]string
		want  zerolog.Level
	}

	testCases := []testCase{
		{name: "file", flags: flags{"config": path}, want: zerolog.ErrorLevel},
		{name: "env over file", flags: flags{"config": path}, env: map[string]string{"AFX_LOG_LEVEL": "debug"}, want: zerolog.DebugLevel},
		{name: "flag over env", flags: flags{"config": path, "log-level": "trace"}, env: map[string]string{"AFX_LOG_LEVEL": "debug"}, want: zerolog.TraceLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Read(tc.flags, env(tc.env))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.LogLevel)
		})
	}
}

func TestReadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Read(flags{"config": filepath.Join(t.TempDir(), "nope.json")}, env(nil))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := config.Read(flags{"log-level": "loud"}, env(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid log level "loud"`)
	})

	t.Run("bad extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.DefaultFile)
		require.NoError(t, config.SaveFile(path, &config.File{Extension: "afx"}))

		_, err := config.Read(flags{"config": path}, env(nil))
		require.Error(t, err)
	})

	t.Run("unknown global type", func(t *testing.T) {
		cfg := &config.Config{Globals: map[string]string{"user": "User"}}
		_, err := cfg.Scope()
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrUnknownType))
		assert.Contains(t, err.Error(), "global user")
	})
}
