package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, rest, err := Load(nil, env(nil))
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultAnalysisTimeout, cfg.AnalysisTimeout)
	assert.Equal(t, DefaultMartName, cfg.DefaultMartName)
	assert.Empty(t, cfg.EnvAPIKey)
}

func TestLoadEnvironment(t *testing.T) {
	cfg, _, err := Load(nil, env(map[string]string{
		"CENIK_DB":       "/tmp/prices.db",
		"CENIK_ADDR":     ":9000",
		"CENIK_MODEL":    "gemini-2.5-pro",
		"GEMINI_API_KEY": "secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prices.db", cfg.DBPath)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, "secret", cfg.EnvAPIKey)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	cfg, rest, err := Load(
		[]string{"-d", "flag.db", "-addr", ":7000", "-t", "5s", "-l", "cenik.log", "key", "-clear"},
		env(map[string]string{"CENIK_DB": "env.db"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DBPath)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.AnalysisTimeout)
	assert.Equal(t, "cenik.log", cfg.LogPath)
	assert.Equal(t, []string{"key", "-clear"}, rest)
}

func TestLoadErrors(t *testing.T) {
	tests := [][]string{
		{"-t", "0s"},
		{"-timeout", "-1m"},
		{"-db", ""},
		{"-unknown"},
	}
	for _, args := range tests {
		_, _, err := Load(args, env(nil))
		assert.Error(t, err, "args %v", args)
	}
}

func TestLoadHelp(t *testing.T) {
	_, _, err := Load([]string{"-h"}, env(nil))
	assert.ErrorIs(t, err, flag.ErrHelp)
}
