package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("LEDGERLENS_UNSET_FOR_TEST", "fallback"))

	t.Setenv("LEDGERLENS_SET_FOR_TEST", "")
	assert.Equal(t, "", getEnv("LEDGERLENS_SET_FOR_TEST", "fallback"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, splitList(defaultOrigins))
	assert.Nil(t, splitList(" , "))
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost/ledger")
	t.Setenv("UPLOAD_DIR", "/tmp/up")
	t.Setenv("PLOTS_DIR", "/tmp/plots")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RULES_FILE", "rules.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Port:           "9000",
		DatabaseURL:    "postgres://user:pw@localhost/ledger",
		UploadDir:      "/tmp/up",
		PlotsDir:       "/tmp/plots",
		AllowedOrigins: []string{"https://a.example", "https://b.example"},
		RulesFile:      "rules.yaml",
		LogLevel:       "debug",
	}, cfg)
}

func TestLoad_EmptyDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)
}
