package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gallery", cfg.Media.GalleryFolder)
	assert.Equal(t, "stories", cfg.Media.TributeFolder)
	assert.Equal(t, 500, cfg.Media.GalleryPageSize)
	assert.Equal(t, 100, cfg.Media.TributePageSize)
	assert.Equal(t, int64(100*1024*1024), cfg.Media.MaxUploadBytes)
	assert.False(t, cfg.Ledger.Enabled)
	assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTokenTTL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MEMORIAL_GALLERY_FOLDER", "/photos/")
	t.Setenv("MEMORIAL_DELIVERY_BASE_URL", "https://cdn.example.org/media/")
	t.Setenv("MEMORIAL_LEDGER_ENABLED", "yes")
	t.Setenv("MEMORIAL_AUTH_BCRYPT_COST", "99")
	t.Setenv("MEMORIAL_OPERATOR_EMAIL", "Keeper@Example.com")
	t.Setenv("MEMORIAL_API_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "photos", cfg.Media.GalleryFolder)
	assert.Equal(t, "https://cdn.example.org/media", cfg.Media.DeliveryBaseURL)
	assert.True(t, cfg.Ledger.Enabled)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "keeper@example.com", cfg.Auth.OperatorEmail)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address())
}

func TestLoadRejectsInvalidMediaSettings(t *testing.T) {
	cases := map[string][2]string{
		"relative delivery url": {"MEMORIAL_DELIVERY_BASE_URL", "cdn.example.org"},
		"same folders":          {"MEMORIAL_TRIBUTE_FOLDER", "gallery"},
		"zero page size":        {"MEMORIAL_GALLERY_PAGE_SIZE", "0"},
		"zero upload cap":       {"MEMORIAL_MAX_UPLOAD_BYTES", "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPostgresDSNEscapesCredentials(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", Database: "memorial", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/memorial?sslmode=disable", p.DSN())
}
