package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kits-invoicing/pkg/config"
)

func TestLoad_SinCredencialesFalla(t *testing.T) {
	t.Setenv("STORE_CREDENTIALS_JSON", "")
	t.Setenv("SESSION_SECRET", "s3cret")

	_, err := config.Load()

	assert.ErrorIs(t, err, config.ErrMissingStoreCredentials)
}

func TestLoad_SinSecretFalla(t *testing.T) {
	t.Setenv("STORE_CREDENTIALS_JSON", `{"driver":"memory"}`)
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()

	assert.ErrorIs(t, err, config.ErrMissingSessionSecret)
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_CREDENTIALS_JSON", `{"driver":"memory"}`)
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 720, cfg.Session.Expiration)
	assert.Equal(t, "static/company_logo.jpg", cfg.Assets.LogoPath())
	assert.Equal(t, "/static/company_logo.jpg", cfg.Assets.LogoURL())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORE_CREDENTIALS_JSON", `{"driver":"memory"}`)
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_USERNAME", "admin")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "admin", cfg.Auth.Username)
}

func TestParseStoreCredentials(t *testing.T) {
	creds, err := config.ParseStoreCredentials(`{"driver":"POSTGRES","host":"db","password":"p@ss/word"}`)
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, creds.Driver)
	assert.Equal(t, "postgres://postgres:p%40ss%2Fword@db:5432/kits_invoicing?sslmode=disable", creds.DB().ConnectionString())

	creds, err = config.ParseStoreCredentials(`{"driver":"mongo","uri":"mongodb://localhost:27017"}`)
	require.NoError(t, err)
	assert.Equal(t, "kits_invoicing", creds.Database)

	_, err = config.ParseStoreCredentials(`{"driver":"mongo"}`)
	assert.Error(t, err)

	_, err = config.ParseStoreCredentials(`{"driver":"firestore"}`)
	assert.Error(t, err)

	_, err = config.ParseStoreCredentials(`{no json`)
	assert.Error(t, err)
}
