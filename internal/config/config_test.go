package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/mathanmathan27/aarvel-store/internal/config"
	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "mypassword")
	t.Setenv("EXPECTED_TXN_ID", "ABC123XYZ")
	t.Setenv("OPERATOR_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("JWT_SECRET", "mysecret")
}

func TestMustLoadByPath_Success(t *testing.T) {
	setRequiredEnv(t)

	content := `
env: "local"
http_server:
  address: "localhost:8080"
  timeout: "4s"
  idle_timeout: "60s"
database:
  host: "localhost"
  port: 5432
  user: "postgres"
  name: "store"
product:
  name: "Aarvel Ghee"
status_log:
  path: "./upi_status.log"
uploads:
  dir: "./uploads"
operator:
  username: "operator"
  token_ttl: 60
migrations:
  path: "./migrations"
`
	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	err = tmpFile.Close()
	assert.NoError(t, err)

	cfg := config.MustLoadByPath(tmpFile.Name())

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "store", cfg.Database.Name)
	assert.Equal(t, "Aarvel Ghee", cfg.Product.Name)
	assert.Equal(t, "./upi_status.log", cfg.StatusLog.Path)
	assert.Equal(t, "./uploads", cfg.Uploads.Dir)
	assert.Equal(t, "ABC123XYZ", cfg.Payment.ExpectedTxnID)
	assert.Equal(t, "operator", cfg.Operator.Username)
	assert.Equal(t, 60, cfg.Operator.TokenTTL)
	assert.Equal(t, "./migrations", cfg.Migrations.Path)
}

// The migrator loads the same config but only needs the database section;
// the server-only secrets must not block it.
func TestMustLoadByPath_ServerSecretsOptional(t *testing.T) {
	t.Setenv("DB_PASSWORD", "mypassword")
	// t.Setenv registers the restore; the vars must be absent for the load
	t.Setenv("EXPECTED_TXN_ID", "")
	os.Unsetenv("EXPECTED_TXN_ID")
	t.Setenv("OPERATOR_PASSWORD_HASH", "")
	os.Unsetenv("OPERATOR_PASSWORD_HASH")

	content := `
env: "local"
database:
  host: "localhost"
  port: 5432
  user: "postgres"
  name: "store"
migrations:
  path: "./migrations"
`
	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	assert.NoError(t, tmpFile.Close())

	var cfg *config.Config
	assert.NotPanics(t, func() {
		cfg = config.MustLoadByPath(tmpFile.Name())
	})
	assert.Empty(t, cfg.Payment.ExpectedTxnID)
	assert.Empty(t, cfg.Operator.PasswordHash)
	assert.Equal(t, "postgres", cfg.Database.User)
}

func TestMustLoadByPath_FileNotFound(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadByPath("non_existent_config.yaml")
	})
}
