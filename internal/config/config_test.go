package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAIL_TIMEOUT", "CART_BACKEND", "KAFKA_BROKERS", "SMTP_PORT"} {
		t.Setenv(k, "")
	}

	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, BackendMemory, cfg.CartBackend)
	assert.Equal(t, BackendStatic, cfg.CatalogBackend)
	assert.Nil(t, cfg.KafkaBrokers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MAIL_TIMEOUT", "2s")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CART_BACKEND", BackendRedis)

	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, BackendRedis, cfg.CartBackend)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "abc")
	t.Setenv("MAIL_TIMEOUT", "soon")

	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 30*time.Second, cfg.Mail.Timeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv("RECIPIENT_EMAIL", "")
	os.Unsetenv("RECIPIENT_EMAIL")
	t.Setenv("EMAIL_USER", "shop@example.com")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RECIPIENT_EMAIL=orders@example.com\nEMAIL_USER=ignored@example.com\n"), 0o600))

	cfg := Load(path)

	assert.Equal(t, "orders@example.com", cfg.Mail.Recipient)
	// the real environment wins over the file
	assert.Equal(t, "shop@example.com", cfg.Mail.User)
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "absent.env"))
	cfg.CartBackend = "etcd"
	assert.ErrorContains(t, cfg.Validate(), "CART_BACKEND")

	cfg = Load(filepath.Join(t.TempDir(), "absent.env"))
	cfg.Mail.Backend = "pigeon"
	assert.ErrorContains(t, cfg.Validate(), "MAIL_BACKEND")
}

func TestMissingMailSettings(t *testing.T) {
	cfg := Config{Mail: MailConfig{User: "u"}}
	assert.Equal(t, []string{"EMAIL_PASS", "RECIPIENT_EMAIL"}, cfg.MissingMailSettings())
}
