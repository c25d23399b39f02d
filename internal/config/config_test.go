package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "EGP", cfg.Books.Currency)
	assert.Equal(t, 10, cfg.Books.LowStockThreshold)
	assert.True(t, cfg.Books.SeedProducts)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Empty(t, cfg.Carrier.URL)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("BOOKS_CURRENCY", "usd")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Books.LowStockThreshold)
	assert.Equal(t, "USD", cfg.Books.Currency)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "books.env")
	require.NoError(t, os.WriteFile(path, []byte("CARRIER_URL=http://carrier.test/hook\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CARRIER_URL") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://carrier.test/hook", cfg.Carrier.URL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load("")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", Name: "books", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=books port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}

func TestLoadPrinterAndEmail(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRINTER_TYPE", "Network")
	t.Setenv("PRINTER_ADDRESS", "10.0.0.5:9100")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("DIGEST_RECIPIENTS", "owner@example.com, accountant@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "network", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, []string{"owner@example.com", "accountant@example.com"}, cfg.Email.DigestTo)
	assert.True(t, cfg.Email.Enabled())
}

func TestLoadRejectsUnknownPrinter(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PRINTER_TYPE", "bluetooth")

	_, err := Load("")
	assert.Error(t, err)
}

// chdir switches the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
