package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECEIPT_NUMBER_TEMPLATE", "")
	t.Setenv("PRINT_DISPATCH_RPS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SETTINGS_CACHE_TTL_SECONDS", "60")

	cfg := Load()
	assert.Equal(t, "RECIBO-{SEQ8}", cfg.ReceiptNumberTemplate)
	assert.Equal(t, 2.0, cfg.PrintDispatchRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Minute, cfg.SettingsCacheTTL)
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("X_FLAG", "off")
	assert.False(t, getenvBool("X_FLAG", true))
	t.Setenv("X_FLAG", "garbage")
	assert.True(t, getenvBool("X_FLAG", true))
}

func TestLayoutHolderDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	h, err := NewLayoutHolder(Config{PrintLayoutPath: dir}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), h.Get())
}

func TestLayoutHolderReadsFile(t *testing.T) {
	dir := t.TempDir()
	body := "page:\n  width: 210mm\n  height: 148mm\nfooter:\n  text: Vuelva pronto\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.yml"), []byte(body), 0o644))

	h, err := NewLayoutHolder(Config{PrintLayoutPath: dir}, zap.NewNop())
	require.NoError(t, err)
	got := h.Get()
	assert.Equal(t, "210mm", got.Page.Width)
	assert.Equal(t, "0.25in", got.Page.Margin)
	assert.Equal(t, "Vuelva pronto", got.Footer.Text)
}

func TestValidateLayout(t *testing.T) {
	assert.NoError(t, ValidateLayout(DefaultLayout()))
	bad := DefaultLayout()
	bad.Page.Width = ""
	assert.Error(t, ValidateLayout(bad))
	bad = DefaultLayout()
	bad.PDF.PageNumberPattern = "page"
	assert.Error(t, ValidateLayout(bad))
}
