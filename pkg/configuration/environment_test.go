package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("METERDESK_TEST_ENV_LOAD=ok\n"), 0o644))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	_ = os.Unsetenv("METERDESK_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("METERDESK_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()
	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestReportOptions_Load(t *testing.T) {
	opts := &ReportOptions{Timezone: "UTC", Locale: "en"}
	require.NoError(t, opts.load())
	require.Equal(t, time.UTC, opts.Location())
	require.Equal(t, "en", opts.LanguageTag().String())

	bad := &ReportOptions{Timezone: "Not/AZone", Locale: "en"}
	require.Error(t, bad.load())

	badLocale := &ReportOptions{Timezone: "UTC", Locale: "???"}
	require.Error(t, badLocale.load())
}
