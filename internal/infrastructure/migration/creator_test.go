package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add visas table", "add_visas_table"},
		{"Add-Visas-Table", "add_visas_table"},
		{"ADD_VISAS_TABLE", "add_visas_table"},
		{"add__visas__table", "add_visas_table"},
		{"Add Rates 123", "add_rates_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	t.Run("first migration is 000001", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add cargo zones", "Zones per branch")
		require.NoError(t, err)
		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_add_cargo_zones.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, "000001_add_cargo_zones.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "-- Migration: add cargo zones")
		assert.Contains(t, string(up), "-- Description: Zones per branch")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "(Rollback)")
	})

	t.Run("numbers one past the highest version", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_init.up.sql"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_rates.up.sql"), nil, 0o644))

		mf, err := CreateMigration(dir, "visa fees", "")
		require.NoError(t, err)
		assert.Equal(t, "000008", mf.Version)
		assert.True(t, strings.HasSuffix(mf.UpPath, "000008_visa_fees.up.sql"))
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(dir, "init", "")
		require.NoError(t, err)

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("orders by numeric version and skips noise", func(t *testing.T) {
		fsys := fstest.MapFS{
			"000010_late.up.sql":   {},
			"000010_late.down.sql": {},
			"000002_mid.up.sql":    {},
			"000001_init.up.sql":   {},
			"README.md":            {},
			"notes.up.sql":         {},
			"sub/000003_x.up.sql":  {},
		}

		got, err := ListMigrations(fsys)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init", "000002_mid", "000010_late"}, got)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		got, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("embedded schema has paired files", func(t *testing.T) {
		got, err := ListMigrations(migrations.FS)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "000001_init", got[0])

		for _, base := range got {
			_, err := migrations.FS.ReadFile(base + ".down.sql")
			assert.NoError(t, err, base)
		}
	})
}
