package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erp/stockplanner/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add forecast entries", "add_forecast_entries"},
		{"Add-Forecast-Entries", "add_forecast_entries"},
		{"ADD_RECOMMENDATION_INDEX", "add_recommendation_index"},
		{"add__supplier__lead__time", "add_supplier_lead_time"},
		{"Sales Rollup 2", "sales_rollup_2"},
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
	t.Run("first migration in an empty directory", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add forecast entries", "Daily forecast rows")
		require.NoError(t, err)

		assert.Equal(t, uint(1), mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_add_forecast_entries.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, "000001_add_forecast_entries.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add_forecast_entries")
		assert.Contains(t, string(up), "Daily forecast rows")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "rollback")
	})

	t.Run("continues after the highest existing version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"000001_a.up.sql", "000004_b.up.sql", "000004_b.down.sql", "README.md"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		mf, err := CreateMigration(dir, "next", "")
		require.NoError(t, err)
		assert.Equal(t, uint(5), mf.Version)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := CreateMigration(t.TempDir(), "!!!", "")
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("orders by version and skips non migrations", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000010_late.up.sql", "000002_early.up.sql", "000002_early.down.sql",
			"notes.up.sql", "x_bad.up.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

		got, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []MigrationEntry{{Version: 2, Name: "early"}, {Version: 10, Name: "late"}}, got)
		assert.Equal(t, "000010_late", got[1].String())
	})
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case filepath.Ext(name) != ".sql":
		case len(name) > 7 && name[len(name)-7:] == ".up.sql":
			ups[name[:len(name)-7]] = true
		case len(name) > 9 && name[len(name)-9:] == ".down.sql":
			downs[name[:len(name)-9]] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)

	_, err = embeddedSource(migrations.FS)
	assert.NoError(t, err)
}
