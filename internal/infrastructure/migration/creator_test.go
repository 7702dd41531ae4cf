package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"create carts table":     "create_carts_table",
		"Add-Order-Lines":        "add_order_lines",
		"ADD__IDEMPOTENCY_KEY":   "add_idempotency_key",
		"   spaces   ":           "spaces",
		"special!@#$chars":       "specialchars",
		"_leading and trailing_": "leading_and_trailing",
		"v2 tiers":               "v2_tiers",
		"":                       "",
	}
	for input, want := range tests {
		assert.Equal(t, want, sanitizeName(input), input)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	mf, err := createMigrationAt(dir, "add parcel index", "Index parcel lines", now)
	require.NoError(t, err)

	assert.Equal(t, "20260314092653", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20260314092653_add_parcel_index.up.sql"), mf.UpPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add parcel index")
	assert.Contains(t, string(up), "-- Description: Index parcel lines")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")

	// same second, same name: refuses to clobber
	_, err = createMigrationAt(dir, "add parcel index", "", now)
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_orders.up.sql", "000002_orders.down.sql",
		"000001_carts.up.sql", "000001_carts.down.sql",
		"README.md", ".up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

	got, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_carts", "000002_orders"}, got)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	got, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
