package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "github.com/dropDatabas3/partnerdesk/migrations/postgres"
)

func TestParseMigrations(t *testing.T) {
	m := NewMigrator(migrations.FS, migrations.Dir)
	migs, err := m.ParseMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "app_user")

	for i := 1; i < len(migs); i++ {
		assert.Greater(t, migs[i].Version, migs[i-1].Version, "versions must be ordered")
	}
}
