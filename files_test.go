package starter_test

import (
	"io/fs"
	"strings"
	"testing"

	starter "github.com/goliatone/go-auth-starter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFSCarriesEveryDialect(t *testing.T) {
	root, err := fs.Sub(starter.GetMigrationsFS(), "data/sql/migrations")
	require.NoError(t, err)

	for _, dialect := range []string{"sqlite", "postgres"} {
		t.Run(dialect, func(t *testing.T) {
			entries, err := fs.ReadDir(root, dialect)
			require.NoError(t, err)
			require.NotEmpty(t, entries, "dialect directory must hold at least one migration")

			for _, entry := range entries {
				assert.True(t, strings.HasSuffix(entry.Name(), ".up.sql"),
					"unexpected migration file %q", entry.Name())

				content, err := fs.ReadFile(root, dialect+"/"+entry.Name())
				require.NoError(t, err)
				assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS users")
			}
		})
	}
}
