package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecognizesAliases(t *testing.T) {
	cases := map[string]Name{
		"mysql":      MySQL,
		"MySQL":      MySQL,
		"  mysql  ":  MySQL,
		"mariadb":    MariaDB,
		"postgres":   PostgreSQL,
		"postgresql": PostgreSQL,
		"pgsql":      PostgreSQL,
		"sqlite":     SQLite,
		"sqlite3":    SQLite,
	}
	for raw, want := range cases {
		got, err := Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseRejectsUnknownDialect(t *testing.T) {
	_, err := Parse("oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestDefaultVersionPerFamily(t *testing.T) {
	assert.Equal(t, "8.0", DefaultVersion(MySQL))
	assert.Equal(t, "8.0", DefaultVersion(MariaDB))
	assert.Equal(t, "16", DefaultVersion(PostgreSQL))
	assert.Equal(t, "3.45", DefaultVersion(SQLite))
}

func TestRecognizedVersionsNonEmptyForEachFamily(t *testing.T) {
	for _, n := range []Name{MySQL, MariaDB, PostgreSQL, SQLite} {
		assert.NotEmpty(t, RecognizedVersions(n), string(n))
	}
}
