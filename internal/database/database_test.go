package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_RunsMigrations(t *testing.T) {

	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	if teardown != nil {
		defer teardown()
	} else {
		defer db.Close()
	}

	// Check if the 'players' table was created
	var playersTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='players'").Scan(&playersTableName)
	require.NoError(t, err, "Querying for players table should not produce an error")
	assert.Equal(t, "players", playersTableName, "The 'players' table should be created")

	// Check if the 'matches' table was created
	var matchesTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='matches'").Scan(&matchesTableName)
	require.NoError(t, err, "Querying for matches table should not produce an error")
	assert.Equal(t, "matches", matchesTableName, "The 'matches' table should be created")

	// Migrations are tracked so a second init is a no-op.
	var version int
	err = db.QueryRow("SELECT COUNT(*) FROM goose_db_version").Scan(&version)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, 3)
}
