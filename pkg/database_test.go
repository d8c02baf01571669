package evtfilter

import (
	"testing"

	sqlx "github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var mappingSchema = []string{
	`CREATE TABLE ChannelTypes (
		channel INTEGER NOT NULL,
		type    TEXT NOT NULL,
		MinRun  INTEGER NOT NULL,
		MaxRun  INTEGER NOT NULL
	)`,
	`CREATE TABLE ChannelModules (
		channel INTEGER NOT NULL,
		sm      INTEGER NOT NULL,
		mm      INTEGER NOT NULL,
		MinRun  INTEGER NOT NULL,
		MaxRun  INTEGER NOT NULL
	)`,
}

func setupMappingTestDB(t *testing.T) *sqlx.DB {
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a different database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, statement := range mappingSchema {
		db.MustExec(statement)
	}
	inserts := []string{
		"INSERT INTO ChannelTypes VALUES (1, 'TIME', 0, 100)",
		"INSERT INTO ChannelTypes VALUES (1, 'ENERGY', 0, 100)",
		"INSERT INTO ChannelTypes VALUES (2, 'ENERGY', 0, 100)",
		"INSERT INTO ChannelTypes VALUES (2, 'TIME', 101, 200)",
		"INSERT INTO ChannelModules VALUES (1, 0, 3, 0, 200)",
		"INSERT INTO ChannelModules VALUES (2, 0, 4, 0, 100)",
		"INSERT INTO ChannelModules VALUES (2, 1, 4, 101, 200)",
	}
	for _, insert := range inserts {
		db.MustExec(insert)
	}
	return db
}

func TestLoadMappingFromDB(t *testing.T) {
	db := setupMappingTestDB(t)

	mapping, err := LoadMappingFromDB(db, 50)
	require.NoError(t, err)
	require.Len(t, mapping.ChannelTypes, 2)
	assert.ElementsMatch(t, []ChannelType{TIME, ENERGY}, mapping.ChannelTypes[1])
	assert.Equal(t, []ChannelType{ENERGY}, mapping.ChannelTypes[2])
	assert.Equal(t, ModuleMap[ModuleID]{1: {SM: 0, MM: 3}, 2: {SM: 0, MM: 4}}, mapping.Modules)

	mapping, err = LoadMappingFromDB(db, 150)
	require.NoError(t, err)
	assert.Equal(t, ChannelTypeMap{2: {TIME}}, mapping.ChannelTypes)
	assert.Equal(t, ModuleMap[ModuleID]{1: {SM: 0, MM: 3}, 2: {SM: 1, MM: 4}}, mapping.Modules)
}

func TestLoadMappingFromDBUnknownType(t *testing.T) {
	db := setupMappingTestDB(t)
	db.MustExec("INSERT INTO ChannelTypes VALUES (3, 'CHARGE', 0, 100)")

	_, err := LoadMappingFromDB(db, 50)
	assert.ErrorContains(t, err, "unknown channel type")
}

func TestLoadMappingFromDBMissingTable(t *testing.T) {
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	_, err = LoadMappingFromDB(db, 1)
	var queryErr *ErrQueryDatabase
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "ChannelTypes", queryErr.TableName)
}

func TestConnectToDatabaseSqlite(t *testing.T) {
	db, err := ConnectToDatabase("sqlite", "", "", "", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, "sqlite", db.DriverName())

	_, err = ConnectToDatabase("postgres", "", "", "", "")
	assert.Error(t, err)
}
