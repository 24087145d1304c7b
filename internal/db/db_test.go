package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.Error(t, err)
}

func TestMigrate_SQLite(t *testing.T) {
	gormDB, err := Open("sqlite", ":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB, false))
	for _, m := range model.AllModels() {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}

	require.NoError(t, gormDB.Create(&model.User{Name: "Baker", Email: "baker@example.com", PasswordHash: "x"}).Error)

	require.NoError(t, Migrate(gormDB, true))
	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
