package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func TestProfileSchemaParses(t *testing.T) {
	parsed, err := schema.Parse(&Profile{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := parsed.LookUpField("Challenges")
	require.NotNil(t, field)
	// The list must resolve to a column, not get mistaken for a relation
	assert.Equal(t, schema.DataType("text"), field.DataType)
	assert.Empty(t, parsed.Relationships.HasMany)
}

func TestChallengeListValueNeverNil(t *testing.T) {
	var challenges ChallengeList

	value, err := challenges.Value()
	require.NoError(t, err)
	assert.NotNil(t, value)
}

func TestProfileMigratesAndRoundTrips(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Profile{}))

	row := Profile{
		ID:          "11111111-1111-1111-1111-111111111111",
		DisplayName: "Ann Lee",
		Challenges:  ChallengeList{"first-login", "streak-7"},
	}
	require.NoError(t, db.Create(&row).Error)

	var fetched Profile
	require.NoError(t, db.First(&fetched, "id = ?", row.ID).Error)
	assert.Equal(t, "Ann Lee", fetched.DisplayName)
	assert.Equal(t, ChallengeList{"first-login", "streak-7"}, fetched.Challenges)

	// A row that never touched the list still round-trips
	bare := Profile{
		ID:          "22222222-2222-2222-2222-222222222222",
		DisplayName: "Bo",
	}
	require.NoError(t, db.Create(&bare).Error)
	var fetchedBare Profile
	require.NoError(t, db.First(&fetchedBare, "id = ?", bare.ID).Error)
	assert.Empty(t, fetchedBare.Challenges)
}
