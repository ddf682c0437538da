package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"paddock-backend/shared/database"
	"paddock-backend/shared/database/models"
)

// newTestDB opens a per-test in-memory sqlite database with the full
// schema, including the partial unique indexes that back the "one
// pending row" invariants.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, model := range database.ModelsToMigrate() {
		require.NoError(t, db.AutoMigrate(model))
	}
	require.NoError(t, database.CreatePartialIndexes(db))

	return db
}

func createProfile(t *testing.T, db *gorm.DB, email string) *models.Profile {
	t.Helper()

	profile := models.Profile{
		Email:     email,
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&profile).Error)
	return &profile
}

func createOrgRow(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()

	org := models.Organization{Name: name}
	require.NoError(t, db.Create(&org).Error)
	return &org
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

func newUUID() uuid.UUID {
	return uuid.New()
}
