package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the same error
// translation the production postgres connection uses, so unique-constraint
// behavior is exercised for real.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection keeps the in-memory database alive across queries
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Asset{},
		&model.Tag{},
		&model.AssetTag{},
		&model.Project{},
		&model.ProjectAsset{},
		&model.UnityRoute{},
		&model.RouteHistory{},
		&model.StyleMigration{},
	))
	return db
}

func makeAsset(name, digest string) *model.Asset {
	return &model.Asset{
		ID:            uuid.New(),
		Name:          name,
		FilePath:      "/mnt/art/" + name + ".png",
		FileType:      "png",
		SizeB:         1024,
		ContentDigest: digest,
	}
}
