package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"editorial/internal/http-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated SQLite database in a temp dir.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{FullName: name, Email: email, PasswordHash: "hash", Role: role}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createManuscript(t *testing.T, db *gorm.DB, authorID int64, title string, status models.ManuscriptStatus) *models.Manuscript {
	t.Helper()
	m := &models.Manuscript{Title: title, FilePath: "manuscripts/" + title + ".pdf", Status: status, AuthorID: authorID}
	require.NoError(t, NewManuscriptRepository(db).Create(context.Background(), m))
	return m
}

func createPublication(t *testing.T, db *gorm.DB, title string, date string) *models.Publication {
	t.Helper()
	p := &models.Publication{Type: "journal", Title: title}
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		p.PubDate = &d
	}
	require.NoError(t, NewPublicationRepository(db).Create(context.Background(), p))
	return p
}
