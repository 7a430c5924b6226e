package repository

import (
	"context"
	"testing"
	"time"

	"editorial/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMessageRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewMessageRepository(db)

	sender := createUser(t, db, "Ann", "ann@example.com", models.RoleAuthor)
	guest := "guest@example.com"
	now := time.Now().UTC()

	older := &models.Message{SenderEmail: &guest, Subject: "Old", Body: "b", SentAt: now.Add(-time.Hour), Status: models.MessageNew}
	newer := &models.Message{SenderID: &sender.ID, Subject: "New", Body: "b", SentAt: now, Status: models.MessageNew}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	require.NotNil(t, list[0].Sender)
	assert.Equal(t, "Ann", list[0].Sender.FullName)
	assert.Nil(t, list[1].Sender)

	require.NoError(t, repo.SetStatus(ctx, older.ID, models.MessageDone))
	require.NoError(t, repo.MarkRead(ctx, newer.ID))

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageDone, got.Status)
	assert.True(t, got.IsRead)

	done, err := repo.CountByStatus(ctx, models.MessageDone)
	require.NoError(t, err)
	assert.Equal(t, int64(1), done)

	unread, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
