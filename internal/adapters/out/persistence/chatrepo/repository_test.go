package chatrepo_test

import (
	"context"
	"testing"
	"time"

	"crowddelivery/internal/adapters/out/persistence/chatrepo"
	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormChatRepository_Add(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := chatrepo.NewGormChatRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var last int64
	for i, kind := range []chat.Kind{chat.Text, chat.Photo, chat.Voice} {
		text, url := "on my way", ""
		if kind.IsMedia() {
			text, url = "", "https://cdn.example.com/m/1"
		}
		msg, err := chat.NewMessage(5, 11, kind, text, url, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)

		stored, err := repo.Add(ctx, msg)
		require.NoError(t, err)
		assert.Greater(t, stored.ID(), last, "ids must increase")
		assert.Equal(t, kind, stored.Kind())
		last = stored.ID()
	}

	var rows []chatrepo.MessageDTO
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, "text", rows[0].Kind)
	assert.Equal(t, "https://cdn.example.com/m/1", rows[1].URL)
}

func TestGormChatRepository_Add_NotConstructed(t *testing.T) {
	repo := chatrepo.NewGormChatRepository(testutil.NewSQLiteDB(t))

	_, err := repo.Add(context.Background(), &chat.Message{})
	assert.ErrorIs(t, err, chat.ErrMessageIsNotConstructed)
}
