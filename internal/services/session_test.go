package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noralabs/nora-backend/internal/models"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client), mr
}

func TestLoadSessionMissingReturnsFresh(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	session, err := store.LoadSession(ctx, "5511999990000")
	require.NoError(t, err)
	assert.Empty(t, session.History)
	assert.Empty(t, session.CapturedDate)
	assert.Empty(t, session.CapturedTime)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()
	phone := "5511999990000"

	session, err := store.LoadSession(ctx, phone)
	require.NoError(t, err)
	session.Append(models.RoleUser, "quero agendar")
	session.Append(models.RoleAssistant, "claro!")
	session.CapturedDate = "2025-07-01"
	session.CapturedTime = "09:00"
	require.NoError(t, store.SaveSession(ctx, phone, session))

	loaded, err := store.LoadSession(ctx, phone)
	require.NoError(t, err)
	require.Len(t, loaded.History, 2)
	assert.Equal(t, models.RoleUser, loaded.History[0].Role)
	assert.Equal(t, "quero agendar", loaded.History[0].Content)
	assert.Equal(t, "claro!", loaded.History[1].Content)
	assert.Equal(t, "2025-07-01", loaded.CapturedDate)
	assert.Equal(t, "09:00", loaded.CapturedTime)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()
	phone := "5511999990000"

	require.NoError(t, store.AppendMessage(ctx, phone, models.RoleUser, "oi"))

	mr.FastForward(SessionTTL + time.Minute)

	session, err := store.LoadSession(ctx, phone)
	require.NoError(t, err)
	assert.Empty(t, session.History, "expired session must come back fresh")
}

func TestSaveSlidesTTL(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()
	phone := "5511999990000"

	require.NoError(t, store.AppendMessage(ctx, phone, models.RoleUser, "oi"))

	// A save near the end of the window must reset the countdown
	mr.FastForward(SessionTTL - time.Minute)
	require.NoError(t, store.AppendMessage(ctx, phone, models.RoleUser, "ainda aqui"))

	mr.FastForward(30 * time.Minute)
	session, err := store.LoadSession(ctx, phone)
	require.NoError(t, err)
	assert.Len(t, session.History, 2)
}

func TestAppendMessagePreservesOrder(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()
	phone := "5511999990000"

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendMessage(ctx, phone, models.RoleUser, fmt.Sprintf("msg %d", i)))
	}

	session, err := store.LoadSession(ctx, phone)
	require.NoError(t, err)
	require.Len(t, session.History, 5)
	for i, msg := range session.History {
		assert.Equal(t, fmt.Sprintf("msg %d", i), msg.Content)
	}
}

func TestClearSessionIsIdempotent(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()
	phone := "5511999990000"

	require.NoError(t, store.AppendMessage(ctx, phone, models.RoleUser, "oi"))
	require.NoError(t, store.ClearSession(ctx, phone))
	require.NoError(t, store.ClearSession(ctx, phone), "clearing an absent session is a no-op")

	session, err := store.LoadSession(ctx, phone)
	require.NoError(t, err)
	assert.Empty(t, session.History)
}

func TestRecentHistoryCapsContext(t *testing.T) {
	session := &models.Session{}
	for i := 0; i < 25; i++ {
		session.Append(models.RoleUser, fmt.Sprintf("msg %d", i))
	}

	recent := RecentHistory(session, RecentHistoryLimit)
	require.Len(t, recent, 10)
	assert.Equal(t, "msg 15", recent[0].Content)
	assert.Equal(t, "msg 24", recent[9].Content)

	// Full history is retained on the session itself
	assert.Len(t, session.History, 25)

	short := &models.Session{}
	short.Append(models.RoleUser, "oi")
	assert.Len(t, RecentHistory(short, RecentHistoryLimit), 1)
}
