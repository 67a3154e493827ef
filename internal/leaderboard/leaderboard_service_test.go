package leaderboard

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/events"
	"dashboard-service/internal/realtime"
	"dashboard-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, user.UserRepository) {
	t.Helper()
	users := user.NewUserRepository()
	emitter := events.NewEmitter(realtime.NewHub(time.Hour, nil), nil, nil)
	return NewService(users, emitter, nil), users
}

func seedUser(t *testing.T, users user.UserRepository, id string, weeklyXP, xp int64) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &user.User{
		ID:       id,
		Username: id,
		Email:    id + "@example.com",
		WeeklyXP: weeklyXP,
		XP:       xp,
		Level:    1,
	}))
}

func TestGetLeaderboardOrdersByWeeklyXP(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "bronze", 10, 500)
	seedUser(t, users, "gold", 300, 300)
	seedUser(t, users, "silver", 150, 900)

	entries, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "gold", entries[0].UserID)
	assert.Equal(t, "silver", entries[1].UserID)
	assert.Equal(t, "bronze", entries[2].UserID)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestGetLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "first", 100, 0)
	seedUser(t, users, "second", 100, 0)
	seedUser(t, users, "third", 100, 0)

	entries, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "first", entries[0].UserID)
	assert.Equal(t, "second", entries[1].UserID)
	assert.Equal(t, "third", entries[2].UserID)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	entries, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResetWeeklyXPZeroesCountersOnly(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "gold", 300, 450)
	seedUser(t, users, "silver", 150, 900)

	require.NoError(t, svc.ResetWeeklyXP(context.Background()))

	for _, id := range []string{"gold", "silver"} {
		u, err := users.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Zero(t, u.WeeklyXP)
	}

	// Lifetime XP survives the reset.
	u, err := users.FindByID(context.Background(), "silver")
	require.NoError(t, err)
	assert.Equal(t, int64(900), u.XP)
}

func TestSnapshotWrapsEntries(t *testing.T) {
	svc, users := newTestService(t)
	seedUser(t, users, "gold", 300, 450)

	msg, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, realtime.MessageTypeLeaderboardUpdate, msg.Type)

	entries, ok := msg.Data.([]Entry)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "gold", entries[0].UserID)
}
