package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/service"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	cat := catalog.Default()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", catalog.DefaultName, cat)
		require.NoError(t, err)
		assert.Equal(t, "test-session", session.ID)
		require.NotNil(t, session.Engine)
		assert.Equal(t, "test-session", session.Engine.GetState().PlayerID, "player id matches session id")
		assert.Equal(t, catalog.DefaultName, session.CatalogID)
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", catalog.DefaultName, cat)
		require.NoError(t, err)
		assert.Len(t, session.ID, 4)
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", catalog.DefaultName, cat)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", catalog.DefaultName, cat)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("invalid ID", func(t *testing.T) {
		for _, id := range []string{"../escape", "has space", "slash/id"} {
			_, err := manager.Create(id, catalog.DefaultName, cat)
			assert.ErrorIs(t, err, ErrInvalidSessionID, id)
		}
	})

	t.Run("invalid catalog", func(t *testing.T) {
		broken := catalog.Default()
		broken.Name = ""
		_, err := manager.Create("invalid-test", "broken", broken)
		assert.Error(t, err)
		_, err = manager.Create("nil-test", "none", nil)
		assert.Error(t, err)
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, err := manager.Create("get-test", catalog.DefaultName, catalog.Default())
	require.NoError(t, err)

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		require.NoError(t, err)
		assert.Same(t, created, session)
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		_, err := manager.Get("GET-TEST")
		assert.NoError(t, err)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := manager.Get("missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	cat := catalog.Default()

	first, err := manager.GetOrCreate("goc", catalog.DefaultName, cat)
	require.NoError(t, err)
	second, err := manager.GetOrCreate("goc", catalog.DefaultName, cat)
	require.NoError(t, err)
	assert.Same(t, first, second, "GetOrCreate returns the existing session")
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	_, err := manager.Create("delete-test", catalog.DefaultName, catalog.Default())
	require.NoError(t, err)

	require.NoError(t, manager.Delete("DELETE-TEST"))
	_, err = manager.Get("delete-test")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, manager.Delete("delete-test"), ErrSessionNotFound)
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	cat := catalog.Default()

	active, err := manager.Create("active", catalog.DefaultName, cat)
	require.NoError(t, err)
	expired, err := manager.Create("expired", catalog.DefaultName, cat)
	require.NoError(t, err)

	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	assert.Equal(t, 1, manager.CleanupExpiredSessions(time.Hour))
	_, err = manager.Get("expired")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = manager.Get("active")
	assert.NoError(t, err)
	assert.Equal(t, 1, manager.Count())
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, err := manager.Create("access-test", catalog.DefaultName, catalog.Default())
	require.NoError(t, err)
	session.LastAccessedAt = time.Now().Add(-time.Minute)
	before := session.LastAccessedAt

	require.NoError(t, manager.UpdateLastAccessed("access-test"))
	assert.True(t, session.LastAccessedAt.After(before))
	assert.ErrorIs(t, manager.UpdateLastAccessed("missing"), ErrSessionNotFound)
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	cat := catalog.Default()

	session1, err := manager.Create("iso-1", catalog.DefaultName, cat)
	require.NoError(t, err)
	session2, err := manager.Create("iso-2", catalog.DefaultName, cat)
	require.NoError(t, err)

	_, err = session1.Engine.BuyBait("worm")
	require.NoError(t, err)

	assert.Equal(t, 100, session2.Engine.GetState().Coins)
	assert.Nil(t, session2.Engine.GetState().Fishing.Bait)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	cat := catalog.Default()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("conc-%d", n%50)
			if _, err := manager.GetOrCreate(id, catalog.DefaultName, cat); err != nil && err != ErrSessionAlreadyExists {
				errs <- err
			}
			manager.List()
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "concurrent access")
	}
	assert.Equal(t, 50, manager.Count())
}

// Reads through the game service touch LastAccessedAt while other readers
// copy it into SessionInfo. Run with -race.
func TestManager_ConcurrentServiceReads(t *testing.T) {
	svc := service.NewGameService(NewManager(), newCatalogManager(t))
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8*200)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				var err error
				switch (n + j) % 3 {
				case 0:
					_, err = svc.GetSession(ctx, info.ID)
				case 1:
					_, err = svc.GetPlayerState(ctx, info.ID)
				default:
					_, err = svc.ListSessions(ctx)
				}
				if err != nil {
					errs <- err
				}
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "concurrent reads")
	}

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, got.LastAccessedAt.Before(info.LastAccessedAt), "LastAccessedAt never goes backwards")
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	cat := catalog.Default()
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		session, err := manager.Create("", catalog.DefaultName, cat)
		require.NoError(t, err)
		assert.False(t, seen[session.ID], "duplicate session ID %s", session.ID)
		seen[session.ID] = true
		assert.True(t, ValidID(session.ID), session.ID)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"ab12", true},
		{"Player_One-2", true},
		{"", false},
		{"../x", false},
		{"a.b", false},
		{string(make([]byte, 65)), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidID(tt.id), "ValidID(%q)", tt.id)
	}
}
