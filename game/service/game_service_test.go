package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
	"github.com/wricardo/critter-catch/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	now      time.Time
	saves    int
	saveErr  error
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *MockSessionManager) clock() time.Time { return m.now }

func (m *MockSessionManager) Create(id, catalogID string, cat *catalog.Catalog) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(cat, id, engine.WithClock(m.clock), engine.WithRoller(engine.NewRoller(7)))
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Catalog:        cat,
		CatalogID:      catalogID,
		CreatedAt:      m.now,
		LastAccessedAt: m.now,
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id, catalogID string, cat *catalog.Catalog) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, catalogID, cat)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = m.now
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	m.saves++
	return m.saveErr
}

func (m *MockSessionManager) CleanupExpiredSessions(maxAge time.Duration) int {
	removed := 0
	for id, session := range m.sessions {
		if m.now.Sub(session.LastAccessedAt) > maxAge {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// MockCatalogManager implements service.CatalogManager for testing
type MockCatalogManager struct {
	catalogs map[string]*catalog.Catalog
}

func NewMockCatalogManager() *MockCatalogManager {
	rich := catalog.Default()
	rich.Name = "rich"
	rich.Fishing.StartingCoins = 10000

	return &MockCatalogManager{
		catalogs: map[string]*catalog.Catalog{
			catalog.DefaultName: catalog.Default(),
			"rich":              rich,
		},
	}
}

func (m *MockCatalogManager) LoadCatalog(name string) (*catalog.Catalog, error) {
	cat, ok := m.catalogs[name]
	if !ok {
		return nil, service.ErrCatalogNotFound
	}
	return cat, nil
}

func (m *MockCatalogManager) ListCatalogs() ([]*service.CatalogInfo, error) {
	return []*service.CatalogInfo{
		{CatalogID: catalog.DefaultName, Name: catalog.DefaultName, Format: "builtin"},
		{CatalogID: "rich", Name: "rich", Format: "json"},
	}, nil
}

func (m *MockCatalogManager) GetDefault() *catalog.Catalog { return m.catalogs[catalog.DefaultName] }

func (m *MockCatalogManager) DefaultID() string { return catalog.DefaultName }

func (m *MockCatalogManager) SaveCatalog(name string, cat *catalog.Catalog) error {
	if err := catalog.Validate(cat); err != nil {
		return err
	}
	m.catalogs[name] = cat
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager, string) {
	t.Helper()
	sessions := NewMockSessionManager()
	svc := service.NewGameService(sessions, NewMockCatalogManager())
	info, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)
	return svc, sessions, info.ID
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockCatalogManager())

	t.Run("default catalog", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, catalog.DefaultName, info.CatalogID)
		assert.Equal(t, 100, info.PlayerState.Coins)
		assert.Equal(t, info.ID, info.PlayerState.PlayerID)
	})

	t.Run("named catalog", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "rich")
		require.NoError(t, err)
		assert.Equal(t, "rich", info.CatalogID)
		assert.Equal(t, 10000, info.PlayerState.Coins)
	})

	t.Run("unknown catalog suggests a close match", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "ricj")
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrCatalogNotFound))
		assert.Contains(t, err.Error(), "Did you mean 'rich'?")
	})
}

func TestGameService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.GetSession(ctx, "nope")
	assert.Error(t, err)
	_, err = svc.Cast(ctx, "nope", "pond")
	assert.Error(t, err)
	_, err = svc.GetHistory(ctx, "nope", service.HistoryOptions{})
	assert.Error(t, err)
	_, err = svc.CanStart(ctx, "nope", engine.FishingTarget{LocationID: "pond"})
	assert.Error(t, err)
}

func TestGameService_FishingLoop(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)

	cast, err := svc.Cast(ctx, id, "pond")
	require.NoError(t, err)
	require.True(t, cast.Success, cast.Message)
	assert.Equal(t, "cast", cast.Action)
	require.NotNil(t, cast.Cast)
	assert.Equal(t, "pond", cast.Cast.LocationID)
	assert.True(t, cast.State.Fishing.Active)

	again, err := svc.Cast(ctx, id, "pond")
	require.NoError(t, err)
	assert.False(t, again.Success)
	assert.Equal(t, engine.CodeAlreadyActive, again.Code)
	assert.NotEmpty(t, again.Message)

	reel, err := svc.Reel(ctx, id)
	require.NoError(t, err)
	require.True(t, reel.Success, reel.Message)
	require.NotNil(t, reel.Catch)
	assert.True(t, reel.Catch.IsNewDiscovery)
	assert.Equal(t, 1, reel.State.Fishing.Inventory.Len())

	var types []string
	for _, ev := range reel.Events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, "catch")
	assert.Contains(t, types, "discovery")
	assert.NotContains(t, types, "personal_record")

	sale, err := svc.SellFish(ctx, id, 0)
	require.NoError(t, err)
	require.True(t, sale.Success, sale.Message)
	assert.Equal(t, 100+sale.Sale.Price, sale.State.Coins)

	missing, err := svc.SellFish(ctx, id, 3)
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Equal(t, engine.CodeIndexOutOfRange, missing.Code)

	assert.Equal(t, 3, sessions.saves, "only successful actions are persisted")
}

func TestGameService_ReelWithoutCast(t *testing.T) {
	svc, _, id := newTestService(t)

	result, err := svc.Reel(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, engine.CodeNotFishing, result.Code)
	assert.Equal(t, "reel", result.Action)
	require.NotNil(t, result.State)
}

func TestGameService_AbandonFishing(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	result, err := svc.AbandonFishing(ctx, id)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, engine.CodeNotFishing, result.Code)

	_, err = svc.Cast(ctx, id, "pond")
	require.NoError(t, err)
	result, err = svc.AbandonFishing(ctx, id)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.State.Fishing.Active)
}

func TestGameService_EggLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)

	bought, err := svc.BuyEgg(ctx, id, "basic_egg")
	require.NoError(t, err)
	require.True(t, bought.Success, bought.Message)
	require.NotNil(t, bought.Egg)
	assert.Equal(t, 0, bought.State.Coins)

	broke, err := svc.BuyEgg(ctx, id, "basic_egg")
	require.NoError(t, err)
	assert.False(t, broke.Success)
	assert.Equal(t, engine.CodeInsufficientFunds, broke.Code)

	early, err := svc.Hatch(ctx, id, bought.Egg.ID)
	require.NoError(t, err)
	assert.False(t, early.Success)
	assert.Equal(t, engine.CodeNotReady, early.Code)

	sessions.now = sessions.now.Add(time.Minute)
	hatched, err := svc.Hatch(ctx, id, bought.Egg.ID)
	require.NoError(t, err)
	require.True(t, hatched.Success, hatched.Message)
	require.NotNil(t, hatched.Hatch)
	assert.Len(t, hatched.State.Pets.Inventory.Items(), 1)
	assert.Empty(t, hatched.State.Pets.Incubators.Items())

	petID := hatched.Hatch.Pet.ID

	equip, err := svc.Equip(ctx, id, petID)
	require.NoError(t, err)
	assert.True(t, equip.Success, equip.Message)

	lock, err := svc.SetPetLocked(ctx, id, petID, true)
	require.NoError(t, err)
	assert.True(t, lock.Success)
	assert.Equal(t, "lock", lock.Action)

	release, err := svc.ReleasePet(ctx, id, petID)
	require.NoError(t, err)
	assert.False(t, release.Success)
	assert.Equal(t, engine.CodePetLocked, release.Code)

	_, err = svc.SetPetLocked(ctx, id, petID, false)
	require.NoError(t, err)
	release, err = svc.ReleasePet(ctx, id, petID)
	require.NoError(t, err)
	assert.True(t, release.Success, release.Message)
	require.NotNil(t, release.Pet)
	assert.Equal(t, petID, release.Pet.ID)

	collection, err := svc.GetCollection(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, collection.Pets.Discovered, "released pets stay discovered")
}

func TestGameService_Shop(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	svc := service.NewGameService(sessions, NewMockCatalogManager())
	info, err := svc.CreateSession(ctx, "rich")
	require.NoError(t, err)

	rod, err := svc.BuyRod(ctx, info.ID, "fiberglass_rod")
	require.NoError(t, err)
	assert.False(t, rod.Success)
	assert.Equal(t, engine.CodeLevelTooLow, rod.Code)

	bait, err := svc.BuyBait(ctx, info.ID, "worm")
	require.NoError(t, err)
	require.True(t, bait.Success, bait.Message)
	assert.Equal(t, 10000-10, bait.State.Coins)
	require.NotNil(t, bait.State.Fishing.Bait)
	assert.Equal(t, 10, bait.State.Fishing.Bait.UsesLeft)

	unknown, err := svc.BuyBait(ctx, info.ID, "wurm")
	require.NoError(t, err)
	assert.False(t, unknown.Success)
	assert.Equal(t, engine.CodeNotFound, unknown.Code)
	assert.Contains(t, unknown.Message, "worm")
}

func TestGameService_CanStart(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	check, err := svc.CanStart(ctx, id, engine.FishingTarget{LocationID: "pond"})
	require.NoError(t, err)
	assert.True(t, check.Allowed)

	check, err = svc.CanStart(ctx, id, engine.FishingTarget{LocationID: "river"})
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Equal(t, engine.CodeLevelTooLow, check.Code)

	check, err = svc.CanStart(ctx, id, engine.IncubationTarget{EggID: "rare_egg"})
	require.NoError(t, err)
	assert.Equal(t, engine.CodeLevelTooLow, check.Code)
}

func TestGameService_GetHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Cast(ctx, id, "pond")
		require.NoError(t, err)
		_, err = svc.AbandonFishing(ctx, id)
		require.NoError(t, err)
	}

	all, err := svc.GetHistory(ctx, id, service.HistoryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 10, all.TotalEntries)
	assert.Equal(t, 10, all.TotalActions)
	assert.Equal(t, 20, all.PageSize)
	assert.Equal(t, 1, all.TotalPages)
	require.Len(t, all.Entries, 10)
	assert.Equal(t, 10, all.Entries[0].Number, "newest first by default")

	page, err := svc.GetHistory(ctx, id, service.HistoryOptions{Page: 2, Limit: 3, Order: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Entries, 3)
	assert.Equal(t, 4, page.Entries[0].Number)
	assert.Equal(t, 4, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	last, err := svc.GetHistory(ctx, id, service.HistoryOptions{Page: 4, Limit: 3})
	require.NoError(t, err)
	require.Len(t, last.Entries, 1)
	assert.Equal(t, 1, last.Entries[0].Number)
	assert.False(t, last.HasNext)

	casts, err := svc.GetHistory(ctx, id, service.HistoryOptions{Action: "cast"})
	require.NoError(t, err)
	assert.Equal(t, 5, casts.TotalEntries)
	for _, entry := range casts.Entries {
		assert.Equal(t, "cast", entry.Action)
	}

	beyond, err := svc.GetHistory(ctx, id, service.HistoryOptions{Page: 9, Limit: 3, Order: "asc"})
	require.NoError(t, err)
	assert.Empty(t, beyond.Entries)
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)

	_, err := svc.BuyBait(ctx, id, "worm")
	require.NoError(t, err)

	state, err := svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 100, state.Coins)
	assert.Nil(t, state.Fishing.Bait)

	_, err = svc.Reset(ctx, "missing")
	assert.Error(t, err)
}

func TestGameService_SaveFailureDoesNotFailAction(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)
	sessions.saveErr = errors.New("disk full")

	result, err := svc.Cast(ctx, id, "pond")
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestGameService_ListAndDeleteSessions(t *testing.T) {
	ctx := context.Background()
	svc, _, id := newTestService(t)
	_, err := svc.CreateSession(ctx, "rich")
	require.NoError(t, err)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	require.NoError(t, svc.DeleteSession(ctx, id))
	sessions, err = svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestGameService_SyncAndCleanup(t *testing.T) {
	ctx := context.Background()
	svc, sessions, id := newTestService(t)

	require.NoError(t, svc.SyncSessions(ctx))
	assert.Equal(t, 1, sessions.saves)

	sessions.saveErr = errors.New("disk full")
	assert.Error(t, svc.SyncSessions(ctx))

	sessions.now = sessions.now.Add(2 * time.Hour)
	assert.Equal(t, 1, svc.CleanupSessions(ctx, time.Hour))
	_, err := svc.GetSession(ctx, id)
	assert.Error(t, err)
}
