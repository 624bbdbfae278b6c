package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/config"
	"github.com/wricardo/critter-catch/game/engine"
	"github.com/wricardo/critter-catch/game/service"
	"github.com/wricardo/critter-catch/game/session"
	"github.com/wricardo/critter-catch/transport/websocket"
)

// setupTestServer wires the real service over in-memory sessions and a
// temporary catalog directory
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	catalogs, err := config.NewManager(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := websocket.NewHub()
	go hub.Run(ctx)

	return NewServer(service.NewGameService(session.NewManager(), catalogs), hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v (body %s)", err, w.Body.String())
	}
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, makeRequest(method, path, body))
	return w
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	w := do(t, s, "POST", "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var info service.SessionInfo
	parseResponse(t, w, &info)
	return info.ID
}

// action posts to a session endpoint and decodes the ActionResult
func action(t *testing.T, s *Server, sessionID, suffix string, body interface{}) service.ActionResult {
	t.Helper()
	w := do(t, s, "POST", "/api/sessions/"+sessionID+suffix, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.ActionResult
	parseResponse(t, w, &result)
	return result
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	s := setupTestServer(t)

	t.Run("default catalog", func(t *testing.T) {
		w := do(t, s, "POST", "/api/sessions", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var info service.SessionInfo
		parseResponse(t, w, &info)
		assert.Len(t, info.ID, 4)
		assert.Equal(t, catalog.DefaultName, info.CatalogID)
		require.NotNil(t, info.PlayerState)
		assert.Equal(t, 100, info.PlayerState.Coins)
		assert.Equal(t, 1, info.PlayerState.Level)
	})

	t.Run("unknown catalog", func(t *testing.T) {
		w := do(t, s, "POST", "/api/sessions", map[string]string{"catalog_id": "nowhere"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp map[string]string
		parseResponse(t, w, &resp)
		assert.Contains(t, resp["error"], "nowhere")
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListSessions(t *testing.T) {
	s := setupTestServer(t)
	for i := 0; i < 3; i++ {
		createSession(t, s)
	}

	w := do(t, s, "GET", "/api/sessions?limit=2&sort=created&order=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int                   `json:"count"`
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
		Sort     string                `json:"sort"`
		Order    string                `json:"order"`
	}
	parseResponse(t, w, &resp)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Sessions, 2)
	assert.Equal(t, "created", resp.Sort)
	assert.Equal(t, "asc", resp.Order)
	assert.False(t, resp.Sessions[0].CreatedAt.After(resp.Sessions[1].CreatedAt))
}

func TestGetAndDeleteSession(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)

	w := do(t, s, "GET", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, "DELETE", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, "GET", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, "DELETE", "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Gameplay Tests

func TestFishingFlow(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)

	bait := action(t, s, id, "/shop/bait", map[string]string{"bait_id": "worm"})
	require.True(t, bait.Success, bait.Message)
	assert.Equal(t, "buy_bait", bait.Action)
	assert.Equal(t, 90, bait.State.Coins)

	cast := action(t, s, id, "/fishing/cast", map[string]string{"location_id": "pond"})
	require.True(t, cast.Success, cast.Message)
	require.NotNil(t, cast.Cast)

	again := action(t, s, id, "/fishing/cast", map[string]string{"location_id": "pond"})
	assert.False(t, again.Success)
	assert.Equal(t, engine.CodeAlreadyActive, again.Code)

	reel := action(t, s, id, "/fishing/reel", nil)
	require.True(t, reel.Success, reel.Message)
	require.NotNil(t, reel.Catch)
	assert.Equal(t, 1, reel.State.Fishing.Inventory.Len())

	sell := action(t, s, id, "/fishing/sell", map[string]int{"index": 0})
	require.True(t, sell.Success, sell.Message)
	assert.Equal(t, 0, sell.State.Fishing.Inventory.Len())

	missing := action(t, s, id, "/fishing/sell", map[string]int{"index": 0})
	assert.False(t, missing.Success)
	assert.Equal(t, engine.CodeIndexOutOfRange, missing.Code)

	notFishing := action(t, s, id, "/fishing/abandon", nil)
	assert.False(t, notFishing.Success)
	assert.Equal(t, engine.CodeNotFishing, notFishing.Code)

	all := action(t, s, id, "/fishing/sell-all", nil)
	assert.True(t, all.Success)
}

func TestActionValidation(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
	}{
		{"cast without location", "/api/sessions/" + id + "/fishing/cast", map[string]string{}, http.StatusBadRequest},
		{"sell without index", "/api/sessions/" + id + "/fishing/sell", map[string]string{}, http.StatusBadRequest},
		{"buy rod without id", "/api/sessions/" + id + "/shop/rod", map[string]string{}, http.StatusBadRequest},
		{"unknown session", "/api/sessions/zzzz/fishing/reel", nil, http.StatusNotFound},
		{"unknown pet operation", "/api/sessions/" + id + "/pets/p1/feed", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestShopRejections(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)

	unknown := action(t, s, id, "/shop/bait", map[string]string{"bait_id": "wurm"})
	assert.False(t, unknown.Success)
	assert.Equal(t, engine.CodeNotFound, unknown.Code)
	assert.Contains(t, unknown.Message, "worm")

	rod := action(t, s, id, "/shop/rod", map[string]string{"rod_id": "fiberglass_rod"})
	assert.False(t, rod.Success)
	assert.Equal(t, engine.CodeLevelTooLow, rod.Code)
}

func TestEggAndPetFlow(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)

	egg := action(t, s, id, "/shop/egg", map[string]string{"egg_id": "basic_egg"})
	require.True(t, egg.Success, egg.Message)
	require.NotNil(t, egg.Egg)
	assert.Equal(t, 0, egg.State.Coins)

	broke := action(t, s, id, "/shop/egg", map[string]string{"egg_id": "basic_egg"})
	assert.Equal(t, engine.CodeInsufficientFunds, broke.Code)

	hatch := action(t, s, id, "/incubators/"+egg.Egg.ID+"/hatch", nil)
	assert.False(t, hatch.Success)
	assert.Equal(t, engine.CodeNotReady, hatch.Code)

	for _, op := range []string{"evolve", "equip", "unequip", "lock", "unlock"} {
		result := action(t, s, id, "/pets/ghost/"+op, nil)
		assert.False(t, result.Success, op)
		assert.Equal(t, engine.CodePetNotFound, result.Code, op)
	}

	w := do(t, s, "DELETE", "/api/sessions/"+id+"/pets/ghost", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var release service.ActionResult
	parseResponse(t, w, &release)
	assert.Equal(t, "release", release.Action)
	assert.Equal(t, engine.CodePetNotFound, release.Code)
}

// Player View Tests

func TestPlayerViews(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)
	action(t, s, id, "/shop/bait", map[string]string{"bait_id": "worm"})
	action(t, s, id, "/fishing/cast", map[string]string{"location_id": "river"})

	t.Run("state", func(t *testing.T) {
		w := do(t, s, "GET", "/api/sessions/"+id+"/state", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var state engine.PlayerState
		parseResponse(t, w, &state)
		assert.Equal(t, 90, state.Coins)
		require.NotNil(t, state.Fishing.Bait)
		assert.Equal(t, "worm", state.Fishing.Bait.ID)
	})

	t.Run("history", func(t *testing.T) {
		w := do(t, s, "GET", "/api/sessions/"+id+"/history?limit=1&order=desc", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var history service.HistoryResponse
		parseResponse(t, w, &history)
		assert.Equal(t, 2, history.TotalEntries)
		require.Len(t, history.Entries, 1)
		assert.Equal(t, "cast", history.Entries[0].Action)
		assert.True(t, history.HasNext)

		w = do(t, s, "GET", "/api/sessions/"+id+"/history?action=buy_bait", nil)
		parseResponse(t, w, &history)
		require.Len(t, history.Entries, 1)
		assert.Equal(t, "buy_bait", history.Entries[0].Action)
	})

	t.Run("collection", func(t *testing.T) {
		w := do(t, s, "GET", "/api/sessions/"+id+"/collection", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var collection service.CollectionInfo
		parseResponse(t, w, &collection)
		assert.Equal(t, 0, collection.Fish.Discovered)
		assert.Positive(t, collection.Fish.Total)
		assert.Positive(t, collection.Pets.Total)
	})

	t.Run("can start", func(t *testing.T) {
		w := do(t, s, "GET", "/api/sessions/"+id+"/can-start?egg=basic_egg", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var check engine.Check
		parseResponse(t, w, &check)
		assert.False(t, check.Allowed)
		assert.Equal(t, engine.CodeInsufficientFunds, check.Code)

		w = do(t, s, "GET", "/api/sessions/"+id+"/can-start", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, s, "GET", "/api/sessions/"+id+"/can-start?location=pond&egg=basic_egg", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reset", func(t *testing.T) {
		w := do(t, s, "POST", "/api/sessions/"+id+"/reset", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Message string             `json:"message"`
			State   engine.PlayerState `json:"state"`
		}
		parseResponse(t, w, &resp)
		assert.Equal(t, 100, resp.State.Coins)
		assert.Nil(t, resp.State.Fishing.Bait)
	})
}

func TestUnifiedSessions(t *testing.T) {
	s := setupTestServer(t)
	rich := createSession(t, s)
	poor := createSession(t, s)
	action(t, s, poor, "/shop/bait", map[string]string{"bait_id": "worm"})

	w := do(t, s, "GET", "/api/sessions/unified?sessionIds="+poor+","+rich+",missing", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int                      `json:"count"`
		Sessions []map[string]interface{} `json:"sessions"`
	}
	parseResponse(t, w, &resp)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, rich, resp.Sessions[0]["session_id"])
	assert.Equal(t, float64(100), resp.Sessions[0]["coins"])

	w = do(t, s, "GET", "/api/sessions/unified?catalogId=other", nil)
	parseResponse(t, w, &resp)
	assert.Equal(t, 0, resp.Count)
}

// Catalog Tests

func TestCatalogs(t *testing.T) {
	s := setupTestServer(t)

	lake := catalog.Default()
	lake.Name = "Quiet Lake"
	lake.Fishing.StartingCoins = 250

	w := do(t, s, "POST", "/api/catalogs", lake)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved map[string]interface{}
	parseResponse(t, w, &saved)
	assert.Equal(t, "quiet_lake", saved["catalog_id"])

	w = do(t, s, "GET", "/api/catalogs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var infos []service.CatalogInfo
	parseResponse(t, w, &infos)
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.CatalogID)
	}
	assert.Contains(t, ids, "quiet_lake")
	assert.Contains(t, ids, catalog.DefaultName)

	w = do(t, s, "GET", "/api/catalogs/quiet_lake", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loaded catalog.Catalog
	parseResponse(t, w, &loaded)
	assert.Equal(t, "Quiet Lake", loaded.Name)

	w = do(t, s, "POST", "/api/sessions", map[string]string{"catalog_id": "quiet_lake"})
	require.Equal(t, http.StatusCreated, w.Code)
	var info service.SessionInfo
	parseResponse(t, w, &info)
	assert.Equal(t, 250, info.PlayerState.Coins)

	w = do(t, s, "GET", "/api/catalogs/nothing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	broken := catalog.Default()
	broken.Name = "Broken"
	broken.Locations = nil
	w = do(t, s, "POST", "/api/catalogs", broken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, "POST", "/api/catalogs", map[string]string{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)
	w := do(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

// WebSocket Tests

func TestWebSocket(t *testing.T) {
	s := setupTestServer(t)
	id := createSession(t, s)

	ts := httptest.NewServer(s)
	defer ts.Close()
	wsBase := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	t.Run("missing session parameter", func(t *testing.T) {
		_, resp, err := gorillaws.DefaultDialer.Dial(wsBase, nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, resp, err := gorillaws.DefaultDialer.Dial(wsBase+"?session=zzzz", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("receives action updates", func(t *testing.T) {
		conn, _, err := gorillaws.DefaultDialer.Dial(wsBase+"?session="+id, nil)
		require.NoError(t, err)
		defer conn.Close()

		received := make(chan websocket.Message, 1)
		go func() {
			defer close(received)
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var message websocket.Message
			if json.Unmarshal([]byte(strings.SplitN(string(data), "\n", 2)[0]), &message) == nil {
				received <- message
			}
		}()

		// Registration is asynchronous; rejected actions are published too
		deadline := time.After(2 * time.Second)
		for {
			action(t, s, id, "/fishing/abandon", nil)
			select {
			case message, ok := <-received:
				require.True(t, ok, "failed to read websocket message")
				assert.Equal(t, id, message.SessionID)
				assert.Equal(t, "abandon", message.Event)
				require.NotNil(t, message.State)
				return
			case <-deadline:
				t.Fatal("No message received within timeout")
			case <-time.After(20 * time.Millisecond):
			}
		}
	})
}
