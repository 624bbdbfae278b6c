package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/critter-catch/api"
	"github.com/wricardo/critter-catch/game/config"
	"github.com/wricardo/critter-catch/transport/mcp"
)

func testSettings(t *testing.T, store string) config.Settings {
	dir := t.TempDir()
	return config.Settings{
		Host:            "localhost",
		Port:            8080,
		CatalogDir:      "",
		Store:           store,
		SessionsDir:     filepath.Join(dir, "sessions"),
		DBPath:          filepath.Join(dir, "sessions.db"),
		SessionTTL:      time.Hour,
		CleanupInterval: time.Minute,
		SyncInterval:    time.Second,
	}
}

func TestConstants(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("Expected version 1.0.0, got %s", Version)
	}
	if AppName != "Critter Catch Server" {
		t.Errorf("Expected app name 'Critter Catch Server', got %s", AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	for _, store := range []string{config.StoreMemory, config.StoreFile, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			gameService, closeStore, err := initializeServices(testSettings(t, store))
			if err != nil {
				t.Fatalf("Failed to initialize services: %v", err)
			}
			defer closeStore()

			info, err := gameService.CreateSession(context.Background(), "")
			if err != nil {
				t.Fatalf("Failed to create session: %v", err)
			}
			if err := gameService.SyncSessions(context.Background()); err != nil {
				t.Errorf("Sync failed: %v", err)
			}
			if _, err := gameService.GetSession(context.Background(), info.ID); err != nil {
				t.Errorf("Session lost after sync: %v", err)
			}
		})
	}
}

func TestInitializeServices_Restart(t *testing.T) {
	settings := testSettings(t, config.StoreSQLite)

	first, closeFirst, err := initializeServices(settings)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, _ := first.CreateSession(context.Background(), "")
	if _, err := first.BuyBait(context.Background(), info.ID, "worm"); err != nil {
		t.Fatalf("BuyBait failed: %v", err)
	}
	closeFirst()

	second, closeSecond, err := initializeServices(settings)
	if err != nil {
		t.Fatalf("Failed to reinitialize services: %v", err)
	}
	defer closeSecond()

	state, err := second.GetPlayerState(context.Background(), info.ID)
	if err != nil {
		t.Fatalf("Session not restored: %v", err)
	}
	if state.Coins != 90 || state.Fishing.Bait == nil {
		t.Errorf("Expected restored purchase, got %d coins and bait %v", state.Coins, state.Fishing.Bait)
	}
}

func TestInitializeServices_InvalidCatalogDir(t *testing.T) {
	settings := testSettings(t, config.StoreMemory)
	settings.CatalogDir = "/non/existent/path"

	if _, _, err := initializeServices(settings); err == nil {
		t.Error("Expected error for non-existent catalog directory")
	}
}

func TestApplyFlags(t *testing.T) {
	settings := testSettings(t, config.StoreFile)

	var got config.Settings
	app := newApp(settings)
	app.Action = func(ctx context.Context, cmd *cli.Command) error {
		got = applyFlags(cmd, settings)
		return nil
	}

	args := []string{"critter-catch", "--port", "9191", "--store", "sqlite", "--ngrok-domain", "fish.example.dev"}
	if err := app.Run(context.Background(), args); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got.Port != 9191 {
		t.Errorf("Expected port 9191, got %d", got.Port)
	}
	if got.Store != config.StoreSQLite {
		t.Errorf("Expected sqlite store, got %s", got.Store)
	}
	if got.NgrokDomain != "fish.example.dev" {
		t.Errorf("Expected ngrok domain from flag, got %q", got.NgrokDomain)
	}
	if got.Host != "localhost" || got.SessionTTL != time.Hour {
		t.Error("Unset flags should keep environment values")
	}
}

func TestMCPEndpoint(t *testing.T) {
	gameService, closeStore, err := initializeServices(testSettings(t, config.StoreMemory))
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer closeStore()

	router := newMainRouter(api.NewServer(gameService, nil), mcp.NewClient("http://127.0.0.1:1"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /mcp, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	router.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", body))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /mcp, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"jsonrpc":"2.0"`) {
		t.Errorf("Expected JSON-RPC response, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected API mounted at root, got %d for /health", w.Code)
	}
}

func TestRunMaintenanceStopsOnCancel(t *testing.T) {
	gameService, closeStore, err := initializeServices(testSettings(t, config.StoreMemory))
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer closeStore()

	settings := testSettings(t, config.StoreMemory)
	settings.SyncInterval = time.Millisecond
	settings.CleanupInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runMaintenance(ctx, gameService, settings)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runMaintenance did not stop after cancel")
	}
}
