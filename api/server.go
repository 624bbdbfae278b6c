package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/config"
	"github.com/wricardo/critter-catch/game/engine"
	"github.com/wricardo/critter-catch/game/service"
	"github.com/wricardo/critter-catch/game/session"
	"github.com/wricardo/critter-catch/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil when live updates are
// not wanted.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// Multi-session dashboard view (must be before {id} pattern)
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Player views
	api.HandleFunc("/sessions/{id}/state", s.handleGetPlayerState).Methods("GET")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/sessions/{id}/collection", s.handleGetCollection).Methods("GET")
	api.HandleFunc("/sessions/{id}/can-start", s.handleCanStart).Methods("GET")

	// Fishing
	api.HandleFunc("/sessions/{id}/fishing/cast", s.handleCast).Methods("POST")
	api.HandleFunc("/sessions/{id}/fishing/reel", s.handleReel).Methods("POST")
	api.HandleFunc("/sessions/{id}/fishing/abandon", s.handleAbandon).Methods("POST")
	api.HandleFunc("/sessions/{id}/fishing/sell", s.handleSellFish).Methods("POST")
	api.HandleFunc("/sessions/{id}/fishing/sell-all", s.handleSellAll).Methods("POST")

	// Shop
	api.HandleFunc("/sessions/{id}/shop/rod", s.handleBuyRod).Methods("POST")
	api.HandleFunc("/sessions/{id}/shop/bait", s.handleBuyBait).Methods("POST")
	api.HandleFunc("/sessions/{id}/shop/egg", s.handleBuyEgg).Methods("POST")

	// Pets
	api.HandleFunc("/sessions/{id}/incubators/{incubatorID}/hatch", s.handleHatch).Methods("POST")
	api.HandleFunc("/sessions/{id}/pets/{petID}/{op:evolve|equip|unequip|lock|unlock}", s.handlePetAction).Methods("POST")
	api.HandleFunc("/sessions/{id}/pets/{petID}", s.handleReleasePet).Methods("DELETE")

	// Catalogs
	api.HandleFunc("/catalogs", s.handleListCatalogs).Methods("GET")
	api.HandleFunc("/catalogs", s.handleCreateCatalog).Methods("POST")
	api.HandleFunc("/catalogs/{name}", s.handleGetCatalog).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, config.ErrCatalogNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidSessionID), errors.Is(err, config.ErrInvalidCatalog):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads an optional JSON body; an empty body leaves req untouched
func decodeBody(r *http.Request, req any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CatalogID string `json:"catalog_id,omitempty"`
	}

	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.CreateSession(r.Context(), req.CatalogID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	log.Printf("[SESSION] created session=%s catalog=%s", info.ID, info.CatalogID)
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Player View Handlers

func (s *Server) handleGetPlayerState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetPlayerState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, state)
	}

	log.Printf("[RESET] session=%s", sessionID)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Player reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	opts.Action = query.Get("action")

	history, err := s.service.GetHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	collection, err := s.service.GetCollection(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, collection)
}

func (s *Server) handleCanStart(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	query := r.URL.Query()

	var target engine.Activity
	location, egg := query.Get("location"), query.Get("egg")
	switch {
	case location != "" && egg == "":
		target = engine.FishingTarget{LocationID: location}
	case egg != "" && location == "":
		target = engine.IncubationTarget{EggID: egg}
	default:
		respondError(w, http.StatusBadRequest, "Provide exactly one of location or egg")
		return
	}

	check, err := s.service.CanStart(r.Context(), sessionID, target)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, check)
}

// Action Handlers

// runAction executes one player action, publishes it to websocket clients
// and writes the result. A rejected action is still a 200 with success false.
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, target string, fn func(ctx context.Context, sessionID string) (*service.ActionResult, error)) {
	sessionID := mux.Vars(r)["id"]

	result, err := fn(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastAction(sessionID, result)
	}

	logAction(sessionID, target, result)
	respondJSON(w, http.StatusOK, result)
}

// logAction writes a compact server log line for observability
func logAction(sessionID, target string, result *service.ActionResult) {
	status := "OK"
	if !result.Success {
		status = string(result.Code)
	}
	coins, level := 0, 0
	if result.State != nil {
		coins, level = result.State.Coins, result.State.Level
	}
	if target != "" {
		target = " " + target
	}
	log.Printf("[%s] session=%s%s status=%s coins=%d level=%d",
		strings.ToUpper(result.Action), sessionID, target, status, coins, level)
}

func (s *Server) handleCast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LocationID string `json:"location_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LocationID == "" {
		respondError(w, http.StatusBadRequest, "location_id is required")
		return
	}

	s.runAction(w, r, req.LocationID, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.Cast(ctx, id, req.LocationID)
	})
}

func (s *Server) handleReel(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "", s.service.Reel)
}

func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "", s.service.AbandonFishing)
}

func (s *Server) handleSellFish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		respondError(w, http.StatusBadRequest, "index is required")
		return
	}

	s.runAction(w, r, fmt.Sprintf("index=%d", *req.Index), func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.SellFish(ctx, id, *req.Index)
	})
}

func (s *Server) handleSellAll(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "", s.service.SellAll)
}

// shopHandler decodes the item id under field and calls buy
func (s *Server) shopHandler(field string, buy func(ctx context.Context, sessionID, itemID string) (*service.ActionResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req[field] == "" {
			respondError(w, http.StatusBadRequest, field+" is required")
			return
		}

		itemID := req[field]
		s.runAction(w, r, itemID, func(ctx context.Context, id string) (*service.ActionResult, error) {
			return buy(ctx, id, itemID)
		})
	}
}

func (s *Server) handleBuyRod(w http.ResponseWriter, r *http.Request) {
	s.shopHandler("rod_id", s.service.BuyRod)(w, r)
}

func (s *Server) handleBuyBait(w http.ResponseWriter, r *http.Request) {
	s.shopHandler("bait_id", s.service.BuyBait)(w, r)
}

func (s *Server) handleBuyEgg(w http.ResponseWriter, r *http.Request) {
	s.shopHandler("egg_id", s.service.BuyEgg)(w, r)
}

func (s *Server) handleHatch(w http.ResponseWriter, r *http.Request) {
	incubatorID := mux.Vars(r)["incubatorID"]

	s.runAction(w, r, incubatorID, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.Hatch(ctx, id, incubatorID)
	})
}

func (s *Server) handlePetAction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	petID := vars["petID"]

	var op func(ctx context.Context, sessionID, petID string) (*service.ActionResult, error)
	switch vars["op"] {
	case "evolve":
		op = s.service.Evolve
	case "equip":
		op = s.service.Equip
	case "unequip":
		op = s.service.Unequip
	case "lock", "unlock":
		locked := vars["op"] == "lock"
		op = func(ctx context.Context, sessionID, petID string) (*service.ActionResult, error) {
			return s.service.SetPetLocked(ctx, sessionID, petID, locked)
		}
	}

	s.runAction(w, r, petID, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return op(ctx, id, petID)
	})
}

func (s *Server) handleReleasePet(w http.ResponseWriter, r *http.Request) {
	petID := mux.Vars(r)["petID"]

	s.runAction(w, r, petID, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.ReleasePet(ctx, id, petID)
	})
}

// Catalog Handlers

func (s *Server) handleListCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := s.service.ListCatalogs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, catalogs)
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	cat, err := s.service.LoadCatalog(r.Context(), name)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cat)
}

// handleCreateCatalog stores a catalog under ?id=, or a slug of its name
func (s *Server) handleCreateCatalog(w http.ResponseWriter, r *http.Request) {
	var cat catalog.Catalog

	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if cat.Name == "" {
		respondError(w, http.StatusBadRequest, "Catalog name is required")
		return
	}

	catalogID := r.URL.Query().Get("id")
	if catalogID == "" {
		catalogID = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cat.Name)), " ", "_")
	}

	if err := s.service.SaveCatalog(r.Context(), catalogID, &cat); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			respondError(w, status, fmt.Sprintf("Failed to save catalog: %v", err))
			return
		}
		respondError(w, status, err.Error())
		return
	}

	log.Printf("[CATALOG] saved catalog=%s", catalogID)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Catalog saved successfully",
		"catalog_id": catalogID,
	})
}

// Unified Sessions Handler

// handleUnifiedSessions returns several sessions side by side, selected by
// ?sessionIds=a,b or ?catalogId=lake, for the leaderboard view
func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		for _, id := range strings.Split(sessionIDs, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if info, err := s.service.GetSession(r.Context(), id); err == nil {
				sessions = append(sessions, info)
			}
		}
	} else {
		all, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		catalogID := query.Get("catalogId")
		for _, info := range all {
			if catalogID == "" || info.CatalogID == catalogID {
				sessions = append(sessions, info)
			}
		}
	}

	// Highest level first, coins break ties
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i].PlayerState, sessions[j].PlayerState
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		return a.Coins > b.Coins
	})

	entries := make([]map[string]interface{}, 0, len(sessions))
	for _, info := range sessions {
		st := info.PlayerState
		entries = append(entries, map[string]interface{}{
			"session_id":    info.ID,
			"catalog_id":    info.CatalogID,
			"level":         st.Level,
			"coins":         st.Coins,
			"fish_caught":   st.Fishing.TotalCaught,
			"fish_species":  len(st.Fishing.Discovered),
			"pets":          st.Pets.Inventory.Len(),
			"pet_species":   len(st.Pets.Discovered),
			"total_actions": st.TotalActions,
			"created_at":    info.CreatedAt,
			"last_accessed": info.LastAccessedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(entries),
		"sessions": entries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if s.hub == nil {
		http.Error(w, "live updates disabled", http.StatusServiceUnavailable)
		return
	}

	// Verify session exists
	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
