package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
	"github.com/wricardo/critter-catch/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Critter Catch",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Critter Catch - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Two loops share one player: fish at locations to earn coins and XP, then
spend coins on eggs that hatch into pets. Equipped pets earn XP from every
catch and can evolve.

Start with create_session, then player_state. Call game_instructions for
the full rules. Rejected actions come back with a code such as
LEVEL_TOO_LOW or INSUFFICIENT_FUNDS and an explanation.`),
	)

	c.registerTools()
}

// sessionArg is shared by every per-session tool
func sessionArg() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new player session with optional catalog selection"),
		mcp.WithString("catalog_id", mcp.Description("Catalog to play (optional, see list_catalogs)")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active player sessions"),
	), c.handleListSessions)

	c.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		sessionArg(),
	), c.handleGetSession)

	c.mcpServer.AddTool(mcp.NewTool("list_catalogs",
		mcp.WithDescription("List available content catalogs"),
	), c.handleListCatalogs)

	c.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the rules of the fishing and pet loops"),
	), c.handleGameInstructions)

	// Player views
	c.mcpServer.AddTool(mcp.NewTool("player_state",
		mcp.WithDescription("Get coins, level, fishing gear, inventory, incubators and pets"),
		sessionArg(),
	), c.handlePlayerState)

	c.mcpServer.AddTool(mcp.NewTool("collection",
		mcp.WithDescription("Get discovery progress for fish and pets by rarity"),
		sessionArg(),
	), c.handleCollection)

	c.mcpServer.AddTool(mcp.NewTool("activity_history",
		mcp.WithDescription("View past actions, newest first"),
		sessionArg(),
		mcp.WithNumber("page", mcp.Description("Page number (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Entries per page (default 20, max 100)")),
		mcp.WithString("action", mcp.Description("Only show this action, e.g. reel or hatch")),
	), c.handleHistory)

	c.mcpServer.AddTool(mcp.NewTool("can_start",
		mcp.WithDescription("Check whether fishing at a location or incubating an egg is allowed right now, without doing it"),
		sessionArg(),
		mcp.WithString("location_id", mcp.Description("Location to check")),
		mcp.WithString("egg_id", mcp.Description("Egg type to check")),
	), c.handleCanStart)

	c.mcpServer.AddTool(mcp.NewTool("reset_player",
		mcp.WithDescription("Start the player over; history is kept"),
		sessionArg(),
	), c.handleReset)

	// Fishing
	c.mcpServer.AddTool(mcp.NewTool("cast",
		mcp.WithDescription("Cast a line at a location. Requires a rod, the location's level and a free inventory slot"),
		sessionArg(),
		mcp.WithString("location_id", mcp.Required(), mcp.Description("Location to fish at, e.g. pond")),
		mcp.WithString("intent", mcp.Description("Brief explanation of why you chose this location")),
	), c.handleCast)

	c.mcpServer.AddTool(mcp.NewTool("reel",
		mcp.WithDescription("Reel in the active line and catch a fish"),
		sessionArg(),
	), c.actionHandler("reel", "/fishing/reel", nil))

	c.mcpServer.AddTool(mcp.NewTool("abandon_fishing",
		mcp.WithDescription("Stop fishing without a catch"),
		sessionArg(),
	), c.actionHandler("abandon", "/fishing/abandon", nil))

	c.mcpServer.AddTool(mcp.NewTool("sell_fish",
		mcp.WithDescription("Sell one fish by its inventory index"),
		sessionArg(),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index in the fish inventory")),
	), c.handleSellFish)

	c.mcpServer.AddTool(mcp.NewTool("sell_all",
		mcp.WithDescription("Sell every fish in the inventory"),
		sessionArg(),
	), c.actionHandler("sell_all", "/fishing/sell-all", nil))

	// Shop
	c.mcpServer.AddTool(mcp.NewTool("buy_rod",
		mcp.WithDescription("Buy and equip a rod; owned rods are re-equipped for free"),
		sessionArg(),
		mcp.WithString("rod_id", mcp.Required(), mcp.Description("Rod to buy")),
	), c.handleShop("rod_id", "/shop/rod"))

	c.mcpServer.AddTool(mcp.NewTool("buy_bait",
		mcp.WithDescription("Buy a fresh stack of bait, replacing the current one"),
		sessionArg(),
		mcp.WithString("bait_id", mcp.Required(), mcp.Description("Bait to buy")),
	), c.handleShop("bait_id", "/shop/bait"))

	c.mcpServer.AddTool(mcp.NewTool("buy_egg",
		mcp.WithDescription("Buy an egg and start incubating it"),
		sessionArg(),
		mcp.WithString("egg_id", mcp.Required(), mcp.Description("Egg type to buy")),
	), c.handleShop("egg_id", "/shop/egg"))

	// Pets
	c.mcpServer.AddTool(mcp.NewTool("hatch",
		mcp.WithDescription("Hatch a ready egg"),
		sessionArg(),
		mcp.WithString("incubator_id", mcp.Required(), mcp.Description("Id of the incubating egg (see player_state)")),
	), c.handleHatch)

	for _, tool := range []struct{ name, action, desc string }{
		{"evolve_pet", "evolve", "Evolve a pet into its next form once it reaches the required level"},
		{"equip_pet", "equip", "Equip a pet so it earns XP from catches"},
		{"unequip_pet", "unequip", "Unequip a pet"},
		{"lock_pet", "lock", "Lock a pet so it cannot be released"},
		{"unlock_pet", "unlock", "Unlock a pet"},
	} {
		c.mcpServer.AddTool(mcp.NewTool(tool.name,
			mcp.WithDescription(tool.desc),
			sessionArg(),
			mcp.WithString("pet_id", mcp.Required(), mcp.Description("Pet id (see player_state)")),
		), c.handlePet(tool.action))
	}

	c.mcpServer.AddTool(mcp.NewTool("release_pet",
		mcp.WithDescription("Release a pet from the collection; locked pets are refused"),
		sessionArg(),
		mcp.WithString("pet_id", mcp.Required(), mcp.Description("Pet id (see player_state)")),
	), c.handleRelease)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

// bind decodes tool arguments and insists on a session id when the target
// struct has one
func bind(request mcp.CallToolRequest, target any) *mcp.CallToolResult {
	if err := request.BindArguments(target); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err))
	}
	if s, ok := target.(interface{ session() string }); ok && s.session() == "" {
		return mcp.NewToolResultError("session_id is required")
	}
	return nil
}

func (a sessionArgs) session() string { return a.SessionID }

// action posts to a session endpoint and renders the ActionResult
func (c *Client) action(ctx context.Context, sessionID, suffix string, body any) (*mcp.CallToolResult, error) {
	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, suffix), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

// actionHandler builds a handler for actions that only need the session id
func (c *Client) actionHandler(name, suffix string, body any) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args sessionArgs
		if res := bind(request, &args); res != nil {
			return res, nil
		}
		return c.action(ctx, args.SessionID, suffix, body)
	}
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		CatalogID string `json:"catalog_id"`
	}
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	body := map[string]string{}
	if args.CatalogID != "" {
		body["catalog_id"] = args.CatalogID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nCatalog: %s\n\n%s", session.ID, session.CatalogID, formatPlayerState(session.PlayerState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		level, coins := 0, 0
		if s.PlayerState != nil {
			level, coins = s.PlayerState.Level, s.PlayerState.Coins
		}
		fmt.Fprintf(&b, "- %s (Catalog: %s, Level %d, %d coins, Created: %s)\n",
			s.ID, s.CatalogID, level, coins, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handlePlayerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	var state engine.PlayerState
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlayerState(&state)), nil
}

func (c *Client) handleCollection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	var collection service.CollectionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, "/collection"), nil, &collection); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCollection(&collection)), nil
}

func (c *Client) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		sessionArgs
		Page   int    `json:"page"`
		Limit  int    `json:"limit"`
		Action string `json:"action"`
	}
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	params := url.Values{}
	if args.Page > 0 {
		params.Set("page", fmt.Sprint(args.Page))
	}
	if args.Limit > 0 {
		params.Set("limit", fmt.Sprint(args.Limit))
	}
	if args.Action != "" {
		params.Set("action", args.Action)
	}
	path := sessionPath(args.SessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleCanStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		sessionArgs
		LocationID string `json:"location_id"`
		EggID      string `json:"egg_id"`
	}
	if res := bind(request, &args); res != nil {
		return res, nil
	}
	if (args.LocationID == "") == (args.EggID == "") {
		return mcp.NewToolResultError("provide exactly one of location_id or egg_id"), nil
	}

	params := url.Values{}
	if args.LocationID != "" {
		params.Set("location", args.LocationID)
	} else {
		params.Set("egg", args.EggID)
	}

	var check engine.Check
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, "/can-start?"+params.Encode()), nil, &check); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if check.Allowed {
		return mcp.NewToolResultText("Allowed"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Not allowed [%s]: %s", check.Code, check.Message)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	var response struct {
		Message string              `json:"message"`
		State   *engine.PlayerState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(args.SessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatPlayerState(response.State))), nil
}

func (c *Client) handleCast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		sessionArgs
		LocationID string `json:"location_id"`
		// Intent is rubber duck debugging for the agent; the server ignores it
		Intent string `json:"intent"`
	}
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	return c.action(ctx, args.SessionID, "/fishing/cast", map[string]string{"location_id": args.LocationID})
}

func (c *Client) handleSellFish(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		sessionArgs
		Index int `json:"index"`
	}
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	return c.action(ctx, args.SessionID, "/fishing/sell", map[string]int{"index": args.Index})
}

// handleShop builds a handler for the purchase tools; field names both the
// tool argument and the request body key
func (c *Client) handleShop(field, suffix string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		sessionID, _ := args["session_id"].(string)
		itemID, _ := args[field].(string)
		if sessionID == "" || itemID == "" {
			return mcp.NewToolResultError(fmt.Sprintf("session_id and %s are required", field)), nil
		}

		return c.action(ctx, sessionID, suffix, map[string]string{field: itemID})
	}
}

func (c *Client) handleHatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		sessionArgs
		IncubatorID string `json:"incubator_id"`
	}
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	return c.action(ctx, args.SessionID, "/incubators/"+url.PathEscape(args.IncubatorID)+"/hatch", nil)
}

type petArgs struct {
	sessionArgs
	PetID string `json:"pet_id"`
}

func (c *Client) handlePet(action string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args petArgs
		if res := bind(request, &args); res != nil {
			return res, nil
		}
		return c.action(ctx, args.SessionID, "/pets/"+url.PathEscape(args.PetID)+"/"+action, nil)
	}
}

func (c *Client) handleRelease(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args petArgs
	if res := bind(request, &args); res != nil {
		return res, nil
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "DELETE", sessionPath(args.SessionID, "/pets/"+url.PathEscape(args.PetID)), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleListCatalogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var catalogs []service.CatalogInfo
	if err := c.apiCall(ctx, "GET", "/api/catalogs", nil, &catalogs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Catalogs:\n\n")
	for _, info := range catalogs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Locations: %d, Fish: %d, Pets: %d, Eggs: %d\n\n",
			info.CatalogID, info.Name, info.Description, info.Locations, info.FishSpecies, info.PetSpecies, info.Eggs)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Critter Catch - Rules

FISHING LOOP:
1. cast at a location. You need a rod, the location's minimum level, a free
   fish inventory slot and no line already in the water.
2. reel to resolve the catch. The rarity tier is rolled first; rod luck,
   bait luck and the location's multiplier raise the odds of every tier
   above the lowest. A species of that tier is picked, then quality
   (poor, normal, good, perfect) and weight.
3. sell_fish or sell_all for coins. Price is base value times quality
   multiplier times weight ratio.
Each catch grants player XP and XP to every equipped pet. Bait loses one use
per catch.

PET LOOP:
1. buy_egg puts an egg in a free incubator (level and coins permitting).
2. After the incubation time, hatch it. The egg's rarity table picks the
   tier, then a species, then a variant (normal, shiny, golden, rainbow).
   Variants multiply the pet's power.
3. equip_pet (up to the equip limit) so pets level from your catches.
4. evolve_pet once a pet reaches its evolution level. Evolution keeps the
   variant and multiplies power.
5. lock_pet protects a pet from release_pet.

ERROR CODES:
Rejected actions report a code: LEVEL_TOO_LOW, NO_EQUIPMENT, ALREADY_ACTIVE,
CAPACITY_FULL, NOT_FISHING, NOT_FOUND, NOT_READY, INVENTORY_FULL,
INDEX_OUT_OF_RANGE, PET_NOT_FOUND, CANNOT_EVOLVE, LEVEL_REQUIRED,
ALREADY_EQUIPPED, MAX_EQUIPPED, NOT_EQUIPPED, PET_LOCKED, INSUFFICIENT_FUNDS,
NO_SPECIES.
Unknown ids come with a "Did you mean" suggestion.

TIPS:
- can_start checks a location or egg without spending anything.
- collection shows how many species of each rarity you have found.
- activity_history with action=reel lists your recent catches.`

// Formatting

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nCatalog: %s\nCreated: %s\nLast Accessed: %s\n\n%s",
		session.ID,
		session.CatalogID,
		session.CreatedAt.Format(time.RFC3339),
		session.LastAccessedAt.Format(time.RFC3339),
		formatPlayerState(session.PlayerState))
}

func formatPlayerState(state *engine.PlayerState) string {
	if state == nil {
		return "No player state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Player %s: Level %d (%d XP), %d coins\n", state.PlayerID, state.Level, state.Experience, state.Coins)

	f := state.Fishing
	b.WriteString("\nFISHING\n")
	fmt.Fprintf(&b, "Rod: %s (owned: %s)\n", f.RodID, strings.Join(f.OwnedRods, ", "))
	if f.Bait != nil {
		fmt.Fprintf(&b, "Bait: %s (%d uses left)\n", f.Bait.ID, f.Bait.UsesLeft)
	} else {
		b.WriteString("Bait: none\n")
	}
	if f.Active {
		fmt.Fprintf(&b, "Line in the water at %s (expected bite in %.1fs)\n", f.LocationID, float64(f.EstimatedWaitMs)/1000)
	}
	fmt.Fprintf(&b, "Inventory %d/%d:\n", f.Inventory.Len(), f.Inventory.Cap())
	for i, fish := range f.Inventory.Items() {
		record := ""
		if fish.IsPersonalRecord {
			record = " (record)"
		}
		fmt.Fprintf(&b, "  [%d] %s %s %.2fkg%s\n", i, fish.Quality, fish.SpeciesID, fish.Weight, record)
	}
	fmt.Fprintf(&b, "Caught %d, sold %d, earned %d coins\n", f.TotalCaught, f.TotalSold, f.TotalEarned)

	p := state.Pets
	b.WriteString("\nPETS\n")
	fmt.Fprintf(&b, "Incubators %d/%d:\n", p.Incubators.Len(), p.Incubators.Cap())
	now := time.Now()
	for _, egg := range p.Incubators.Items() {
		status := "READY"
		if !egg.IsReady(now) {
			status = egg.TimeRemaining(now).Round(time.Second).String() + " left"
		}
		fmt.Fprintf(&b, "  %s: %s (%s)\n", egg.ID, egg.EggID, status)
	}
	fmt.Fprintf(&b, "Pets %d/%d, equipped %d/%d:\n", p.Inventory.Len(), p.Inventory.Cap(), p.Equipped.Len(), p.Equipped.Cap())
	for _, pet := range p.Inventory.Items() {
		var flags []string
		if pet.Equipped {
			flags = append(flags, "equipped")
		}
		if pet.Locked {
			flags = append(flags, "locked")
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintf(&b, "  %s: %s %s, level %d, power %d%s\n", pet.ID, pet.Variant, pet.SpeciesID, pet.Level, pet.Power, suffix)
	}

	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✅ %s: %s\n", result.Action, result.Message)
	} else {
		fmt.Fprintf(&b, "❌ %s rejected [%s]: %s\n", result.Action, result.Code, result.Message)
	}

	for _, ev := range result.Events {
		if ev.Type == "catch" || ev.Type == "cast" || ev.Type == "sale" || ev.Type == "purchase" {
			continue
		}
		fmt.Fprintf(&b, "• %s\n", ev.Message)
	}

	if result.State != nil {
		fmt.Fprintf(&b, "\nLevel %d, %d coins, %d/%d fish, %d pets\n",
			result.State.Level, result.State.Coins,
			result.State.Fishing.Inventory.Len(), result.State.Fishing.Inventory.Cap(),
			result.State.Pets.Inventory.Len())
	}
	return b.String()
}

func formatCollection(collection *service.CollectionInfo) string {
	var b strings.Builder
	write := func(title string, progress engine.CollectionProgress) {
		fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)\n", title, progress.Discovered, progress.Total, progress.Percentage)
		for _, rarity := range catalog.Rarities {
			tier, ok := progress.ByRarity[rarity]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %-10s %d/%d\n", rarity, tier.Discovered, tier.Total)
		}
	}
	write("Fish", collection.Fish)
	b.WriteString("\n")
	write("Pets", collection.Pets)
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity History (Page %d/%d, %d entries, %d actions total):\n\n",
		history.Page, history.TotalPages, history.TotalEntries, history.TotalActions)

	for _, entry := range history.Entries {
		status := "✓"
		if !entry.Success {
			status = "✗ " + string(entry.Code)
		}
		target := ""
		if entry.Target != "" {
			target = " " + entry.Target
		}
		fmt.Fprintf(&b, "#%d %s%s %s", entry.Number, entry.Action, target, status)
		if entry.Detail != "" {
			fmt.Fprintf(&b, " - %s", entry.Detail)
		}
		b.WriteString("\n")
	}

	if history.HasNext {
		fmt.Fprintf(&b, "\nMore entries on page %d", history.Page+1)
	}
	return b.String()
}
