// Command autoplay plays Critter Catch through the REST API until the player
// reaches a target level. It resumes the session saved in .session when there
// is one, so repeated runs keep growing the same player.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
	"github.com/wricardo/critter-catch/game/service"
)

var sessionFile = ".session"

var errStuck = errors.New("no action available")

// Client talks to one session of a Critter Catch server
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateSession starts a new session and makes it the client's session
func (c *Client) CreateSession(ctx context.Context, catalogID string) (*service.SessionInfo, error) {
	var info service.SessionInfo
	body := map[string]string{}
	if catalogID != "" {
		body["catalog_id"] = catalogID
	}
	if err := c.call(ctx, http.MethodPost, "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return &info, nil
}

// GetSession fetches the client's session
func (c *Client) GetSession(ctx context.Context) (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.call(ctx, http.MethodGet, "/api/sessions/"+c.sessionID, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Catalog fetches a catalog by id
func (c *Client) Catalog(ctx context.Context, id string) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := c.call(ctx, http.MethodGet, "/api/catalogs/"+id, nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Reset starts the session's player over
func (c *Client) Reset(ctx context.Context) (*engine.PlayerState, error) {
	var resp struct {
		State *engine.PlayerState `json:"state"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+"/reset", nil, &resp); err != nil {
		return nil, err
	}
	return resp.State, nil
}

// Do runs one step. A rejected action is not an error; it comes back with
// Success false.
func (c *Client) Do(ctx context.Context, step Step) (*service.ActionResult, error) {
	var result service.ActionResult
	if err := c.call(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+step.Path, step.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// PlayOptions bound a run
type PlayOptions struct {
	TargetLevel int
	MaxActions  int
	Delay       time.Duration
	Verbose     bool
}

// Report summarizes a run
type Report struct {
	Actions  int
	Rejected int
	Reached  bool
	Level    int
	Coins    int
	Caught   int
	Pets     int
}

// play drives the strategy until the target level, the action budget or a
// dead end
func play(ctx context.Context, client *Client, strategy *Strategy, state *engine.PlayerState, opts PlayOptions) (report Report, err error) {
	defer func() {
		report.Level = state.Level
		report.Coins = state.Coins
		report.Caught = state.Fishing.TotalCaught
		report.Pets = state.Pets.Inventory.Len()
	}()

	for report.Actions < opts.MaxActions {
		if state.Level >= opts.TargetLevel {
			report.Reached = true
			return report, nil
		}

		step, ok := strategy.Next(state, time.Now())
		if !ok {
			return report, errStuck
		}

		result, doErr := client.Do(ctx, step)
		if doErr != nil {
			return report, doErr
		}
		report.Actions++
		if result.State != nil {
			state = result.State
		}

		if !result.Success {
			report.Rejected++
			strategy.Reject(step)
			if opts.Verbose {
				log.Printf("%s rejected [%s]: %s", step.Action, result.Code, result.Message)
			}
			continue
		}

		if step.Action == "reel" {
			strategy.Reset()
			if opts.Verbose && result.Catch != nil {
				log.Printf("Caught %s (%s) worth %d - level %d, %d coins",
					result.Catch.Species.Name, result.Catch.Fish.Quality, result.Catch.Value, state.Level, state.Coins)
			}
		} else if opts.Verbose {
			log.Printf("%s: %s", step.Action, result.Message)
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	report.Reached = state.Level >= opts.TargetLevel
	return report, nil
}

// openSession resumes the saved or requested session, or creates one
func openSession(ctx context.Context, client *Client, resume, catalogID string) (*service.SessionInfo, error) {
	if resume == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			resume = string(bytes.TrimSpace(data))
		}
	}

	if resume != "" {
		client.sessionID = resume
		info, err := client.GetSession(ctx)
		if err == nil {
			log.Printf("🔄 Resuming session: %s", info.ID)
			return info, nil
		}
		log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
	}

	info, err := client.CreateSession(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	log.Printf("✨ Session created: %s (catalog %s)", info.ID, info.CatalogID)
	if err := os.WriteFile(sessionFile, []byte(info.ID), 0644); err != nil {
		log.Printf("Warning: Failed to save session ID: %v", err)
	}
	return info, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	client := NewClient(cmd.String("url"))
	log.Printf("Connecting to game server at %s", cmd.String("url"))

	info, err := openSession(ctx, client, cmd.String("continue"), cmd.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	cat, err := client.Catalog(ctx, info.CatalogID)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	state := info.PlayerState
	if cmd.Bool("reset") || state == nil {
		if state, err = client.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		log.Printf("🔄 Player reset")
	}
	log.Printf("Level %d, %d coins, %d fish caught", state.Level, state.Coins, state.Fishing.TotalCaught)

	report, err := play(ctx, client, NewStrategy(cat), state, PlayOptions{
		TargetLevel: cmd.Int("target-level"),
		MaxActions:  cmd.Int("max-actions"),
		Delay:       time.Duration(cmd.Int("delay")) * time.Millisecond,
		Verbose:     cmd.Bool("v"),
	})
	log.Printf("Actions=%d (rejected %d), Level=%d, Coins=%d, Caught=%d, Pets=%d",
		report.Actions, report.Rejected, report.Level, report.Coins, report.Caught, report.Pets)
	log.Printf("Session: %s", client.sessionID)
	if err != nil {
		return err
	}

	if !report.Reached {
		return fmt.Errorf("level %d not reached within %d actions", cmd.Int("target-level"), cmd.Int("max-actions"))
	}
	log.Printf("🎉 Reached level %d", report.Level)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.Command{
		Name:  "autoplay",
		Usage: "Play Critter Catch through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "catalog", Usage: "Catalog for a new session (default catalog when empty)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.IntFlag{Name: "target-level", Value: 10, Usage: "Stop once the player reaches this level"},
			&cli.IntFlag{Name: "max-actions", Value: 5000, Usage: "Maximum actions before giving up"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between actions in milliseconds"},
			&cli.BoolFlag{Name: "reset", Usage: "Start the player over before playing"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
