package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
)

func newPlayer(cat *catalog.Catalog) *engine.PlayerState {
	return engine.NewPlayerState("bot", cat)
}

func withBait(state *engine.PlayerState) *engine.PlayerState {
	state.Fishing.Bait = &engine.BaitSlot{ID: "worm", UsesLeft: 5}
	return state
}

func TestNewStrategy_ReservesCheapestBait(t *testing.T) {
	s := NewStrategy(catalog.Default())
	assert.Equal(t, 10, s.reserve)
}

func TestStrategy_Next(t *testing.T) {
	cat := catalog.Default()
	now := time.Now()

	tests := []struct {
		name   string
		state  func() *engine.PlayerState
		action string
		path   string
		body   map[string]any
	}{
		{
			name:   "fresh player buys cheap bait",
			state:  func() *engine.PlayerState { return newPlayer(cat) },
			action: "buy_bait",
			path:   "/shop/bait",
			body:   map[string]any{"bait_id": "worm"},
		},
		{
			name:   "baited player casts at the only open spot",
			state:  func() *engine.PlayerState { return withBait(newPlayer(cat)) },
			action: "cast",
			path:   "/fishing/cast",
			body:   map[string]any{"location_id": "pond"},
		},
		{
			name: "active session reels first",
			state: func() *engine.PlayerState {
				s := newPlayer(cat)
				s.Fishing.Active = true
				s.Fishing.LocationID = "pond"
				return s
			},
			action: "reel",
			path:   "/fishing/reel",
		},
		{
			name: "full bag sells everything",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				for !s.Fishing.Inventory.Full() {
					s.Fishing.Inventory.Add(engine.CaughtFish{SpeciesID: "goldfish", Quality: catalog.Normal})
				}
				return s
			},
			action: "sell_all",
			path:   "/fishing/sell-all",
		},
		{
			name: "ready egg hatches before anything but reeling",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				s.Pets.Incubators.Add(engine.IncubatingEgg{ID: "inc-1", EggID: "basic_egg", StartTime: now.Add(-2 * time.Minute), DurationMs: 60_000})
				return s
			},
			action: "hatch",
			path:   "/incubators/inc-1/hatch",
		},
		{
			name: "richer player upgrades the rod",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				s.Level = 5
				s.Coins = 1000
				return s
			},
			action: "buy_rod",
			path:   "/shop/rod",
			body:   map[string]any{"rod_id": "fiberglass_rod"},
		},
		{
			name: "spare coins start an egg",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				s.Coins = 500
				return s
			},
			action: "buy_egg",
			path:   "/shop/egg",
			body:   map[string]any{"egg_id": "basic_egg"},
		},
		{
			name: "idle pet is equipped",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				s.Pets.Inventory.Add(engine.OwnedPet{ID: "weak", SpeciesID: "hamster", Power: 60})
				s.Pets.Inventory.Add(engine.OwnedPet{ID: "strong", SpeciesID: "owl", Power: 140})
				return s
			},
			action: "equip",
			path:   "/pets/strong/equip",
		},
		{
			name: "grown pet evolves",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				s.Pets.Inventory.Add(engine.OwnedPet{ID: "kit", SpeciesID: "cat", Progress: engine.Progress{Level: 25}, Power: 100, Equipped: true})
				s.Pets.Equipped.Add("kit")
				return s
			},
			action: "evolve",
			path:   "/pets/kit/evolve",
		},
		{
			name: "higher level casts at the best spot",
			state: func() *engine.PlayerState {
				s := withBait(newPlayer(cat))
				s.Level = 12
				s.Fishing.OwnedRods = []string{"basic_rod", "fiberglass_rod", "carbon_rod"}
				s.Fishing.RodID = "carbon_rod"
				s.Coins = 0
				return s
			},
			action: "cast",
			path:   "/fishing/cast",
			body:   map[string]any{"location_id": "ocean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, ok := NewStrategy(cat).Next(tt.state(), now)
			require.True(t, ok)
			assert.Equal(t, tt.action, step.Action)
			assert.Equal(t, tt.path, step.Path)
			assert.Equal(t, tt.body, step.Body)
		})
	}
}

func TestStrategy_RejectAndReset(t *testing.T) {
	cat := catalog.Default()
	s := NewStrategy(cat)
	state := withBait(newPlayer(cat))

	step, ok := s.Next(state, time.Now())
	require.True(t, ok)
	require.Equal(t, "cast", step.Action)

	s.Reject(step)
	_, ok = s.Next(state, time.Now())
	assert.False(t, ok, "a rejected cast leaves nothing to do")

	s.Reset()
	step, ok = s.Next(state, time.Now())
	require.True(t, ok)
	assert.Equal(t, "cast", step.Action)
}

func TestStrategy_BrokePlayerIsStuck(t *testing.T) {
	cat := catalog.Default()
	state := newPlayer(cat)
	state.Fishing.RodID = ""
	state.Coins = 0

	_, ok := NewStrategy(cat).Next(state, time.Now())
	assert.False(t, ok)
}
