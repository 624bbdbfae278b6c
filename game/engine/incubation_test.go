package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/critter-catch/game/catalog"
)

func TestStartIncubation_ChargesAndOccupiesSlot(t *testing.T) {
	state, cat := newTestState(t)

	egg, err := state.StartIncubation(cat, "basic_egg", testNow)
	require.NoError(t, err)
	assert.NotEmpty(t, egg.ID)
	assert.Equal(t, "basic_egg", egg.EggID)
	assert.Equal(t, int64(60_000), egg.DurationMs)
	assert.Equal(t, 0, state.Coins)
	assert.Equal(t, 1, state.Pets.Incubators.Len())
	assert.Equal(t, 1, state.Pets.EggsBought)

	_, err = state.StartIncubation(cat, "basic_egg", testNow)
	require.Error(t, err)
	assert.Equal(t, CodeInsufficientFunds, CodeOf(err))
	assert.Equal(t, 1, state.Pets.Incubators.Len())
	assert.Equal(t, 1, state.Pets.EggsBought)
}

func TestStartIncubation_Refusals(t *testing.T) {
	state, cat := newTestState(t)
	state.Coins = 100_000

	_, err := state.StartIncubation(cat, "rare_egg", testNow)
	assert.Equal(t, CodeLevelTooLow, CodeOf(err))

	_, err = state.StartIncubation(cat, "dragon_egg", testNow)
	assert.Equal(t, CodeNotFound, CodeOf(err))

	for i := 0; i < cat.Pets.MaxIncubators; i++ {
		_, err := state.StartIncubation(cat, "basic_egg", testNow)
		require.NoError(t, err)
	}
	coins := state.Coins
	_, err = state.StartIncubation(cat, "basic_egg", testNow)
	assert.Equal(t, CodeCapacityFull, CodeOf(err))
	assert.Equal(t, coins, state.Coins)
}

func TestIncubatingEgg_Readiness(t *testing.T) {
	egg := IncubatingEgg{ID: "inc-1", EggID: "basic_egg", StartTime: testNow, DurationMs: 60_000}

	assert.False(t, egg.IsReady(testNow))
	assert.False(t, egg.IsReady(testNow.Add(59*time.Second)))
	assert.True(t, egg.IsReady(testNow.Add(60*time.Second)))
	assert.Equal(t, 15*time.Second, egg.TimeRemaining(testNow.Add(45*time.Second)))
	assert.Equal(t, time.Duration(0), egg.TimeRemaining(testNow.Add(2*time.Minute)))
}

func TestHatch(t *testing.T) {
	tests := []struct {
		name         string
		variantDraw  float64
		wantVariant  catalog.Variant
		wantPower    int
		wantSpecies  string
		rarityDraw   float64
		speciesIndex int
	}{
		{"normal cat", 0.5, catalog.VariantNormal, 100, "cat", 0.1, 0},
		{"shiny dog", 0.03, catalog.VariantShiny, 165, "dog", 0.1, 1},
		{"golden cat", 0.005, catalog.VariantGolden, 200, "cat", 0.1, 0},
		{"rainbow tiger", 0.0005, catalog.VariantRainbow, 900, "tiger", 0.99, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, cat := newTestState(t)
			egg, err := state.StartIncubation(cat, "basic_egg", testNow)
			require.NoError(t, err)

			r := &scriptedRoller{floats: []float64{tt.rarityDraw, tt.variantDraw}, ints: []int{tt.speciesIndex}}
			result, err := state.Hatch(cat, egg.ID, r, testNow.Add(time.Minute))
			require.NoError(t, err)

			assert.Equal(t, tt.wantSpecies, result.Pet.SpeciesID)
			assert.Equal(t, tt.wantVariant, result.Pet.Variant)
			assert.Equal(t, tt.wantPower, result.Pet.Power)
			assert.Equal(t, 1, result.Pet.Level)
			assert.True(t, result.IsNew)
			assert.True(t, state.Pets.Discovered[tt.wantSpecies])
			assert.Equal(t, 0, state.Pets.Incubators.Len())
			assert.Equal(t, 1, state.Pets.Inventory.Len())
			assert.Equal(t, 1, state.Pets.TotalHatched)
		})
	}
}

func TestHatch_Refusals(t *testing.T) {
	state, cat := newTestState(t)
	egg, err := state.StartIncubation(cat, "basic_egg", testNow)
	require.NoError(t, err)

	_, err = state.Hatch(cat, "missing", NewRoller(1), testNow.Add(time.Hour))
	assert.Equal(t, CodeNotFound, CodeOf(err))

	_, err = state.Hatch(cat, egg.ID, NewRoller(1), testNow.Add(30*time.Second))
	assert.Equal(t, CodeNotReady, CodeOf(err))
	assert.Equal(t, 1, state.Pets.Incubators.Len())

	state.Pets.Inventory = NewSlots[OwnedPet](0)
	_, err = state.Hatch(cat, egg.ID, NewRoller(1), testNow.Add(time.Hour))
	assert.Equal(t, CodeInventoryFull, CodeOf(err))
	assert.Equal(t, 1, state.Pets.Incubators.Len())
}

func TestReadyEggs(t *testing.T) {
	state, cat := newTestState(t)
	state.Coins = 1000

	first, err := state.StartIncubation(cat, "basic_egg", testNow)
	require.NoError(t, err)
	_, err = state.StartIncubation(cat, "basic_egg", testNow.Add(50*time.Second))
	require.NoError(t, err)

	assert.Equal(t, []string{first.ID}, state.ReadyEggs(testNow.Add(70*time.Second)))
	assert.Len(t, state.ReadyEggs(testNow.Add(2*time.Minute)), 2)
}
