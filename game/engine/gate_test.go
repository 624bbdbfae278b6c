package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanStartActivity_CheckOrder(t *testing.T) {
	state, cat := newTestState(t)
	state.Fishing.RodID = ""
	state.Fishing.Active = true
	state.Fishing.Inventory = NewSlots[CaughtFish](0)

	// every check fails; the first in order wins
	check := state.CanStartActivity(cat, FishingTarget{LocationID: "river"})
	assert.False(t, check.Allowed)
	assert.Equal(t, CodeLevelTooLow, check.Code)

	check = state.CanStartActivity(cat, FishingTarget{LocationID: "pond"})
	assert.Equal(t, CodeNoEquipment, check.Code)

	state.Fishing.RodID = "basic_rod"
	check = state.CanStartActivity(cat, FishingTarget{LocationID: "pond"})
	assert.Equal(t, CodeAlreadyActive, check.Code)

	state.Fishing.Active = false
	check = state.CanStartActivity(cat, FishingTarget{LocationID: "pond"})
	assert.Equal(t, CodeCapacityFull, check.Code)

	state.Fishing.Inventory = NewSlots[CaughtFish](5)
	check = state.CanStartActivity(cat, FishingTarget{LocationID: "pond"})
	assert.True(t, check.Allowed)
	assert.NoError(t, check.Err())
}

func TestCanStartActivity_Incubation(t *testing.T) {
	state, cat := newTestState(t)

	assert.True(t, state.CanStartActivity(cat, IncubationTarget{EggID: "basic_egg"}).Allowed)
	assert.Equal(t, CodeLevelTooLow, state.CanStartActivity(cat, IncubationTarget{EggID: "legendary_egg"}).Code)
	assert.Equal(t, CodeNotFound, state.CanStartActivity(cat, IncubationTarget{EggID: "nope"}).Code)

	state.Pets.Incubators = NewSlots[IncubatingEgg](0)
	check := state.CanStartActivity(cat, IncubationTarget{EggID: "basic_egg"})
	assert.Equal(t, CodeCapacityFull, check.Code)
	assert.Equal(t, CodeCapacityFull, CodeOf(check.Err()))
}

func TestCanStartActivity_DoesNotMutate(t *testing.T) {
	state, cat := newTestState(t)
	before := *state
	state.CanStartActivity(cat, FishingTarget{LocationID: "pond"})
	state.CanStartActivity(cat, IncubationTarget{EggID: "basic_egg"})
	assert.Equal(t, before.Coins, state.Coins)
	assert.Equal(t, before.Fishing.Active, state.Fishing.Active)
	assert.Equal(t, 0, state.Pets.Incubators.Len())
}
