package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wricardo/critter-catch/game/catalog"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// scriptedRoller replays fixed draws; once exhausted it returns zeros
type scriptedRoller struct {
	floats []float64
	ints   []int
}

func (s *scriptedRoller) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRoller) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func newTestState(t *testing.T) (*PlayerState, *catalog.Catalog) {
	t.Helper()
	cat := catalog.Default()
	return NewPlayerState("player-1", cat), cat
}

func addPet(t *testing.T, s *PlayerState, id, species string, level, power int) {
	t.Helper()
	require.True(t, s.Pets.Inventory.Add(OwnedPet{
		ID:        id,
		SpeciesID: species,
		Progress:  Progress{Level: level},
		Power:     power,
		Variant:   catalog.VariantNormal,
		HatchedAt: testNow,
	}), "pet inventory full")
	s.Pets.Discovered[species] = true
}
