package engine

import (
	"fmt"

	"github.com/wricardo/critter-catch/game/catalog"
)

// Activity is something a player can start: fishing at a location or
// incubating an egg
type Activity interface {
	activity()
}

// FishingTarget asks whether the player may cast at a location
type FishingTarget struct {
	LocationID string
}

// IncubationTarget asks whether the player may start an egg
type IncubationTarget struct {
	EggID string
}

func (FishingTarget) activity()    {}
func (IncubationTarget) activity() {}

// Check is the answer of CanStartActivity
type Check struct {
	Allowed bool   `json:"allowed"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err converts a refused check into an *Error
func (c Check) Err() error {
	if c.Allowed {
		return nil
	}
	return &Error{Code: c.Code, Message: c.Message}
}

func allowed() Check { return Check{Allowed: true} }

func refused(code Code, format string, args ...any) Check {
	e := newError(code, format, args...)
	return Check{Code: e.Code, Message: e.Message}
}

// CanStartActivity reports whether target may be started right now. Checks
// run in a fixed order: level, equipment, already active, capacity. Unknown
// ids are refused with NOT_FOUND before any of them. State is never changed.
func (s *PlayerState) CanStartActivity(cat *catalog.Catalog, target Activity) Check {
	switch t := target.(type) {
	case FishingTarget:
		loc, ok := cat.Location(t.LocationID)
		if !ok {
			return refused(CodeNotFound, "%s", unknownMessage("location", t.LocationID, cat.SuggestLocation(t.LocationID)))
		}
		if s.Level < loc.MinLevel {
			return refused(CodeLevelTooLow, "%s requires level %d", loc.Name, loc.MinLevel)
		}
		if s.Fishing.RodID == "" {
			return refused(CodeNoEquipment, "No rod equipped")
		}
		if _, ok := cat.Rod(s.Fishing.RodID); !ok {
			return refused(CodeNoEquipment, "Equipped rod '%s' is not in the catalog", s.Fishing.RodID)
		}
		if s.Fishing.Active {
			return refused(CodeAlreadyActive, "Already fishing at %s", s.Fishing.LocationID)
		}
		if s.Fishing.Inventory.Full() {
			return refused(CodeCapacityFull, "Fish inventory is full (%d/%d)", s.Fishing.Inventory.Len(), s.Fishing.Inventory.Cap())
		}
		return allowed()

	case IncubationTarget:
		egg, ok := cat.Egg(t.EggID)
		if !ok {
			return refused(CodeNotFound, "%s", unknownMessage("egg", t.EggID, cat.SuggestEgg(t.EggID)))
		}
		if s.Level < egg.MinLevel {
			return refused(CodeLevelTooLow, "%s requires level %d", egg.Name, egg.MinLevel)
		}
		if s.Pets.Incubators.Full() {
			return refused(CodeCapacityFull, "All %d incubators are in use", s.Pets.Incubators.Cap())
		}
		return allowed()

	default:
		return refused(CodeNotFound, "Unknown activity")
	}
}

func unknownMessage(kind, id, suggestion string) string {
	if suggestion != "" {
		return fmt.Sprintf("Unknown %s '%s'. Did you mean '%s'?", kind, id, suggestion)
	}
	return fmt.Sprintf("Unknown %s '%s'", kind, id)
}
