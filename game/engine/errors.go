package engine

import (
	"errors"
	"fmt"
)

// Code identifies why a game action was rejected
type Code string

const (
	CodeLevelTooLow       Code = "LEVEL_TOO_LOW"
	CodeNoEquipment       Code = "NO_EQUIPMENT"
	CodeAlreadyActive     Code = "ALREADY_ACTIVE"
	CodeCapacityFull      Code = "CAPACITY_FULL"
	CodeNotFishing        Code = "NOT_FISHING"
	CodeNotFound          Code = "NOT_FOUND"
	CodeNotReady          Code = "NOT_READY"
	CodeInventoryFull     Code = "INVENTORY_FULL"
	CodeIndexOutOfRange   Code = "INDEX_OUT_OF_RANGE"
	CodePetNotFound       Code = "PET_NOT_FOUND"
	CodeCannotEvolve      Code = "CANNOT_EVOLVE"
	CodeLevelRequired     Code = "LEVEL_REQUIRED"
	CodeAlreadyEquipped   Code = "ALREADY_EQUIPPED"
	CodeMaxEquipped       Code = "MAX_EQUIPPED"
	CodeNotEquipped       Code = "NOT_EQUIPPED"
	CodePetLocked         Code = "PET_LOCKED"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeNoSpecies         Code = "NO_SPECIES"
)

// Error is a rejected game action. The player state is untouched whenever one
// is returned.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the game code carried by err, or "" for other errors
func CodeOf(err error) Code {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Code
	}
	return ""
}
