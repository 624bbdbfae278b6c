package engine

import "github.com/wricardo/critter-catch/game/catalog"

// Purchase describes a shop transaction
type Purchase struct {
	ItemID string `json:"item_id"`
	Price  int    `json:"price"`
	Coins  int    `json:"coins"`
}

// BuyRod buys and equips a rod. Rods already owned are equipped for free.
func (s *PlayerState) BuyRod(cat *catalog.Catalog, rodID string) (*Purchase, error) {
	rod, ok := cat.Rod(rodID)
	if !ok {
		return nil, newError(CodeNotFound, "%s", unknownMessage("rod", rodID, cat.SuggestRod(rodID)))
	}
	if s.OwnsRod(rod.ID) {
		s.Fishing.RodID = rod.ID
		return &Purchase{ItemID: rod.ID, Coins: s.Coins}, nil
	}
	if s.Level < rod.MinLevel {
		return nil, newError(CodeLevelTooLow, "%s requires level %d", rod.Name, rod.MinLevel)
	}
	if s.Coins < rod.Price {
		return nil, newError(CodeInsufficientFunds, "%s costs %d coins, you have %d", rod.Name, rod.Price, s.Coins)
	}

	s.Coins -= rod.Price
	s.Fishing.OwnedRods = append(s.Fishing.OwnedRods, rod.ID)
	s.Fishing.RodID = rod.ID
	return &Purchase{ItemID: rod.ID, Price: rod.Price, Coins: s.Coins}, nil
}

// BuyBait buys bait with full uses, replacing whatever is equipped
func (s *PlayerState) BuyBait(cat *catalog.Catalog, baitID string) (*Purchase, error) {
	bait, ok := cat.Bait(baitID)
	if !ok {
		return nil, newError(CodeNotFound, "%s", unknownMessage("bait", baitID, cat.SuggestBait(baitID)))
	}
	if s.Coins < bait.Price {
		return nil, newError(CodeInsufficientFunds, "%s costs %d coins, you have %d", bait.Name, bait.Price, s.Coins)
	}

	s.Coins -= bait.Price
	s.Fishing.Bait = &BaitSlot{ID: bait.ID, UsesLeft: bait.Uses}
	return &Purchase{ItemID: bait.ID, Price: bait.Price, Coins: s.Coins}, nil
}
