package engine

import (
	"math"

	"github.com/wricardo/critter-catch/game/catalog"
)

// SaleResult describes one sold fish
type SaleResult struct {
	Fish   CaughtFish `json:"fish"`
	Price  int        `json:"price"`
	Coins  int        `json:"coins"`
	Earned int        `json:"total_earned"`
}

// SaleSummary describes a bulk sale
type SaleSummary struct {
	Sold   int `json:"sold"`
	Kept   int `json:"kept"`
	Earned int `json:"earned"`
	Coins  int `json:"coins"`
}

// SellPrice is the species base value scaled by the quality multiplier,
// rounded down. Unknown qualities sell at base value.
func SellPrice(fish CaughtFish, species *catalog.FishSpecies, cfg catalog.FishingConfig) int {
	mult, ok := cfg.QualityMultipliers[fish.Quality]
	if !ok {
		mult = 1
	}
	return int(math.Floor(float64(species.BaseValue) * mult))
}

// Sell removes the fish at index and credits its price
func (s *PlayerState) Sell(cat *catalog.Catalog, index int) (*SaleResult, error) {
	fish, ok := s.Fishing.Inventory.At(index)
	if !ok {
		return nil, newError(CodeIndexOutOfRange, "No fish at index %d (inventory holds %d)", index, s.Fishing.Inventory.Len())
	}
	species, ok := cat.Fish(fish.SpeciesID)
	if !ok {
		return nil, newError(CodeNotFound, "Unknown fish species '%s'", fish.SpeciesID)
	}

	price := SellPrice(fish, species, cat.Fishing)
	s.Fishing.Inventory.RemoveAt(index)
	s.credit(price)

	return &SaleResult{Fish: fish, Price: price, Coins: s.Coins, Earned: s.Fishing.TotalEarned}, nil
}

// SellAll sells every fish whose species is still in the catalog
func (s *PlayerState) SellAll(cat *catalog.Catalog) SaleSummary {
	summary := SaleSummary{}
	for i := s.Fishing.Inventory.Len() - 1; i >= 0; i-- {
		fish, _ := s.Fishing.Inventory.At(i)
		species, ok := cat.Fish(fish.SpeciesID)
		if !ok {
			summary.Kept++
			continue
		}
		price := SellPrice(fish, species, cat.Fishing)
		s.Fishing.Inventory.RemoveAt(i)
		s.credit(price)
		summary.Sold++
		summary.Earned += price
	}
	summary.Coins = s.Coins
	return summary
}

// InventoryValue is what SellAll would earn right now
func (s *PlayerState) InventoryValue(cat *catalog.Catalog) int {
	total := 0
	for _, fish := range s.Fishing.Inventory.Items() {
		if species, ok := cat.Fish(fish.SpeciesID); ok {
			total += SellPrice(fish, species, cat.Fishing)
		}
	}
	return total
}

func (s *PlayerState) credit(price int) {
	s.Coins += price
	s.Fishing.TotalEarned += price
	s.Fishing.TotalSold++
}
