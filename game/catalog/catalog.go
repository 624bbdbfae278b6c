package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Catalog is the full set of static game tables
type Catalog struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Fishing     FishingConfig `json:"fishing" yaml:"fishing"`
	Pets        PetConfig     `json:"pets" yaml:"pets"`
	FishSpecies []FishSpecies `json:"fish_species" yaml:"fish_species"`
	PetSpecies  []PetSpecies  `json:"pet_species" yaml:"pet_species"`
	Locations   []Location    `json:"locations" yaml:"locations"`
	Rods        []Rod         `json:"rods" yaml:"rods"`
	Baits       []Bait        `json:"baits" yaml:"baits"`
	Eggs        []EggType     `json:"eggs" yaml:"eggs"`
}

// Fish looks up a fish species by id
func (c *Catalog) Fish(id string) (*FishSpecies, bool) {
	for i := range c.FishSpecies {
		if c.FishSpecies[i].ID == id {
			return &c.FishSpecies[i], true
		}
	}
	return nil, false
}

// Pet looks up a pet species by id
func (c *Catalog) Pet(id string) (*PetSpecies, bool) {
	for i := range c.PetSpecies {
		if c.PetSpecies[i].ID == id {
			return &c.PetSpecies[i], true
		}
	}
	return nil, false
}

// Location looks up a fishing location by id
func (c *Catalog) Location(id string) (*Location, bool) {
	for i := range c.Locations {
		if c.Locations[i].ID == id {
			return &c.Locations[i], true
		}
	}
	return nil, false
}

// Rod looks up a rod by id
func (c *Catalog) Rod(id string) (*Rod, bool) {
	for i := range c.Rods {
		if c.Rods[i].ID == id {
			return &c.Rods[i], true
		}
	}
	return nil, false
}

// Bait looks up a bait by id
func (c *Catalog) Bait(id string) (*Bait, bool) {
	for i := range c.Baits {
		if c.Baits[i].ID == id {
			return &c.Baits[i], true
		}
	}
	return nil, false
}

// Egg looks up an egg type by id
func (c *Catalog) Egg(id string) (*EggType, bool) {
	for i := range c.Eggs {
		if c.Eggs[i].ID == id {
			return &c.Eggs[i], true
		}
	}
	return nil, false
}

// FishAt returns the species catchable at loc by a player of the given level,
// in catalog order. A species is valid for a location when either side lists
// the other.
func (c *Catalog) FishAt(loc *Location, playerLevel int) []*FishSpecies {
	listed := make(map[string]bool, len(loc.Species))
	for _, id := range loc.Species {
		listed[id] = true
	}

	var result []*FishSpecies
	for i := range c.FishSpecies {
		sp := &c.FishSpecies[i]
		if sp.MinLevel > playerLevel {
			continue
		}
		if listed[sp.ID] || containsString(sp.Locations, loc.ID) {
			result = append(result, sp)
		}
	}
	return result
}

// PetsInEgg returns the eligible pet species for an egg type, in egg order
func (c *Catalog) PetsInEgg(egg *EggType) []*PetSpecies {
	result := make([]*PetSpecies, 0, len(egg.Species))
	for _, id := range egg.Species {
		if sp, ok := c.Pet(id); ok {
			result = append(result, sp)
		}
	}
	return result
}

// SuggestLocation returns the closest location id to a mistyped one, or ""
func (c *Catalog) SuggestLocation(id string) string {
	ids := make([]string, 0, len(c.Locations))
	for _, loc := range c.Locations {
		ids = append(ids, loc.ID)
	}
	return Suggest(id, ids)
}

// SuggestEgg returns the closest egg id to a mistyped one, or ""
func (c *Catalog) SuggestEgg(id string) string {
	ids := make([]string, 0, len(c.Eggs))
	for _, egg := range c.Eggs {
		ids = append(ids, egg.ID)
	}
	return Suggest(id, ids)
}

// SuggestRod returns the closest rod id to a mistyped one, or ""
func (c *Catalog) SuggestRod(id string) string {
	ids := make([]string, 0, len(c.Rods))
	for _, rod := range c.Rods {
		ids = append(ids, rod.ID)
	}
	return Suggest(id, ids)
}

// SuggestBait returns the closest bait id to a mistyped one, or ""
func (c *Catalog) SuggestBait(id string) string {
	ids := make([]string, 0, len(c.Baits))
	for _, bait := range c.Baits {
		ids = append(ids, bait.ID)
	}
	return Suggest(id, ids)
}

// Suggest picks the candidate with the smallest edit distance to input.
// Candidates further than a third of their length (minimum two edits) are
// ignored so that unrelated ids are never offered.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	type scored struct {
		id   string
		dist int
	}
	var matches []scored
	for _, cand := range candidates {
		if strings.HasPrefix(cand, input) && len(input) >= 2 {
			matches = append(matches, scored{id: cand, dist: 0})
			continue
		}
		dist := levenshtein.ComputeDistance(input, cand)
		if dist > suggestLimit(len(cand)) {
			continue
		}
		matches = append(matches, scored{id: cand, dist: dist})
	}
	if len(matches) == 0 {
		return ""
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist == matches[j].dist {
			return matches[i].id < matches[j].id
		}
		return matches[i].dist < matches[j].dist
	})
	return matches[0].id
}

func suggestLimit(n int) int {
	limit := n / 3
	if limit < 2 {
		return 2
	}
	return limit
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
