package engine

import (
	"encoding/json"
	"slices"
)

// Slots is a list with a capacity fixed at creation. It backs every bounded
// collection in the player state: inventories, incubators and the equip set.
type Slots[T any] struct {
	items    []T
	capacity int
}

// NewSlots creates an empty list holding at most capacity items
func NewSlots[T any](capacity int) Slots[T] {
	return Slots[T]{items: make([]T, 0, capacity), capacity: capacity}
}

// Len returns the number of stored items
func (s *Slots[T]) Len() int { return len(s.items) }

// Cap returns the fixed capacity
func (s *Slots[T]) Cap() int { return s.capacity }

// Full reports whether another Add would fail
func (s *Slots[T]) Full() bool { return len(s.items) >= s.capacity }

// SetCap changes the capacity, never below the number of stored items
func (s *Slots[T]) SetCap(capacity int) {
	if capacity < len(s.items) {
		capacity = len(s.items)
	}
	s.capacity = capacity
}

// Add appends item, returning false when the list is full
func (s *Slots[T]) Add(item T) bool {
	if s.Full() {
		return false
	}
	s.items = append(s.items, item)
	return true
}

// At returns the item at index i
func (s *Slots[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(s.items) {
		return zero, false
	}
	return s.items[i], true
}

// Ptr returns a pointer to the item at index i for in-place updates, or nil
func (s *Slots[T]) Ptr(i int) *T {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return &s.items[i]
}

// RemoveAt deletes the item at index i, keeping the order of the rest
func (s *Slots[T]) RemoveAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(s.items) {
		return zero, false
	}
	item := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return item, true
}

// IndexFunc returns the index of the first item satisfying f, or -1
func (s *Slots[T]) IndexFunc(f func(T) bool) int {
	return slices.IndexFunc(s.items, f)
}

// Items returns a copy of the stored items
func (s *Slots[T]) Items() []T {
	return slices.Clone(s.items)
}

type slotsJSON[T any] struct {
	Capacity int `json:"capacity"`
	Items    []T `json:"items"`
}

func (s Slots[T]) MarshalJSON() ([]byte, error) {
	items := s.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(slotsJSON[T]{Capacity: s.capacity, Items: items})
}

func (s *Slots[T]) UnmarshalJSON(data []byte) error {
	var raw slotsJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Capacity < len(raw.Items) {
		raw.Capacity = len(raw.Items)
	}
	s.capacity = raw.Capacity
	s.items = make([]T, 0, raw.Capacity)
	s.items = append(s.items, raw.Items...)
	return nil
}

// Clone returns a copy that shares no storage with s
func (s Slots[T]) Clone() Slots[T] {
	return Slots[T]{items: slices.Clone(s.items), capacity: s.capacity}
}
