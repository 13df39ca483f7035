package inventory

import (
	"strconv"
	"strings"
	"sync"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
)

// MaxSelectableQuantity caps any single requested quantity. Larger inputs
// are clamped, not rejected.
const MaxSelectableQuantity = 100

// Selection is the user's in-progress working set: items checked for
// transfer and the quantities requested for them. Insertion order is kept
// so a submitted record lists items in the order they were picked.
type Selection struct {
	mu         sync.Mutex
	order      []string
	quantities map[string]*int
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{quantities: make(map[string]*int)}
}

// Toggle checks an unchecked item (quantity unset) or unchecks a checked
// one. Returns whether the item is selected afterwards. Toggling twice
// restores the prior state.
func (s *Selection) Toggle(item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quantities[item]; ok {
		s.remove(item)
		return false
	}

	s.order = append(s.order, item)
	s.quantities[item] = nil
	return true
}

// SetQuantity applies one canonical quantity rule on every edit path:
// an empty input keeps the item checked with its quantity unset (the user
// is still typing), anything that is not an integer or is below 1 unchecks
// the item, and values above MaxSelectableQuantity are clamped.
func (s *Selection) SetQuantity(item, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		if _, ok := s.quantities[item]; ok {
			s.quantities[item] = nil
		}
		return
	}

	quantity, err := strconv.Atoi(trimmed)
	if err != nil || quantity < 1 {
		s.remove(item)
		return
	}

	if quantity > MaxSelectableQuantity {
		quantity = MaxSelectableQuantity
	}

	if _, ok := s.quantities[item]; !ok {
		s.order = append(s.order, item)
	}
	s.quantities[item] = &quantity
}

// Entries returns the selection in insertion order. The returned slice is
// a copy; quantities are copied by value.
func (s *Selection) Entries() []models.SelectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.SelectionEntry, 0, len(s.order))
	for _, item := range s.order {
		entry := models.SelectionEntry{Item: item}
		if q := s.quantities[item]; q != nil {
			quantity := *q
			entry.Quantity = &quantity
		}
		entries = append(entries, entry)
	}
	return entries
}

// Clear empties the selection. Called after a successful submission or a
// view reset.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.quantities = make(map[string]*int)
}

// remove expects the lock to be held.
func (s *Selection) remove(item string) {
	if _, ok := s.quantities[item]; !ok {
		return
	}
	delete(s.quantities, item)
	for i, name := range s.order {
		if name == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
