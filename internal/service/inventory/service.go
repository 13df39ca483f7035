package inventory

import (
	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
)

// Service bundles the store, the user's selection, and validation behind
// one dependency for the HTTP boundary and the transfer submitter.
type Service struct {
	store     *Store
	selection *Selection
	neutral   string
	logger    *zap.Logger
}

// NewService wires an inventory service around the given store.
func NewService(store *Store, neutral string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		selection: NewSelection(),
		neutral:   neutral,
		logger:    logger,
	}
}

// Store exposes the underlying snapshot store.
func (s *Service) Store() *Store {
	return s.store
}

// Neutral returns the configured neutral location.
func (s *Service) Neutral() string {
	return s.neutral
}

// Toggle flips an item in or out of the selection.
func (s *Service) Toggle(item string) bool {
	selected := s.selection.Toggle(item)
	s.logger.Debug("selection toggled", zap.String("item", item), zap.Bool("selected", selected))
	return selected
}

// SetQuantity applies a raw quantity edit to the selection.
func (s *Service) SetQuantity(item, raw string) {
	s.selection.SetQuantity(item, raw)
}

// Entries returns the current selection in insertion order.
func (s *Service) Entries() []models.SelectionEntry {
	return s.selection.Entries()
}

// ClearSelection empties the selection.
func (s *Service) ClearSelection() {
	s.selection.Clear()
}

// Issues recomputes the advisory validation issues for a route against the
// current stock snapshot.
func (s *Service) Issues(from, to string) []models.ValidationIssue {
	return Validate(s.selection.Entries(), s.store.Stock(), from, to, s.neutral)
}
