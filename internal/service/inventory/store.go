package inventory

import (
	"sync"
	"time"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/domain/models"
)

// Store holds the current feed snapshots. Each snapshot is replaced
// wholesale by reference on a successful refresh and never patched in
// place, so readers always observe a single consistent generation of each
// feed. The catalog and summary refresh independently; observing them at
// different generations is accepted.
type Store struct {
	mu          sync.RWMutex
	catalog     models.Catalog
	stock       models.StockModel
	resources   []models.ResourceEntry
	ready       bool
	catalogAt   time.Time
	stockAt     time.Time
	resourcesAt time.Time
}

// Status reports snapshot freshness for the status endpoint.
type Status struct {
	Ready       bool       `json:"ready"`
	CatalogAt   *time.Time `json:"catalogRefreshedAt,omitempty"`
	StockAt     *time.Time `json:"stockRefreshedAt,omitempty"`
	ResourcesAt *time.Time `json:"resourcesRefreshedAt,omitempty"`
}

// NewStore creates an empty store. All snapshots start empty; the ready
// flag stays down until the refresher's startup gate opens.
func NewStore() *Store {
	return &Store{stock: models.StockModel{}}
}

// ReplaceCatalog swaps in a new catalog snapshot.
func (s *Store) ReplaceCatalog(catalog models.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.catalogAt = time.Now()
}

// Catalog returns the current catalog snapshot.
func (s *Store) Catalog() models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// ReplaceStock swaps in a new stock model snapshot.
func (s *Store) ReplaceStock(stock models.StockModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = stock
	s.stockAt = time.Now()
}

// Stock returns the current stock model snapshot.
func (s *Store) Stock() models.StockModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stock
}

// ReplaceResources swaps in a new resources directory snapshot.
func (s *Store) ReplaceResources(resources []models.ResourceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = resources
	s.resourcesAt = time.Now()
}

// Resources returns the current resources directory snapshot.
func (s *Store) Resources() []models.ResourceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources
}

// MarkReady opens the readiness gate. Called once by the refresher after
// the first successful summary fetch.
func (s *Store) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// Ready reports whether initial data has arrived.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// CurrentStatus snapshots the readiness flag and refresh times.
func (s *Store) CurrentStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{Ready: s.ready}
	if !s.catalogAt.IsZero() {
		t := s.catalogAt
		status.CatalogAt = &t
	}
	if !s.stockAt.IsZero() {
		t := s.stockAt
		status.StockAt = &t
	}
	if !s.resourcesAt.IsZero() {
		t := s.resourcesAt
		status.ResourcesAt = &t
	}
	return status
}
