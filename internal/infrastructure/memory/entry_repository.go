package memory

import (
	"sort"
	"sync"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación en memoria de EntryRepository, para tests y uso
// embebido. Respeta el mismo contrato de versiones que el adaptador de
// PostgreSQL: Update con versión vencida devuelve domain.ErrConflict.
type EntryRepo struct {
	mu      sync.RWMutex
	entries map[string]*entity.InventoryEntry
}

// NewEntryRepository construye el repositorio vacío.
func NewEntryRepository() *EntryRepo {
	return &EntryRepo{entries: make(map[string]*entity.InventoryEntry)}
}

// Create guarda una copia de la entrada.
func (r *EntryRepo) Create(entry *entity.InventoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; ok {
		return domain.ErrDuplicate
	}
	r.entries[entry.ID] = cloneEntry(entry)
	return nil
}

// GetByID devuelve una copia de la entrada, nil si no existe.
func (r *EntryRepo) GetByID(id string) (*entity.InventoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	return cloneEntry(e), nil
}

// Update escribe la entrada si la versión coincide con la almacenada.
func (r *EntryRepo) Update(entry *entity.InventoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.entries[entry.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != entry.Version {
		return domain.ErrConflict
	}
	entry.Version++
	r.entries[entry.ID] = cloneEntry(entry)
	return nil
}

// ListByProduct lista copias de las entradas del producto en orden FEFO.
func (r *EntryRepo) ListByProduct(productID string) ([]*entity.InventoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.InventoryEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			list = append(list, cloneEntry(e))
		}
	}
	sortEntries(list)
	return list, nil
}

// ListAll lista copias de todas las entradas.
func (r *EntryRepo) ListAll() ([]*entity.InventoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.InventoryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, cloneEntry(e))
	}
	sortEntries(list)
	return list, nil
}

// HasAnyByProduct indica si el producto tiene al menos una entrada registrada.
func (r *EntryRepo) HasAnyByProduct(productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func sortEntries(list []*entity.InventoryEntry) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].ProductID != list[j].ProductID {
			return list[i].ProductID < list[j].ProductID
		}
		return list[i].ID < list[j].ID
	})
}

func cloneEntry(e *entity.InventoryEntry) *entity.InventoryEntry {
	c := *e
	if e.ExpirationDate != nil {
		exp := *e.ExpirationDate
		c.ExpirationDate = &exp
	}
	if e.UnitCost != nil {
		uc := *e.UnitCost
		c.UnitCost = &uc
	}
	if e.CostPerControlUnit != nil {
		cc := *e.CostPerControlUnit
		c.CostPerControlUnit = &cc
	}
	return &c
}
