package repository

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// EntryRepository define el puerto de persistencia para entradas de inventario.
// Update verifica la versión de la entrada (bloqueo optimista) y devuelve
// domain.ErrConflict si otra escritura ganó la carrera.
type EntryRepository interface {
	Create(entry *entity.InventoryEntry) error
	GetByID(id string) (*entity.InventoryEntry, error)
	Update(entry *entity.InventoryEntry) error
	ListByProduct(productID string) ([]*entity.InventoryEntry, error)
	ListAll() ([]*entity.InventoryEntry, error)
	// HasAnyByProduct distingue "nunca abastecido" de "agotado": valid stock 0
	// es indistinguible en ambos casos, este accesor no.
	HasAnyByProduct(productID string) (bool, error)
}
