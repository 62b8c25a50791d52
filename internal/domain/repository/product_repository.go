package repository

import "github.com/agrostock/agrostock-api/internal/domain/entity"

// ProductRepository define el puerto de lectura del catálogo de productos.
// El ledger no es dueño del catálogo: solo valida referencias y lee umbrales.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	ListAll() ([]*entity.Product, error)
}
