package memory

import (
	"sort"
	"sync"

	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos en memoria (tests y uso embebido).
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

// NewProductRepository construye el catálogo vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

// Put agrega o reemplaza un producto del catálogo.
func (r *ProductRepo) Put(product *entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *product
	r.products[product.ID] = &c
}

// GetByID devuelve una copia del producto, nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

// ListAll lista el catálogo ordenado por nombre.
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		c := *p
		list = append(list, &c)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
