package inventory

import "sync"

// ProductLocker serializa las operaciones de escritura por producto.
// Dos consumos concurrentes del mismo producto no pueden intercalar su
// read-modify-write sobre BaseQuantityRemaining; productos distintos no se
// bloquean entre sí (granularidad por producto, no global).
type ProductLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProductLocker construye el locker.
func NewProductLocker() *ProductLocker {
	return &ProductLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock adquiere el lock del producto y devuelve la función para liberarlo.
func (l *ProductLocker) Lock(productID string) func() {
	l.mu.Lock()
	m, ok := l.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[productID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
