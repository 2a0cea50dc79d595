// Package memory implementa los puertos de persistencia en memoria.
// Todas las transacciones se serializan con un único mutex y trabajan sobre una copia
// del estado que solo se publica si el callback termina sin error.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	units        map[string]*entity.Unit
	items        map[string]*entity.SupplyItem
	entries      map[string]*entity.StockEntry
	transactions []*entity.Transaction
	requests     map[string]*entity.TonerRequest
	sectors      map[string]*entity.Sector
	users        map[string]*entity.User
}

func newState() *state {
	return &state{
		units:    make(map[string]*entity.Unit),
		items:    make(map[string]*entity.SupplyItem),
		entries:  make(map[string]*entity.StockEntry),
		requests: make(map[string]*entity.TonerRequest),
		sectors:  make(map[string]*entity.Sector),
		users:    make(map[string]*entity.User),
	}
}

// clone copia el estado. Las transacciones son inmutables: basta con limitar la capacidad
// para que un append posterior no escriba sobre el arreglo compartido.
func (s *state) clone() *state {
	c := &state{
		units:        make(map[string]*entity.Unit, len(s.units)),
		items:        make(map[string]*entity.SupplyItem, len(s.items)),
		entries:      make(map[string]*entity.StockEntry, len(s.entries)),
		transactions: s.transactions[:len(s.transactions):len(s.transactions)],
		requests:     make(map[string]*entity.TonerRequest, len(s.requests)),
		sectors:      make(map[string]*entity.Sector, len(s.sectors)),
		users:        make(map[string]*entity.User, len(s.users)),
	}
	for k, v := range s.units {
		c.units[k] = copyUnit(v)
	}
	for k, v := range s.items {
		c.items[k] = copyItem(v)
	}
	for k, v := range s.entries {
		c.entries[k] = copyEntry(v)
	}
	for k, v := range s.requests {
		c.requests[k] = copyRequest(v)
	}
	for k, v := range s.sectors {
		c.sectors[k] = copySector(v)
	}
	for k, v := range s.users {
		c.users[k] = copyUser(v)
	}
	return c
}

// access abstrae si las operaciones corren sobre el store (con lock) o dentro de Run (sin lock).
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store almacenamiento en memoria; implementa inventory.TxRunner.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	requestRepo repository.RequestRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrPersistence, err)
	}

	work := s.st.clone()
	tx := txAccess{st: work}
	if err := fn(&StockRepo{db: tx}, &TransactionRepo{db: tx}, &RequestRepo{db: tx}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Stock devuelve el repositorio de stock fuera de transacción.
func (s *Store) Stock() *StockRepo { return &StockRepo{db: s} }

// Transactions devuelve el repositorio del historial fuera de transacción.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{db: s} }

// Requests devuelve el repositorio de solicitudes fuera de transacción.
func (s *Store) Requests() *RequestRepo { return &RequestRepo{db: s} }

// Units devuelve el repositorio de unidades.
func (s *Store) Units() *UnitRepo { return &UnitRepo{db: s} }

// Items devuelve el repositorio del catálogo de insumos.
func (s *Store) Items() *SupplyItemRepo { return &SupplyItemRepo{db: s} }

// Sectors devuelve el repositorio de sectores.
func (s *Store) Sectors() *SectorRepo { return &SectorRepo{db: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{db: s} }

type txAccess struct {
	st *state
}

func (a txAccess) read(fn func(st *state))             { fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

func copyUnit(u *entity.Unit) *entity.Unit {
	c := *u
	return &c
}

func copyItem(i *entity.SupplyItem) *entity.SupplyItem {
	c := *i
	return &c
}

func copyEntry(e *entity.StockEntry) *entity.StockEntry {
	c := *e
	return &c
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	return &c
}

func copyRequest(r *entity.TonerRequest) *entity.TonerRequest {
	c := *r
	if r.DecidedAt != nil {
		at := *r.DecidedAt
		c.DecidedAt = &at
	}
	return &c
}

func copySector(s *entity.Sector) *entity.Sector {
	c := *s
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	return &c
}
