package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
)

// failingTxRepo falla en la N-ésima escritura del historial dentro de una transacción.
type failingTxRepo struct {
	repository.TransactionRepository
	calls  *int
	failOn int
}

func (f failingTxRepo) Append(ctx context.Context, tx *entity.Transaction) error {
	*f.calls++
	if *f.calls == f.failOn {
		return fmt.Errorf("append transaction: %w", domain.ErrPersistence)
	}
	return f.TransactionRepository.Append(ctx, tx)
}

type failingRunner struct {
	store  *memory.Store
	failOn int
}

func (r failingRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.TransactionRepository, repository.RequestRepository) error) error {
	calls := 0
	return r.store.Run(ctx, func(s repository.StockRepository, tx repository.TransactionRepository, req repository.RequestRepository) error {
		return fn(s, failingTxRepo{TransactionRepository: tx, calls: &calls, failOn: r.failOn}, req)
	})
}

// Escenario 2: U1=15, U2=50, transferir 10 → U1=5, U2=60 y dos registros.
func TestTransfer_ConservaCantidadTotal(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	coordinator := inventory.NewTransferCoordinator(store, ledger)
	seedQuantity(t, ledger, "u1", "t1", 15)
	seedQuantity(t, ledger, "u2", "t1", 50)

	res, err := coordinator.Transfer(ctx, inventory.TransferInput{
		SourceUnitID: "u1", DestUnitID: "u2", ItemID: "t1", Quantity: 10, ActorID: "usr_admin",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, quantityOf(t, store, "u1", "t1"))
	assert.Equal(t, 60, quantityOf(t, store, "u2", "t1"))

	assert.Equal(t, entity.TransactionTypeREMOVE, res.Debit.Type)
	assert.Equal(t, "u1", res.Debit.UnitID)
	assert.Equal(t, 10, res.Debit.Quantity)
	assert.Equal(t, "transfer to u2", res.Debit.Reason)

	assert.Equal(t, entity.TransactionTypeADD, res.Credit.Type)
	assert.Equal(t, "u2", res.Credit.UnitID)
	assert.Equal(t, 10, res.Credit.Quantity)
	assert.Equal(t, "transfer from u1", res.Credit.Reason)

	assert.NotEmpty(t, res.CorrelationID)
	assert.Equal(t, res.CorrelationID, res.Debit.CorrelationID)
	assert.Equal(t, res.CorrelationID, res.Credit.CorrelationID)
	assert.Equal(t, "usr_admin", res.Debit.UserID)
	assert.Equal(t, "usr_admin", res.Credit.UserID)

	assert.Len(t, transactionsOf(t, store, "u1", "t1"), 2)
	assert.Len(t, transactionsOf(t, store, "u2", "t1"), 2)
}

func TestTransfer_DestinoSinEntradaSeCrea(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	coordinator := inventory.NewTransferCoordinator(store, ledger)
	seedQuantity(t, ledger, "u1", "t1", 3)

	_, err := coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: "u1", DestUnitID: "u3", ItemID: "t1", Quantity: 3, ActorID: "usr_admin"})
	require.NoError(t, err)

	assert.Equal(t, 0, quantityOf(t, store, "u1", "t1"))
	assert.Equal(t, 3, quantityOf(t, store, "u3", "t1"))
}

func TestTransfer_DestinoDesconocidoNoMueveStock(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	coordinator := inventory.NewTransferCoordinator(store, ledger)
	seedQuantity(t, ledger, "u1", "t1", 10)

	_, err := coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: "u1", DestUnitID: "u_typo", ItemID: "t1", Quantity: 4, ActorID: "usr_admin"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 10, quantityOf(t, store, "u1", "t1"))
	assert.Len(t, transactionsOf(t, store, "", ""), 1, "solo la carga inicial")
	list, err := store.Stock().List(ctx, repository.StockFilter{UnitID: "u_typo"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransfer_OrigenInsuficienteNoTocaDestino(t *testing.T) {
	ctx := context.Background()
	ledger, store, metrics := newLedger(t)
	coordinator := inventory.NewTransferCoordinator(store, ledger)
	seedQuantity(t, ledger, "u1", "t1", 4)
	seedQuantity(t, ledger, "u2", "t1", 7)

	res, err := coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: "u1", DestUnitID: "u2", ItemID: "t1", Quantity: 5, ActorID: "usr_admin"})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, res)
	assert.Equal(t, 4, quantityOf(t, store, "u1", "t1"))
	assert.Equal(t, 7, quantityOf(t, store, "u2", "t1"))
	assert.Len(t, transactionsOf(t, store, "u1", "t1"), 1)
	assert.Len(t, transactionsOf(t, store, "u2", "t1"), 1)
	assert.Equal(t, 1, metrics.rejected["insufficient_stock"])
}

func TestTransfer_MismaUnidadEsInvalida(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	coordinator := inventory.NewTransferCoordinator(store, ledger)
	seedQuantity(t, ledger, "u1", "t1", 10)

	_, err := coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: "u1", DestUnitID: "u1", ItemID: "t1", Quantity: 1, ActorID: "usr_admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)

	for _, q := range []int{0, -3} {
		_, err = coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: "u1", DestUnitID: "u2", ItemID: "t1", Quantity: q, ActorID: "usr_admin"})
		assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
	}

	assert.Equal(t, 10, quantityOf(t, store, "u1", "t1"))
	assert.Len(t, transactionsOf(t, store, "", ""), 1)
}

// Si falla el crédito en destino, el débito en origen tampoco se confirma.
func TestTransfer_FalloEnDestinoRevierteOrigen(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	seedQuantity(t, ledger, "u1", "t1", 15)
	seedQuantity(t, ledger, "u2", "t1", 50)

	runner := failingRunner{store: store, failOn: 2}
	coordinator := inventory.NewTransferCoordinator(runner, ledger)

	_, err := coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: "u1", DestUnitID: "u2", ItemID: "t1", Quantity: 10, ActorID: "usr_admin"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 15, quantityOf(t, store, "u1", "t1"))
	assert.Equal(t, 50, quantityOf(t, store, "u2", "t1"))
	assert.Len(t, transactionsOf(t, store, "", ""), 2, "solo las cargas iniciales")
}

// Transferencias cruzadas concurrentes: la suma total del insumo se conserva.
func TestTransfer_CruzadasConcurrentesConservanTotal(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	coordinator := inventory.NewTransferCoordinator(store, ledger)
	seedQuantity(t, ledger, "u1", "t1", 30)
	seedQuantity(t, ledger, "u2", "t1", 30)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		src, dst := "u1", "u2"
		if i%2 == 1 {
			src, dst = dst, src
		}
		go func(src, dst string) {
			defer wg.Done()
			_, _ = coordinator.Transfer(ctx, inventory.TransferInput{SourceUnitID: src, DestUnitID: dst, ItemID: "t1", Quantity: 3, ActorID: "usr_admin"})
		}(src, dst)
	}
	wg.Wait()

	q1 := quantityOf(t, store, "u1", "t1")
	q2 := quantityOf(t, store, "u2", "t1")
	assert.Equal(t, 60, q1+q2)
	assert.GreaterOrEqual(t, q1, 0)
	assert.GreaterOrEqual(t, q2, 0)
}
