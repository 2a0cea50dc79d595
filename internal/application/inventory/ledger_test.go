package inventory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
)

type fakeMetrics struct {
	mu        sync.Mutex
	mutations map[string]int
	rejected  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{mutations: map[string]int{}, rejected: map[string]int{}}
}

func (m *fakeMetrics) StockMutation(txType string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations[txType] += quantity
}

func (m *fakeMetrics) StockRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func newLedger(t *testing.T) (*inventory.StockLedger, *memory.Store, *fakeMetrics) {
	t.Helper()
	store := memory.NewStore()
	seedCatalog(t, store, []string{"u1", "u2", "u3", "u9"}, []string{"t1", "t2", "t3", "t4", "t9"})
	metrics := newFakeMetrics()
	return inventory.NewStockLedger(store, store.Stock(), store.Transactions(), metrics), store, metrics
}

// seedCatalog da de alta las unidades e insumos que exigen las entradas de stock.
func seedCatalog(t *testing.T, store *memory.Store, unitIDs, itemIDs []string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range unitIDs {
		require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: id, Name: id}))
	}
	for _, id := range itemIDs {
		require.NoError(t, store.Items().Create(ctx, &entity.SupplyItem{ID: id, Model: id, Color: entity.ColorBlack, Active: true}))
	}
}

func seedQuantity(t *testing.T, ledger *inventory.StockLedger, unitID, itemID string, qty int) {
	t.Helper()
	if qty == 0 {
		return
	}
	_, err := ledger.ApplyDelta(context.Background(), inventory.DeltaInput{
		UnitID: unitID, ItemID: itemID, Delta: qty, ActorID: "usr_seed", Type: entity.TransactionTypeADD, Reason: "carga inicial",
	})
	require.NoError(t, err)
}

func quantityOf(t *testing.T, store *memory.Store, unitID, itemID string) int {
	t.Helper()
	e, err := store.Stock().Get(context.Background(), unitID, itemID)
	require.NoError(t, err)
	return e.Quantity
}

func transactionsOf(t *testing.T, store *memory.Store, unitID, itemID string) []*entity.Transaction {
	t.Helper()
	list, err := store.Transactions().List(context.Background(), repository.TransactionFilter{UnitID: unitID, ItemID: itemID})
	require.NoError(t, err)
	return list
}

// Escenario 1: stock 4, debitar 5 → insuficiente, sin cambios ni registro.
func TestApplyDelta_StockInsuficienteNoMuta(t *testing.T) {
	ctx := context.Background()
	ledger, store, metrics := newLedger(t)
	seedQuantity(t, ledger, "u1", "t1", 4)

	rec, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{
		UnitID: "u1", ItemID: "t1", Delta: -5, ActorID: "usr_admin", Type: entity.TransactionTypeREMOVE, Reason: "retiro",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, rec)
	assert.Equal(t, 4, quantityOf(t, store, "u1", "t1"))
	assert.Len(t, transactionsOf(t, store, "u1", "t1"), 1, "solo la carga inicial")
	assert.Equal(t, 1, metrics.rejected["insufficient_stock"])
}

func TestApplyDelta_RegistraMagnitudYActor(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	seedQuantity(t, ledger, "u1", "t1", 10)

	rec, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{
		UnitID: "u1", ItemID: "t1", Delta: -3, ActorID: "usr_admin", Type: entity.TransactionTypeREMOVE, Reason: "retiro",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, rec.Quantity)
	assert.Equal(t, entity.TransactionTypeREMOVE, rec.Type)
	assert.Equal(t, "usr_admin", rec.UserID)
	assert.Equal(t, "u1", rec.UnitID)
	assert.Equal(t, "t1", rec.ItemID)
	assert.Equal(t, "retiro", rec.Reason)
	assert.False(t, rec.Timestamp.IsZero())
	assert.Equal(t, 7, quantityOf(t, store, "u1", "t1"))
}

// Secuencia mixta: la cantidad nunca baja de cero y hay un registro por mutación exitosa.
func TestApplyDelta_SecuenciaNoNegativaYAuditada(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)

	deltas := []int{5, -2, -4, 3, -6, -6, 10, -1, -9, -1}
	expected := 0
	succeeded := 0
	for _, d := range deltas {
		typ := entity.TransactionTypeADD
		if d < 0 {
			typ = entity.TransactionTypeREMOVE
		}
		_, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u1", ItemID: "t1", Delta: d, ActorID: "usr_1", Type: typ})
		if expected+d < 0 {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		} else {
			require.NoError(t, err)
			expected += d
			succeeded++
		}
		require.Equal(t, expected, quantityOf(t, store, "u1", "t1"))
		require.GreaterOrEqual(t, quantityOf(t, store, "u1", "t1"), 0)
	}

	txs := transactionsOf(t, store, "u1", "t1")
	assert.Len(t, txs, succeeded)
	for _, tx := range txs {
		assert.Positive(t, tx.Quantity)
	}
}

func TestApplyDelta_AjusteAdmiteAmbosSignos(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)

	_, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u1", ItemID: "t1", Delta: 8, ActorID: "usr_admin", Type: entity.TransactionTypeADJUSTMENT, Reason: "Ajuste manual"})
	require.NoError(t, err)
	rec, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u1", ItemID: "t1", Delta: -3, ActorID: "usr_admin", Type: entity.TransactionTypeADJUSTMENT, Reason: "Ajuste manual"})
	require.NoError(t, err)

	assert.Equal(t, 3, rec.Quantity)
	assert.Equal(t, 5, quantityOf(t, store, "u1", "t1"))

	_, err = ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u1", ItemID: "t1", Delta: -6, ActorID: "usr_admin", Type: entity.TransactionTypeADJUSTMENT})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyDelta_EntradaInvalida(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)

	cases := map[string]inventory.DeltaInput{
		"delta cero":         {UnitID: "u1", ItemID: "t1", Delta: 0, Type: entity.TransactionTypeADD},
		"ADD negativo":       {UnitID: "u1", ItemID: "t1", Delta: -1, Type: entity.TransactionTypeADD},
		"REMOVE positivo":    {UnitID: "u1", ItemID: "t1", Delta: 1, Type: entity.TransactionTypeREMOVE},
		"TRANSFER reservado": {UnitID: "u1", ItemID: "t1", Delta: 1, Type: entity.TransactionTypeTRANSFER},
		"tipo desconocido":   {UnitID: "u1", ItemID: "t1", Delta: 1, Type: "GIFT"},
		"sin unidad":         {ItemID: "t1", Delta: 1, Type: entity.TransactionTypeADD},
		"sin insumo":         {UnitID: "u1", Delta: 1, Type: entity.TransactionTypeADD},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ledger.ApplyDelta(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, transactionsOf(t, store, "", ""))
}

func TestApplyDelta_CreaEntradaPerezosa(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)

	e, err := ledger.GetEntry(ctx, "u9", "t9")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Quantity)

	_, err = ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u9", ItemID: "t9", Delta: 2, ActorID: "usr_1", Type: entity.TransactionTypeADD})
	require.NoError(t, err)

	entries, err := ledger.GetEntries(ctx, repository.StockFilter{UnitID: "u9"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, entity.DefaultMinStockAlert, entries[0].MinStockAlert)
	assert.Equal(t, 2, quantityOf(t, store, "u9", "t9"))
}

func TestApplyDelta_UnidadDesconocidaNoRegistra(t *testing.T) {
	ctx := context.Background()
	ledger, store, metrics := newLedger(t)

	_, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u_typo", ItemID: "t1", Delta: 4, ActorID: "usr_1", Type: entity.TransactionTypeADD})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = ledger.ApplyDelta(ctx, inventory.DeltaInput{UnitID: "u1", ItemID: "no_such_item", Delta: 7, ActorID: "usr_1", Type: entity.TransactionTypeADD})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, transactionsOf(t, store, "", ""))
	assert.Empty(t, metrics.mutations)
}

// Débitos concurrentes sobre la misma entrada: exactamente `initial` tienen éxito.
func TestApplyDelta_DebitosConcurrentesNoSobregiran(t *testing.T) {
	ctx := context.Background()
	ledger, store, _ := newLedger(t)
	const initial = 20
	const workers = 50
	seedQuantity(t, ledger, "u1", "t1", initial)

	var ok, insufficient int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{
				UnitID: "u1", ItemID: "t1", Delta: -1, ActorID: "usr_1", Type: entity.TransactionTypeREMOVE,
			})
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				atomic.AddInt64(&insufficient, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(initial), ok)
	assert.Equal(t, int64(workers-initial), insufficient)
	assert.Equal(t, 0, quantityOf(t, store, "u1", "t1"))
	assert.Len(t, transactionsOf(t, store, "u1", "t1"), initial+1)
}

func TestGetLowStock_UmbralInclusivo(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedger(t)
	seedQuantity(t, ledger, "u1", "t1", 5)
	seedQuantity(t, ledger, "u1", "t2", 6)
	seedQuantity(t, ledger, "u2", "t1", 1)

	low, err := ledger.GetLowStock(ctx, "")
	require.NoError(t, err)
	require.Len(t, low, 2)
	for _, e := range low {
		assert.LessOrEqual(t, e.Quantity, e.MinStockAlert)
	}

	require.NoError(t, ledger.UpdateMinStockAlert(ctx, "u1", "t2", 10))
	low, err = ledger.GetLowStock(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, low, 2)

	assert.ErrorIs(t, ledger.UpdateMinStockAlert(ctx, "u1", "t2", -1), domain.ErrInvalidInput)
}

func TestListTransactions_MasRecientePrimeroYAcotado(t *testing.T) {
	ctx := context.Background()
	ledger, _, _ := newLedger(t)
	ledger.WithTransactionsLimit(3)
	for i := 1; i <= 5; i++ {
		seedQuantity(t, ledger, "u1", "t1", i)
	}

	list, err := ledger.ListTransactions(ctx, repository.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 5, list[0].Quantity)
	assert.Equal(t, 4, list[1].Quantity)
	assert.Equal(t, 3, list[2].Quantity)

	list, err = ledger.ListTransactions(ctx, repository.TransactionFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
