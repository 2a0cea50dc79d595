package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Toner-api/internal/application/analytics"
	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
)

type pendingStub struct {
	n   int
	err error
}

func (p pendingStub) PendingCount(context.Context, string) (int, error) { return p.n, p.err }

type rendererStub struct{ got *analytics.StockReport }

func (r *rendererStub) RenderStockReport(_ context.Context, rep *analytics.StockReport) ([]byte, error) {
	r.got = rep
	return []byte("%PDF-stub"), nil
}

// Dos unidades, dos insumos. u1/t1=10, u1/t2=3 (baja), u2/t1=0 (baja).
func seeded(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: "u1", Name: "Central", DisplayOrder: 0}))
	require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: "u2", Name: "Anexo", DisplayOrder: 1}))
	require.NoError(t, store.Items().Create(ctx, &entity.SupplyItem{ID: "t1", Model: "HP 26A", Color: entity.ColorBlack, Active: true}))
	require.NoError(t, store.Items().Create(ctx, &entity.SupplyItem{ID: "t2", Model: "HP 410A", Color: entity.ColorCyan, Active: true}))

	ledger := inventory.NewStockLedger(store, store.Stock(), store.Transactions(), nil)
	for _, s := range []struct {
		unit, item string
		qty        int
	}{{"u1", "t1", 10}, {"u1", "t2", 3}} {
		_, err := ledger.ApplyDelta(ctx, inventory.DeltaInput{
			UnitID: s.unit, ItemID: s.item, Delta: s.qty, ActorID: "usr_admin", Type: entity.TransactionTypeADD,
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.Stock().Seed(ctx, []*entity.StockEntry{{UnitID: "u2", ItemID: "t1"}}))
	return store
}

func TestDashboard_Resumen(t *testing.T) {
	store := seeded(t)
	uc := analytics.NewDashboardUseCase(store.Stock(), store.Transactions(), store.Units(), store.Items(), pendingStub{n: 4})

	summary, err := uc.GetSummary(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 13, summary.TotalStock)
	assert.Equal(t, 2, summary.LowStockCount)
	assert.Equal(t, 4, summary.PendingRequests)
	require.Len(t, summary.StockByUnit, 2)
	assert.Equal(t, "Central", summary.StockByUnit[0].UnitName)
	assert.Equal(t, 13, summary.StockByUnit[0].Quantity)
	assert.Equal(t, 1, summary.StockByUnit[0].LowStock)
	assert.Equal(t, "Anexo", summary.StockByUnit[1].UnitName)
	assert.Len(t, summary.RecentTransactions, 2)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestDashboard_AcotadoAUnidad(t *testing.T) {
	store := seeded(t)
	uc := analytics.NewDashboardUseCase(store.Stock(), store.Transactions(), store.Units(), store.Items(), pendingStub{})

	summary, err := uc.GetSummary(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalStock)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Empty(t, summary.RecentTransactions)
	require.Len(t, summary.StockByUnit, 1)
	assert.Equal(t, "u2", summary.StockByUnit[0].UnitID)
}

func TestDashboard_PropagaError(t *testing.T) {
	store := seeded(t)
	boom := errors.New("redis caído")
	uc := analytics.NewDashboardUseCase(store.Stock(), store.Transactions(), store.Units(), store.Items(), pendingStub{err: boom})

	_, err := uc.GetSummary(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}

func TestReport_OrdenYTotales(t *testing.T) {
	store := seeded(t)
	r := &rendererStub{}
	uc := analytics.NewReportUseCase(store.Stock(), store.Units(), store.Items(), r)

	pdf, err := uc.StockReportPDF(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)

	rep := r.got
	require.NotNil(t, rep)
	assert.Equal(t, "Todas las unidades", rep.Scope)
	assert.Equal(t, 13, rep.TotalQuantity)
	assert.Equal(t, 2, rep.LowCount)
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "Central", rep.Rows[0].UnitName)
	assert.Equal(t, "HP 26A", rep.Rows[0].Model)
	assert.Equal(t, "HP 410A", rep.Rows[1].Model)
	assert.True(t, rep.Rows[1].Low)
	assert.Equal(t, "Anexo", rep.Rows[2].UnitName)
}

func TestReport_UnidadDesconocida(t *testing.T) {
	store := seeded(t)
	uc := analytics.NewReportUseCase(store.Stock(), store.Units(), store.Items(), &rendererStub{})

	rep, err := uc.BuildStockReport(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, "Anexo", rep.Scope)
	assert.Len(t, rep.Rows, 1)

	_, err = uc.BuildStockReport(context.Background(), "u_nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
