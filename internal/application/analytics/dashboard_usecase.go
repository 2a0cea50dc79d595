// Package analytics contiene los casos de uso de lectura agregada: dashboard y reporte de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

const dashboardRecentTransactions = 10 // registros del widget de actividad reciente

// PendingCounter cuenta solicitudes PENDING ("" = todas las unidades).
type PendingCounter interface {
	PendingCount(ctx context.Context, unitID string) (int, error)
}

// DashboardUseCase genera el resumen del panel principal.
type DashboardUseCase struct {
	stockRepo repository.StockRepository
	txRepo    repository.TransactionRepository
	unitRepo  repository.UnitRepository
	itemRepo  repository.SupplyItemRepository
	pending   PendingCounter
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository,
	unitRepo repository.UnitRepository,
	itemRepo repository.SupplyItemRepository,
	pending PendingCounter,
) *DashboardUseCase {
	return &DashboardUseCase{
		stockRepo: stockRepo,
		txRepo:    txRepo,
		unitRepo:  unitRepo,
		itemRepo:  itemRepo,
		pending:   pending,
		now:       time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO. unitID vacío agrega todas las unidades.
//
// Cinco lecturas en paralelo: entradas, historial reciente, unidades, catálogo y pendientes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, unitID string) (*dto.DashboardSummaryDTO, error) {
	var (
		entries []*entity.StockEntry
		recent  []*entity.Transaction
		units   []*entity.Unit
		items   []*entity.SupplyItem
		pending int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = uc.stockRepo.List(gctx, repository.StockFilter{UnitID: unitID})
		if err != nil {
			return fmt.Errorf("dashboard: stock: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = uc.txRepo.List(gctx, repository.TransactionFilter{UnitID: unitID, Limit: dashboardRecentTransactions})
		if err != nil {
			return fmt.Errorf("dashboard: historial: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		units, err = uc.unitRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: unidades: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = uc.itemRepo.List(gctx, true)
		if err != nil {
			return fmt.Errorf("dashboard: catálogo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pending, err = uc.pending.PendingCount(gctx, unitID)
		if err != nil {
			return fmt.Errorf("dashboard: pendientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummaryDTO{
		ItemCount:          len(items),
		PendingRequests:    pending,
		StockByUnit:        make([]dto.UnitStockDTO, 0),
		RecentTransactions: make([]dto.TransactionResponse, 0, len(recent)),
		GeneratedAt:        uc.now(),
	}

	byUnit := make(map[string]*dto.UnitStockDTO)
	for _, e := range entries {
		if !e.IsActive {
			continue
		}
		summary.TotalStock += e.Quantity
		agg, ok := byUnit[e.UnitID]
		if !ok {
			agg = &dto.UnitStockDTO{UnitID: e.UnitID}
			byUnit[e.UnitID] = agg
		}
		agg.Quantity += e.Quantity
		if e.IsLow() {
			summary.LowStockCount++
			agg.LowStock++
		}
	}
	// Orden de las unidades (display_order); unidades sin entradas se omiten.
	for _, u := range units {
		if agg, ok := byUnit[u.ID]; ok {
			agg.UnitName = u.Name
			summary.StockByUnit = append(summary.StockByUnit, *agg)
		}
	}

	for _, t := range recent {
		summary.RecentTransactions = append(summary.RecentTransactions, dto.NewTransactionResponse(t))
	}
	return summary, nil
}
