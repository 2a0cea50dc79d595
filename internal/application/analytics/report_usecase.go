package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

// StockReportRow una línea del reporte: entrada de stock con nombres legibles.
type StockReportRow struct {
	UnitName      string
	Model         string
	Color         string
	Quantity      int
	MinStockAlert int
	Low           bool
}

// StockReport datos del reporte de stock listo para renderizar.
type StockReport struct {
	Scope         string // nombre de la unidad o "Todas las unidades"
	GeneratedAt   time.Time
	Rows          []StockReportRow
	TotalQuantity int
	LowCount      int
}

// StockReportRenderer genera el documento (PDF) a partir del reporte.
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report *StockReport) ([]byte, error)
}

// ReportUseCase arma el reporte de stock y delega el render.
type ReportUseCase struct {
	stockRepo repository.StockRepository
	unitRepo  repository.UnitRepository
	itemRepo  repository.SupplyItemRepository
	renderer  StockReportRenderer
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	stockRepo repository.StockRepository,
	unitRepo repository.UnitRepository,
	itemRepo repository.SupplyItemRepository,
	renderer StockReportRenderer,
) *ReportUseCase {
	return &ReportUseCase{stockRepo: stockRepo, unitRepo: unitRepo, itemRepo: itemRepo, renderer: renderer, now: time.Now}
}

// BuildStockReport junta entradas activas con nombres de unidad e insumo, ordenadas por unidad y modelo.
func (uc *ReportUseCase) BuildStockReport(ctx context.Context, unitID string) (*StockReport, error) {
	units, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	entries, err := uc.stockRepo.List(ctx, repository.StockFilter{UnitID: unitID})
	if err != nil {
		return nil, err
	}

	unitNames := make(map[string]string, len(units))
	unitOrder := make(map[string]int, len(units))
	for i, u := range units {
		unitNames[u.ID] = u.Name
		unitOrder[u.ID] = i
	}
	report := &StockReport{Scope: "Todas las unidades", GeneratedAt: uc.now(), Rows: make([]StockReportRow, 0, len(entries))}
	if unitID != "" {
		name, ok := unitNames[unitID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		report.Scope = name
	}

	type itemInfo struct{ model, color string }
	itemByID := make(map[string]itemInfo, len(items))
	for _, it := range items {
		itemByID[it.ID] = itemInfo{it.Model, it.Color}
	}

	type ordered struct {
		row   StockReportRow
		order int
	}
	rows := make([]ordered, 0, len(entries))
	for _, e := range entries {
		if !e.IsActive {
			continue
		}
		it, ok := itemByID[e.ItemID]
		if !ok {
			it = itemInfo{model: e.ItemID}
		}
		name, ok := unitNames[e.UnitID]
		if !ok {
			name = e.UnitID
		}
		r := StockReportRow{
			UnitName:      name,
			Model:         it.model,
			Color:         it.color,
			Quantity:      e.Quantity,
			MinStockAlert: e.MinStockAlert,
			Low:           e.IsLow(),
		}
		report.TotalQuantity += r.Quantity
		if r.Low {
			report.LowCount++
		}
		order, ok := unitOrder[e.UnitID]
		if !ok {
			order = len(units)
		}
		rows = append(rows, ordered{row: r, order: order})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].order != rows[j].order {
			return rows[i].order < rows[j].order
		}
		if rows[i].row.Model != rows[j].row.Model {
			return rows[i].row.Model < rows[j].row.Model
		}
		return rows[i].row.Color < rows[j].row.Color
	})
	for _, r := range rows {
		report.Rows = append(report.Rows, r.row)
	}
	return report, nil
}

// StockReportPDF arma el reporte y lo renderiza.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context, unitID string) ([]byte, error) {
	report, err := uc.BuildStockReport(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderStockReport(ctx, report)
}
