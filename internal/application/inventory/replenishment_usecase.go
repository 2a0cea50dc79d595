package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
)

const (
	consumptionWindow    = 90 * 24 * time.Hour
	consumptionScanLimit = 500
)

// ReplenishmentUseCase genera la lista de reposición para las entradas en alerta.
// Combina el stock con el consumo reciente (REMOVE) para priorizar los insumos críticos.
type ReplenishmentUseCase struct {
	stockRepo repository.StockRepository
	txRepo    repository.TransactionRepository
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(stockRepo repository.StockRepository, txRepo repository.TransactionRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{stockRepo: stockRepo, txRepo: txRepo, now: time.Now}
}

// GenerateReplenishmentList devuelve las entradas en o bajo el umbral con la cantidad sugerida
// para volver a 1.5x el umbral. unitID vacío considera todas las unidades.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, unitID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.stockRepo.ListLowStock(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	recent, err := uc.txRepo.List(ctx, repository.TransactionFilter{UnitID: unitID, Limit: consumptionScanLimit})
	if err != nil {
		return nil, err
	}
	since := uc.now().Add(-consumptionWindow)
	consumed := make(map[string]int)
	for _, t := range recent {
		if t.Type != entity.TransactionTypeREMOVE || t.Timestamp.Before(since) {
			continue
		}
		consumed[t.UnitID+"|"+t.ItemID] += t.Quantity
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, e := range low {
		ideal := (e.MinStockAlert*3 + 1) / 2
		if ideal < 1 {
			ideal = 1
		}
		suggested := ideal - e.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			UnitID:             e.UnitID,
			ItemID:             e.ItemID,
			CurrentStock:       e.Quantity,
			MinStockAlert:      e.MinStockAlert,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			ConsumedLast90Days: consumed[e.UnitID+"|"+e.ItemID],
		})
	}

	// Primero las agotadas, luego mayor consumo y finalmente mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		if a.ConsumedLast90Days != b.ConsumedLast90Days {
			return a.ConsumedLast90Days > b.ConsumedLast90Days
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
