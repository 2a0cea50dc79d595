package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

// SupplyItemUseCase casos de uso del catálogo de insumos.
type SupplyItemUseCase struct {
	repo      repository.SupplyItemRepository
	unitRepo  repository.UnitRepository
	stockRepo repository.StockRepository
}

// NewSupplyItemUseCase construye el caso de uso.
func NewSupplyItemUseCase(repo repository.SupplyItemRepository, unitRepo repository.UnitRepository, stockRepo repository.StockRepository) *SupplyItemUseCase {
	return &SupplyItemUseCase{repo: repo, unitRepo: unitRepo, stockRepo: stockRepo}
}

// Create da de alta un insumo (ID determinista por modelo y color) y siembra su entrada en cada unidad.
// Un insumo con el mismo modelo y color devuelve domain.ErrDuplicate.
func (uc *SupplyItemUseCase) Create(ctx context.Context, in dto.CreateSupplyItemRequest) (*dto.SupplyItemResponse, error) {
	model := strings.TrimSpace(in.Model)
	if model == "" || !entity.ValidColor(in.Color) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.SupplyItem{
		ID:        ids.Slug(ids.PrefixItem, model, in.Color),
		Model:     model,
		Color:     in.Color,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	units, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]*entity.StockEntry, 0, len(units))
	for _, u := range units {
		entries = append(entries, &entity.StockEntry{UnitID: u.ID, ItemID: item.ID, MinStockAlert: entity.DefaultMinStockAlert})
	}
	if err := uc.stockRepo.Seed(ctx, entries); err != nil {
		return nil, err
	}
	return toSupplyItemResponse(item), nil
}

// GetByID obtiene un insumo por ID.
func (uc *SupplyItemUseCase) GetByID(ctx context.Context, id string) (*dto.SupplyItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplyItemResponse(item), nil
}

// Update cambia modelo, color o estado. El ID se conserva.
func (uc *SupplyItemUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplyItemRequest) (*dto.SupplyItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Model != nil {
		model := strings.TrimSpace(*in.Model)
		if model == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Model = model
	}
	if in.Color != nil {
		if !entity.ValidColor(*in.Color) {
			return nil, domain.ErrInvalidInput
		}
		item.Color = *in.Color
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toSupplyItemResponse(item), nil
}

// List lista el catálogo; onlyActive filtra los dados de baja.
func (uc *SupplyItemUseCase) List(ctx context.Context, onlyActive bool) (*dto.SupplyItemListResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplyItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toSupplyItemResponse(it))
	}
	return &dto.SupplyItemListResponse{Items: items}, nil
}

// Delete elimina un insumo. Con historial devuelve domain.ErrConflict; usar Active=false en su lugar.
func (uc *SupplyItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toSupplyItemResponse(it *entity.SupplyItem) *dto.SupplyItemResponse {
	return &dto.SupplyItemResponse{
		ID:        it.ID,
		Model:     it.Model,
		Color:     it.Color,
		Active:    it.Active,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
