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

// UnitUseCase casos de uso CRUD para unidades.
type UnitUseCase struct {
	repo      repository.UnitRepository
	itemRepo  repository.SupplyItemRepository
	stockRepo repository.StockRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository, itemRepo repository.SupplyItemRepository, stockRepo repository.StockRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo, itemRepo: itemRepo, stockRepo: stockRepo}
}

// Create crea una unidad y siembra una entrada de stock en 0 por cada insumo activo.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	unit := &entity.Unit{
		ID:           ids.Unique(ids.PrefixUnit, name),
		Name:         name,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	entries := make([]*entity.StockEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, &entity.StockEntry{UnitID: unit.ID, ItemID: it.ID, MinStockAlert: entity.DefaultMinStockAlert})
	}
	if err := uc.stockRepo.Seed(ctx, entries); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// GetByID obtiene una unidad por ID.
func (uc *UnitUseCase) GetByID(ctx context.Context, id string) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return toUnitResponse(unit), nil
}

// Update renombra o reordena una unidad.
func (uc *UnitUseCase) Update(ctx context.Context, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		unit.Name = name
	}
	if in.DisplayOrder != nil {
		unit.DisplayOrder = *in.DisplayOrder
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// List lista todas las unidades.
func (uc *UnitUseCase) List(ctx context.Context) (*dto.UnitListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{Items: items}, nil
}

// Delete elimina una unidad. Con historial de movimientos devuelve domain.ErrConflict.
func (uc *UnitUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		DisplayOrder: u.DisplayOrder,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
