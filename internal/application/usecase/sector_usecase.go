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

// SectorUseCase casos de uso para sectores de una unidad.
type SectorUseCase struct {
	repo repository.SectorRepository
}

// NewSectorUseCase construye el caso de uso.
func NewSectorUseCase(repo repository.SectorRepository) *SectorUseCase {
	return &SectorUseCase{repo: repo}
}

// Create crea un sector; la unidad debe existir (domain.ErrNotFound si no).
func (uc *SectorUseCase) Create(ctx context.Context, in dto.CreateSectorRequest) (*dto.SectorResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	sector := &entity.Sector{
		ID:        ids.Unique(ids.PrefixSector, name),
		UnitID:    in.UnitID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, sector); err != nil {
		return nil, err
	}
	return toSectorResponse(sector), nil
}

// GetByID obtiene un sector.
func (uc *SectorUseCase) GetByID(ctx context.Context, id string) (*dto.SectorResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSectorResponse(s), nil
}

// Update renombra un sector.
func (uc *SectorUseCase) Update(ctx context.Context, id string, in dto.UpdateSectorRequest) (*dto.SectorResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	s.Name = name
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSectorResponse(s), nil
}

// List lista sectores de la unidad ("" = todos).
func (uc *SectorUseCase) List(ctx context.Context, unitID string) (*dto.SectorListResponse, error) {
	list, err := uc.repo.List(ctx, unitID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectorResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSectorResponse(s))
	}
	return &dto.SectorListResponse{Items: items}, nil
}

// Delete elimina un sector.
func (uc *SectorUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toSectorResponse(s *entity.Sector) *dto.SectorResponse {
	return &dto.SectorResponse{ID: s.ID, UnitID: s.UnitID, Name: s.Name, CreatedAt: s.CreatedAt}
}
