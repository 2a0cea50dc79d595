package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/pkg/ids"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	unitRepo repository.UnitRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, unitRepo repository.UnitRepository) *UserUseCase {
	return &UserUseCase{repo: repo, unitRepo: unitRepo}
}

// Create hashea el password con bcrypt y persiste el usuario.
// Los roles editor y viewer requieren unidad. domain.ErrUsernameTaken si el username existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkUnit(ctx, in.Role, in.UnitID); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	displayName := in.DisplayName
	if displayName == "" {
		displayName = username
	}
	user := &entity.User{
		ID:           ids.New(ids.PrefixUser),
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		UnitID:       in.UnitID,
		SectorID:     in.SectorID,
		Permissions:  in.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// checkUnit: roles de unidad necesitan una unidad existente.
func (uc *UserUseCase) checkUnit(ctx context.Context, role, unitID string) error {
	if unitID == "" {
		if entity.IsGlobalRole(role) {
			return nil
		}
		return domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Update aplica los campos presentes; Password nil conserva el actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.UnitID != nil {
		user.UnitID = *in.UnitID
	}
	if in.SectorID != nil {
		user.SectorID = *in.SectorID
	}
	if in.Permissions != nil {
		user.Permissions = in.Permissions
	}
	if err := uc.checkUnit(ctx, user.Role, user.UnitID); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Count: len(items)},
	}, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
