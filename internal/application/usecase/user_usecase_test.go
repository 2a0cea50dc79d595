package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/usecase"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
)

func TestUser_CreateHasheaYValidaUnidad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: "u_central", Name: "Central"}))
	uc := usecase.NewUserUseCase(store.Users(), store.Units())

	admin, err := uc.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "supersecreto", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.DisplayName)
	assert.Empty(t, admin.UnitID)
	assert.NotNil(t, admin.Permissions)

	stored, err := store.Users().GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "supersecreto", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecreto")))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "otrosecreto", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// editor y viewer necesitan unidad.
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ed", Password: "secreto123", Role: entity.RoleEditor})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ed", Password: "secreto123", Role: entity.RoleEditor, UnitID: "u_nada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ed", Password: "secreto123", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUser_UpdateConservaPassword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: "u_central", Name: "Central"}))
	uc := usecase.NewUserUseCase(store.Users(), store.Units())

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto123", Role: entity.RoleViewer, UnitID: "u_central"})
	require.NoError(t, err)
	before, _ := store.Users().GetByID(ctx, u.ID)

	role := entity.RoleEditor
	display := "Ana Pérez"
	updated, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: &role, DisplayName: &display})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, updated.Role)
	assert.Equal(t, "Ana Pérez", updated.DisplayName)

	after, _ := store.Users().GetByID(ctx, u.ID)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	list, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
