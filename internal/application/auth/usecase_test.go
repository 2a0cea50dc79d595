package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Toner-api/internal/application/auth"
	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/usecase"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
	"github.com/jhoicas/Toner-api/pkg/jwt"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Units().Create(ctx, &entity.Unit{ID: "u_central", Name: "Central"}))

	users := usecase.NewUserUseCase(store.Users(), store.Units())
	created, err := users.Create(ctx, dto.CreateUserRequest{
		Username: "maria", Password: "secreto123", Role: entity.RoleEditor, UnitID: "u_central",
	})
	require.NoError(t, err)

	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: "s3cr3t", ExpMinutes: 10, Issuer: "toner-api"})

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: " maria ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.User.ID)

	userID, unitID, role, err := jwt.Parse("s3cr3t", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "u_central", unitID)
	assert.Equal(t, entity.RoleEditor, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	me, err := uc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria", me.Username)
}
