package dto

import (
	"time"

	"github.com/jhoicas/Toner-api/internal/domain/entity"
)

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=60"`
	Password    string   `json:"password" validate:"required,min=8"`
	DisplayName string   `json:"display_name" validate:"omitempty,max=200"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"omitempty,max=40"`
	Role        string   `json:"role" validate:"required,oneof=admin support editor viewer"`
	UnitID      string   `json:"unit_id"`
	SectorID    string   `json:"sector_id"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest entrada para actualizar un usuario; Password vacío conserva el actual.
type UpdateUserRequest struct {
	Password    *string  `json:"password" validate:"omitempty,min=8"`
	DisplayName *string  `json:"display_name" validate:"omitempty,max=200"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,max=40"`
	Role        *string  `json:"role" validate:"omitempty,oneof=admin support editor viewer"`
	UnitID      *string  `json:"unit_id"`
	SectorID    *string  `json:"sector_id"`
	Permissions []string `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	UnitID      string    `json:"unit_id,omitempty"`
	SectorID    string    `json:"sector_id,omitempty"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse mapea la entidad a la salida HTTP sin el hash del password.
func NewUserResponse(u *entity.User) UserResponse {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		UnitID:      u.UnitID,
		SectorID:    u.SectorID,
		Permissions: perms,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
