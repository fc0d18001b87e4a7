package domain

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// CanManageShop reports whether the role may use the admin dashboard.
func (r UserRole) CanManageShop() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

type CreateAdminDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdatePasswordDTO struct {
	Password string `json:"password" binding:"required,min=6"`
}
