package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type UserRepository interface {
	// Create 邮箱冲突返回 ErrDuplicate
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	// FindByEmail 找不到返回 nil, nil
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
	Count(ctx context.Context) (int64, error)
}
