package repository

import (
	"context"
	"errors"

	"online-food/internal/domain/model"
)

// 参照先が見つからないを統一
var ErrNotFound = errors.New("not found")

// emailのユニーク制約違反
var ErrDuplicateEmail = errors.New("email already exists")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, userID int64) error
}
