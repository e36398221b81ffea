package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"
)

type RestaurantUsecase struct {
	restaurantRepo repo.RestaurantRepository
}

func NewRestaurantUsecase(restaurantRepo repo.RestaurantRepository) *RestaurantUsecase {
	return &RestaurantUsecase{restaurantRepo: restaurantRepo}
}

type CreateRestaurantInput struct {
	Name      string
	Address   string
	ManagerID int64
}

func (u *RestaurantUsecase) Create(ctx context.Context, in CreateRestaurantInput) (model.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if in.ManagerID <= 0 {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid manager_id")
	}

	rest := model.Restaurant{
		Name:      strings.TrimSpace(in.Name),
		Address:   strings.TrimSpace(in.Address),
		ManagerID: in.ManagerID,
	}

	id, err := u.restaurantRepo.Create(ctx, rest)
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	rest.ID = id

	return rest, nil
}

func (u *RestaurantUsecase) GetByID(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	if restaurantID <= 0 {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	rest, err := u.restaurantRepo.FindByID(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rest, nil
}

func (u *RestaurantUsecase) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	items, err := u.restaurantRepo.ListAll(ctx)
	if err != nil {
		return []model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *RestaurantUsecase) ListByManager(ctx context.Context, managerID int64) ([]model.Restaurant, error) {
	if managerID <= 0 {
		return []model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid manager_id")
	}

	items, err := u.restaurantRepo.ListByManagerID(ctx, managerID)
	if err != nil {
		return []model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 所有チェックは無し（元仕様のまま）。
func (u *RestaurantUsecase) Delete(ctx context.Context, restaurantID int64) error {
	if restaurantID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.restaurantRepo.Delete(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
