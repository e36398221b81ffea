package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"
)

// メニュー一覧の読み取りキャッシュの約束（redis実装はinfra側）
type MenuItemCache interface {
	Get(ctx context.Context, restaurantID int64) ([]model.MenuItem, bool)
	Set(ctx context.Context, restaurantID int64, items []model.MenuItem)
	Invalidate(ctx context.Context, restaurantID int64)
}

type MenuItemUsecase struct {
	menuRepo       repo.MenuItemRepository
	restaurantRepo repo.RestaurantRepository
	cache          MenuItemCache // nilなら素通し
}

func NewMenuItemUsecase(
	menuRepo repo.MenuItemRepository,
	restaurantRepo repo.RestaurantRepository,
	cache MenuItemCache,
) *MenuItemUsecase {
	return &MenuItemUsecase{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		cache:          cache,
	}
}

type AddMenuItemInput struct {
	RestaurantID int64
	ManagerID    int64
	Name         string
	Description  string
	Price        int64
	Category     string
}

// Add はレストランのマネージャー本人だけがメニューを追加できる。
// 権限はambientな認証ではなく入力のmanagerIdで判定する（元仕様のまま）。
func (u *MenuItemUsecase) Add(ctx context.Context, in AddMenuItemInput) (model.MenuItem, error) {
	if in.RestaurantID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid restaurant_id")
	}
	if in.ManagerID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid manager_id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	//所有チェック
	managerID, err := u.restaurantRepo.FindManagerID(ctx, in.RestaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if managerID != in.ManagerID {
		return model.MenuItem{}, NewHTTPError(http.StatusForbidden, "user is not manager of this restaurant")
	}

	item := model.MenuItem{
		RestaurantID: in.RestaurantID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
	}

	id, err := u.menuRepo.Create(ctx, item)
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	item.ID = id

	//一覧キャッシュを捨てる
	if u.cache != nil {
		u.cache.Invalidate(ctx, in.RestaurantID)
	}

	return item, nil
}

func (u *MenuItemUsecase) GetByID(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	if menuItemID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.menuRepo.FindByID(ctx, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

func (u *MenuItemUsecase) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	if restaurantID <= 0 {
		return []model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid restaurant_id")
	}

	if u.cache != nil {
		if items, ok := u.cache.Get(ctx, restaurantID); ok {
			return items, nil
		}
	}

	items, err := u.menuRepo.ListByRestaurantID(ctx, restaurantID)
	if err != nil {
		return []model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil {
		u.cache.Set(ctx, restaurantID, items)
	}

	return items, nil
}

func (u *MenuItemUsecase) Delete(ctx context.Context, menuItemID int64) error {
	if menuItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//キャッシュ破棄に restaurant_id が要るので先に引く
	item, err := u.menuRepo.FindByID(ctx, menuItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.menuRepo.Delete(ctx, menuItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil {
		u.cache.Invalidate(ctx, item.RestaurantID)
	}

	return nil
}
