package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CreateOrderInput struct {
	UserID       int64
	RestaurantID int64
	MenuItemIDs  []int64
	Quantities   []int64
}

type OrderItemOutput struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int64 `json:"quantity"`
	Price      int64 `json:"price"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	RestaurantID int64             `json:"restaurant_id"`
	Status       string            `json:"status"`
	TotalPrice   int64             `json:"total_price"`
	CreatedAt    time.Time         `json:"created_at"`
	Items        []OrderItemOutput `json:"items"`
}

// Create は注文ヘッダと明細をひとつのトランザクションで作る。
// 途中で失敗したらヘッダも明細も残らない。
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if in.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if in.RestaurantID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid restaurant_id")
	}
	if len(in.MenuItemIDs) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "menu items must not be empty")
	}
	if len(in.MenuItemIDs) != len(in.Quantities) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "menu items and quantities length mismatch")
	}
	for _, q := range in.Quantities {
		if q <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be positive")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()

		//ヘッダを先に作る（total=0、後で書き戻す）
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:       in.UserID,
			RestaurantID: in.RestaurantID,
			Status:       model.OrderStatusPending,
			TotalPrice:   0,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細は入力順。同じメニューが複数回来ても別行のまま。
		var total int64 = 0
		outItems := make([]OrderItemOutput, 0, len(in.MenuItemIDs))

		for i, menuItemID := range in.MenuItemIDs {
			mi, err := r.MenuItems().FindByID(ctx, menuItemID)
			if errors.Is(err, repo.ErrNotFound) {
				//エラーを返せばtxごとロールバックされる
				return NewHTTPError(http.StatusNotFound, "menu item not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			qty := in.Quantities[i]

			//この時点の価格がスナップショット。後からメニューが値上げされても注文は変わらない。
			if _, err := r.OrderItems().Create(ctx, model.OrderItem{
				OrderID:    orderID,
				MenuItemID: menuItemID,
				Quantity:   qty,
				Price:      mi.Price,
				CreatedAt:  now,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			total += mi.Price * qty
			outItems = append(outItems, OrderItemOutput{
				MenuItemID: menuItemID,
				Quantity:   qty,
				Price:      mi.Price,
			})
		}

		//派生値の書き戻し。成功したら total == Σ(price×quantity) が成り立つ。
		if err := r.Orders().UpdateTotalPrice(ctx, orderID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{
			ID:           orderID,
			UserID:       in.UserID,
			RestaurantID: in.RestaurantID,
			Status:       string(model.OrderStatusPending),
			TotalPrice:   total,
			CreatedAt:    now,
			Items:        outItems,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetByID(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListByUser(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	return u.listOrders(ctx, func(r repo.TxRepos) ([]model.Order, error) {
		return r.Orders().ListByUserID(ctx, userID)
	})
}

func (u *OrderUsecase) ListByRestaurant(ctx context.Context, restaurantID int64) ([]OrderOutput, error) {
	if restaurantID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid restaurant_id")
	}

	return u.listOrders(ctx, func(r repo.TxRepos) ([]model.Order, error) {
		return r.Orders().ListByRestaurantID(ctx, restaurantID)
	})
}

func (u *OrderUsecase) listOrders(ctx context.Context, fetch func(r repo.TxRepos) ([]model.Order, error)) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := fetch(r)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// UpdateStatus は語彙チェックだけして上書きする。遷移の妥当性は見ない
// （delivered→pending も通る、元仕様のまま）。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !isValidStatus(status) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status))
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// Delete は明細→ヘッダの順でひとつのトランザクションで消す。
// ヘッダが無ければ明細の削除ごとロールバックされるので孤児は出ない。
func (u *OrderUsecase) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		err := r.Orders().Delete(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func isValidStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending,
		model.OrderStatusInProgress,
		model.OrderStatusReady,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		Status:       string(o.Status),
		TotalPrice:   o.TotalPrice,
		CreatedAt:    o.CreatedAt,
		Items:        outItems,
	}
}
