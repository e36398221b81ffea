package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"online-food/internal/domain/model"
	repo "online-food/internal/repository"
	"online-food/internal/handler"
	"online-food/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// インメモリのストア＋txマネージャ
// （fnをコピーに対して走らせて、成功した時だけ反映する）
// =====================

type memStore struct {
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
	menuItems  map[int64]model.MenuItem
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		orders:     map[int64]model.Order{},
		orderItems: map[int64]model.OrderItem{},
		menuItems:  map[int64]model.MenuItem{},
		nextID:     1,
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range s.menuItems {
		c.menuItems[k] = v
	}
	return c
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	work := m.store.clone()
	if err := fn(&memRepos{store: work}); err != nil {
		//失敗したら何も反映しない
		return err
	}
	*m.store = *work
	return nil
}

type memRepos struct{ store *memStore }

func (r *memRepos) Orders() repo.OrderRepository         { return &memOrderRepo{r.store} }
func (r *memRepos) OrderItems() repo.OrderItemRepository { return &memOrderItemRepo{r.store} }
func (r *memRepos) MenuItems() repo.MenuItemRepository   { return &memMenuItemRepo{r.store} }

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = r.store.nextID
	r.store.nextID++
	r.store.orders[order.ID] = order
	return order.ID, nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.store.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.store.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.store.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := r.store.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.store.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) UpdateTotalPrice(ctx context.Context, orderID int64, total int64) error {
	o, ok := r.store.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.TotalPrice = total
	r.store.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) Delete(ctx context.Context, orderID int64) error {
	if _, ok := r.store.orders[orderID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.store.orders, orderID)
	return nil
}

type memOrderItemRepo struct{ store *memStore }

func (r *memOrderItemRepo) Create(ctx context.Context, item model.OrderItem) (int64, error) {
	item.ID = r.store.nextID
	r.store.nextID++
	r.store.orderItems[item.ID] = item
	return item.ID, nil
}

func (r *memOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var out []model.OrderItem
	for _, it := range r.store.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID int64) error {
	for id, it := range r.store.orderItems {
		if it.OrderID == orderID {
			delete(r.store.orderItems, id)
		}
	}
	return nil
}

type memMenuItemRepo struct{ store *memStore }

func (r *memMenuItemRepo) Create(ctx context.Context, item model.MenuItem) (int64, error) {
	item.ID = r.store.nextID
	r.store.nextID++
	r.store.menuItems[item.ID] = item
	return item.ID, nil
}

func (r *memMenuItemRepo) FindByID(ctx context.Context, menuItemID int64) (model.MenuItem, error) {
	it, ok := r.store.menuItems[menuItemID]
	if !ok {
		return model.MenuItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r *memMenuItemRepo) ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, it := range r.store.menuItems {
		if it.RestaurantID == restaurantID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memMenuItemRepo) Delete(ctx context.Context, menuItemID int64) error {
	if _, ok := r.store.menuItems[menuItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.store.menuItems, menuItemID)
	return nil
}

// =====================
// helpers
// =====================

func setupOrderAPI(t *testing.T) (*echo.Echo, *memStore) {
	t.Helper()

	store := newMemStore()
	uc := usecase.NewOrderUsecase(&memTxManager{store: store})

	e := echo.New()
	handler.NewOrderHandler(uc).RegisterRoutes(e)

	return e, store
}

func doRequest(e *echo.Echo, method string, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedMenu(store *memStore, id int64, restaurantID int64, price int64) {
	store.menuItems[id] = model.MenuItem{ID: id, RestaurantID: restaurantID, Name: "item", Price: price}
	if id >= store.nextID {
		store.nextID = id + 1
	}
}

// =====================
// tests
// =====================

func TestOrderAPI_CreateAndGet(t *testing.T) {
	e, store := setupOrderAPI(t)

	seedMenu(store, 7, 5, 450)  // 4.50
	seedMenu(store, 9, 5, 1200) // 12.00

	rec := doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7,9],"quantities":[3,1]}`)

	//成功は200の空ボディ
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	//作られた注文を読む
	assert.Len(t, store.orders, 1)
	var orderID int64
	for id := range store.orders {
		orderID = id
	}

	rec = doRequest(e, http.MethodGet, "/api/orders/"+itoa(orderID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.OrderOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(2550), out.TotalPrice) // 25.50
	assert.Equal(t, "pending", out.Status)
	assert.Len(t, out.Items, 2)
}

func TestOrderAPI_SnapshotSurvivesPriceChange(t *testing.T) {
	e, store := setupOrderAPI(t)

	seedMenu(store, 7, 5, 1000) // 10.00

	rec := doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7],"quantities":[2]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	//メニューを15.00に値上げ
	it := store.menuItems[7]
	it.Price = 1500
	store.menuItems[7] = it

	var orderID int64
	for id := range store.orders {
		orderID = id
	}

	rec = doRequest(e, http.MethodGet, "/api/orders/"+itoa(orderID), "")
	var out usecase.OrderOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	//注文のスナップショット価格は10.00のまま
	assert.Equal(t, int64(1000), out.Items[0].Price)
	assert.Equal(t, int64(2000), out.TotalPrice)
}

func TestOrderAPI_CreateFailsAtomically(t *testing.T) {
	e, store := setupOrderAPI(t)

	seedMenu(store, 7, 5, 450)
	// menu 9は存在しない

	rec := doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7,9],"quantities":[1,1]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	//ヘッダも明細も残っていない
	assert.Empty(t, store.orders)
	assert.Empty(t, store.orderItems)
}

func TestOrderAPI_CreateValidation(t *testing.T) {
	e, _ := setupOrderAPI(t)

	//空の明細
	rec := doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[],"quantities":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	//配列の長さ不一致
	rec = doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7,9],"quantities":[1]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	//数量0
	rec = doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7],"quantities":[0]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAPI_DeleteCascades(t *testing.T) {
	e, store := setupOrderAPI(t)

	seedMenu(store, 7, 5, 450)

	rec := doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7,7],"quantities":[1,2]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.orderItems, 2)

	var orderID int64
	for id := range store.orders {
		orderID = id
	}

	rec = doRequest(e, http.MethodDelete, "/api/orders/"+itoa(orderID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	//明細も全部消える
	assert.Empty(t, store.orders)
	assert.Empty(t, store.orderItems)

	//読み直すと404
	rec = doRequest(e, http.MethodGet, "/api/orders/"+itoa(orderID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderAPI_UpdateStatus(t *testing.T) {
	e, store := setupOrderAPI(t)

	seedMenu(store, 7, 5, 450)
	doRequest(e, http.MethodPost, "/api/orders",
		`{"userId":1,"restaurantId":5,"menuItems":[7],"quantities":[1]}`)

	var orderID int64
	for id := range store.orders {
		orderID = id
	}

	rec := doRequest(e, http.MethodPut, "/api/orders/"+itoa(orderID)+"/status?status=delivered", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.OrderStatusDelivered, store.orders[orderID].Status)

	//逆行も通る（遷移チェック無し）
	rec = doRequest(e, http.MethodPut, "/api/orders/"+itoa(orderID)+"/status?status=pending", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.OrderStatusPending, store.orders[orderID].Status)

	//未知のstatusは400
	rec = doRequest(e, http.MethodPut, "/api/orders/"+itoa(orderID)+"/status?status=warp", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAPI_ListByUser(t *testing.T) {
	e, store := setupOrderAPI(t)

	seedMenu(store, 7, 5, 450)
	doRequest(e, http.MethodPost, "/api/orders", `{"userId":1,"restaurantId":5,"menuItems":[7],"quantities":[1]}`)
	doRequest(e, http.MethodPost, "/api/orders", `{"userId":2,"restaurantId":5,"menuItems":[7],"quantities":[1]}`)

	rec := doRequest(e, http.MethodGet, "/api/orders/user/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out []usecase.OrderOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].UserID)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
