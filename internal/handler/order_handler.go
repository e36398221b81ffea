package handler

import (
	"net/http"
	"strconv"

	"online-food/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// リクエストボディのキーは元のAPIに合わせてcamelCase
type OrderCreateRequest struct {
	UserID       int64   `json:"userId"`
	RestaurantID int64   `json:"restaurantId"`
	MenuItems    []int64 `json:"menuItems"`
	Quantities   []int64 `json:"quantities"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/orders")

	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.GET("/user/:userId", h.listByUser)
	g.GET("/restaurant/:restaurantId", h.listByRestaurant)
	g.DELETE("/:id", h.delete)
	g.PUT("/:orderId/status", h.updateStatus)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	_, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		UserID:       req.UserID,
		RestaurantID: req.RestaurantID,
		MenuItemIDs:  req.MenuItems,
		Quantities:   req.Quantities,
	})
	if err != nil {
		return writeError(c, err)
	}

	//成功は200の空ボディ（元のAPI互換）
	return c.NoContent(http.StatusOK)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}

	out, err := h.uc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listByRestaurant(c echo.Context) error {
	restaurantID, err := strconv.ParseInt(c.Param("restaurantId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid restaurant_id"})
	}

	out, err := h.uc.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	//statusはクエリで受ける（元のAPI互換）
	status := c.QueryParam("status")

	if err := h.uc.UpdateStatus(c.Request().Context(), orderID, status); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
