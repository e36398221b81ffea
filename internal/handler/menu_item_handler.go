package handler

import (
	"net/http"
	"strconv"

	"online-food/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MenuItemHandler struct {
	uc *usecase.MenuItemUsecase
}

func NewMenuItemHandler(uc *usecase.MenuItemUsecase) *MenuItemHandler {
	return &MenuItemHandler{uc: uc}
}

type MenuItemCreateRequest struct {
	RestaurantID int64  `json:"restaurantId"`
	ManagerID    int64  `json:"managerId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Category     string `json:"category"`
}

func (h *MenuItemHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/menu-items")

	g.GET("/restaurant/:restaurantId", h.listByRestaurant)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *MenuItemHandler) listByRestaurant(c echo.Context) error {
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

func (h *MenuItemHandler) detail(c echo.Context) error {
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

func (h *MenuItemHandler) create(c echo.Context) error {
	var req MenuItemCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Add(c.Request().Context(), usecase.AddMenuItemInput{
		RestaurantID: req.RestaurantID,
		ManagerID:    req.ManagerID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuItemHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
