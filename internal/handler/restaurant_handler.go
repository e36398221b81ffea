package handler

import (
	"net/http"
	"strconv"

	"online-food/internal/usecase"

	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	uc *usecase.RestaurantUsecase
}

func NewRestaurantHandler(uc *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

type RestaurantCreateRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	ManagerID int64  `json:"managerId"`
}

func (h *RestaurantHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/restaurants")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.GET("/manager/:managerId", h.listByManager)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *RestaurantHandler) list(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) detail(c echo.Context) error {
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

func (h *RestaurantHandler) listByManager(c echo.Context) error {
	managerID, err := strconv.ParseInt(c.Param("managerId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid manager_id"})
	}

	out, err := h.uc.ListByManager(c.Request().Context(), managerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) create(c echo.Context) error {
	var req RestaurantCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateRestaurantInput{
		Name:      req.Name,
		Address:   req.Address,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RestaurantHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
