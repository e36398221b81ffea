package server

import (
	"online-food/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	userH *handler.UserHandler,
	restaurantH *handler.RestaurantHandler,
	menuH *handler.MenuItemHandler,
	orderH *handler.OrderHandler,
) {
	userH.RegisterRoutes(e)
	restaurantH.RegisterRoutes(e)
	menuH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)
}
