package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes はAPIのルーティングを登録する
func RegisterRoutes(e *echo.Echo, uh *UserHandler, ih *ItemHandler, bh *BookingHandler, hh *HealthHandler) {
	e.GET("/health", hh.Check)

	e.POST("/users", uh.Create)
	e.GET("/users", uh.List)
	e.GET("/users/:id", uh.GetByID)
	e.PATCH("/users/:id", uh.Update)
	e.DELETE("/users/:id", uh.Delete)

	e.POST("/items", ih.Create)
	e.GET("/items", ih.List)
	e.GET("/items/search", ih.Search)
	e.GET("/items/:id", ih.GetByID)
	e.PATCH("/items/:id", ih.Update)
	e.POST("/items/:id/comment", ih.AddComment)

	e.POST("/bookings", bh.Create)
	e.GET("/bookings", bh.ListByBooker)
	e.GET("/bookings/owner", bh.ListByOwner)
	e.GET("/bookings/:id", bh.GetByID)
	e.PATCH("/bookings/:id", bh.Resolve)
}
