package echoServer

import (
	"videostore/app/echoServer/controller/customer"
	"videostore/app/echoServer/controller/rental"
	"videostore/app/echoServer/controller/video"

	"github.com/labstack/echo/v4"
)

type C struct {
	Customer *customer.Controller
	Video    *video.Controller
	Rental   *rental.Controller
}

func Register(e *echo.Echo, c C) {
	// Customers
	e.GET("/customers", c.Customer.List)
	e.POST("/customers", c.Customer.Create)
	e.GET("/customers/:id", c.Customer.Detail)
	e.PUT("/customers/:id", c.Customer.Update)
	e.DELETE("/customers/:id", c.Customer.Delete)
	e.GET("/customers/:id/rentals", c.Customer.Rentals)

	// Videos
	e.GET("/videos", c.Video.List)
	e.POST("/videos", c.Video.Create)
	e.GET("/videos/:id", c.Video.Detail)
	e.PUT("/videos/:id", c.Video.Update)
	e.DELETE("/videos/:id", c.Video.Delete)
	e.GET("/videos/:id/rentals", c.Video.Rentals)

	// Rentals
	e.POST("/rentals/check-out", c.Rental.CheckOut)
	e.POST("/rentals/check-in", c.Rental.CheckIn)
	e.POST("/rentals/:id/check-in", c.Rental.CheckInByID)
}
