package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/notify"
	"github.com/comedor/comedor/internal/server/http/handlers"
	"github.com/comedor/comedor/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestaurantFacade, hub *notify.Hub, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events", "/api/staff/events"})))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	eventsHandler := handlers.NewEventsHandler(hub)

	api := engine.Group("/api")
	api.GET("/menu", catalogHandler.Menu)
	api.POST("/customer/register", authHandler.Register)
	api.POST("/customer/login", authHandler.Login)
	api.POST("/staff/login", authHandler.StaffLogin)

	customer := api.Group("")
	customer.Use(middleware.CustomerRequired(facade))
	customer.GET("/customer/profile", authHandler.Profile)
	customer.PUT("/customer/profile", authHandler.UpdateProfile)
	customer.GET("/cart", cartHandler.View)
	customer.POST("/cart/items", cartHandler.AddItem)
	customer.PUT("/cart/items/:productID", cartHandler.SetQuantity)
	customer.DELETE("/cart/items/:productID", cartHandler.RemoveItem)
	customer.POST("/cart/checkout", cartHandler.Checkout)
	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:orderID", orderHandler.Get)
	customer.GET("/events", eventsHandler.CustomerEvents)

	staff := api.Group("/staff")
	staff.Use(middleware.StaffRequired(facade))
	staff.GET("/orders", orderHandler.StaffList)
	staff.PATCH("/orders/:orderID/state", orderHandler.Transition)
	staff.GET("/events", eventsHandler.StaffEvents)

	admin := api.Group("/staff")
	admin.Use(middleware.StaffRequired(facade, model.RoleAdmin))
	admin.PUT("/orders/:orderID/courier", orderHandler.AssignCourier)
	admin.POST("/catalog/categories", catalogHandler.CreateCategory)
	admin.POST("/catalog/products", catalogHandler.CreateProduct)
	admin.GET("/catalog/products/:productID", catalogHandler.GetProduct)
	admin.PUT("/catalog/products/:productID", catalogHandler.UpdateProduct)
	admin.DELETE("/catalog/products/:productID", catalogHandler.DeleteProduct)

	return engine
}
