package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (reads are open; owner=me needs a token)
		public.GET("/restaurant", middleware.AuthOptional(), handlers.ListRestaurants)
		public.GET("/restaurant/:id", handlers.GetRestaurant)
		public.GET("/restaurant/:id/menu", handlers.GetMenu)

		public.GET("/menu-items", handlers.ListMenuItems)
		public.GET("/menu-items/:id", handlers.GetMenuItem)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Orders (handlers gate on role and ownership per operation)
		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PATCH("/orders/:id", handlers.PatchOrder)
		auth.PATCH("/orders/:id/update_status", handlers.UpdateOrderStatus)
		auth.PUT("/orders/:id", handlers.PutOrder)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleRestaurantOwner))
	{
		// Restaurant management (handlers additionally gate on ownership)
		owner.POST("/restaurant", handlers.CreateRestaurant)
		owner.PUT("/restaurant/:id", handlers.UpdateRestaurant)
		owner.PATCH("/restaurant/:id", handlers.UpdateRestaurant)
		owner.DELETE("/restaurant/:id", handlers.DeleteRestaurant)

		// Menu management
		owner.POST("/menu-items", handlers.CreateMenuItem)
		owner.PUT("/menu-items/:id", handlers.UpdateMenuItem)
		owner.PATCH("/menu-items/:id", handlers.UpdateMenuItem)
		owner.DELETE("/menu-items/:id", handlers.DeleteMenuItem)
	}
}
