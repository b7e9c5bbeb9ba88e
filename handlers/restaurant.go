package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/permissions"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone_number"`
	Image       string `json:"image"`
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone_number"`
	Image       *string `json:"image"`
}

// ListRestaurants returns all restaurants (public). An authenticated
// restaurant owner may pass ?owner=me to list only their own.
func ListRestaurants(c *gin.Context) {
	query := config.DB.Preload("MenuItems")

	if c.Query("owner") == "me" && middleware.IsAuthenticated(c) &&
		middleware.GetRole(c) == models.RoleRestaurantOwner {
		query = query.Where("owner_id = ?", middleware.GetUserID(c))
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var restaurants []models.Restaurant
	query.Order("created_at desc").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu items
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// CreateRestaurant lets a restaurant owner create a restaurant. The
// route is role-gated; restaurant names are unique, compared
// case-insensitively.
func CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Restaurant{}).Where("LOWER(name) = LOWER(?)", req.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A restaurant with this name already exists"})
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     middleware.GetUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Image:       req.Image,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details (owner only)
func UpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !permissions.CanMutateRestaurant(middleware.GetUserID(c), middleware.GetRole(c), &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}

	config.DB.Model(&restaurant).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// DeleteRestaurant removes a restaurant and, by cascade, its menu
func DeleteRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !permissions.CanMutateRestaurant(middleware.GetUserID(c), middleware.GetRole(c), &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this restaurant"})
		return
	}
	config.DB.Delete(&restaurant)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

// GetMenu returns the available menu items for a restaurant (public)
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	config.DB.Where("restaurant_id = ? AND is_available = ?", restaurantID, true).Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}
