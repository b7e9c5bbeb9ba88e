package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/permissions"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ── Menu Item Management ────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	RestaurantID uint            `json:"restaurant"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Image        string          `json:"image"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	IsAvailable *bool            `json:"is_available"`
}

// ListMenuItems returns menu items, optionally scoped to one restaurant
func ListMenuItems(c *gin.Context) {
	query := config.DB
	if restaurantID := c.Query("restaurant"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	var items []models.MenuItem
	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// GetMenuItem returns a single menu item
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateMenuItem adds an item to a restaurant the caller owns. The
// route is role-gated; the restaurant reference must be supplied
// explicitly — it is never inferred.
func CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RestaurantID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant ID is required"})
		return
	}
	if req.Price.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant does not exist"})
		return
	}
	if !permissions.CanMutateMenuItem(middleware.GetUserID(c), middleware.GetRole(c), &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only add menu items to restaurants you own"})
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// resolveOwnedMenuItem loads the item and verifies the caller owns its
// restaurant. Writes the error response itself on failure.
func resolveOwnedMenuItem(c *gin.Context) (*models.MenuItem, bool) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return nil, false
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, item.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return nil, false
	}
	if !permissions.CanMutateMenuItem(middleware.GetUserID(c), middleware.GetRole(c), &restaurant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this menu item"})
		return nil, false
	}
	return &item, true
}

// UpdateMenuItem updates a menu item (owner only)
func UpdateMenuItem(c *gin.Context) {
	item, ok := resolveOwnedMenuItem(c)
	if !ok {
		return
	}

	var req UpdateMenuItemRequest
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
	if req.Price != nil {
		if req.Price.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}
		update["price"] = *req.Price
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.IsAvailable != nil {
		update["is_available"] = *req.IsAvailable
	}

	config.DB.Model(item).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// DeleteMenuItem removes a menu item (owner only)
func DeleteMenuItem(c *gin.Context) {
	item, ok := resolveOwnedMenuItem(c)
	if !ok {
		return
	}
	config.DB.Delete(item)
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
