package handlers

import (
	"errors"
	"net/http"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/permissions"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// apiError carries an HTTP status out of a transaction closure
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

type PlaceOrderRequest struct {
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	// Status is accepted for wire compatibility but ignored — orders
	// always start out pending.
	Status string `json:"status"`
	Items  []struct {
		MenuItemID uint `json:"menu_item"`
		Quantity   int  `json:"quantity"`
	} `json:"order_items"`
}

func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// PlaceOrder creates a new order. The target restaurant is resolved from
// the first item's menu item; every other item must belong to it. Each
// menu item is read exactly once, inside the transaction, and its name
// and price are snapshotted onto the order item.
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if middleware.GetRole(c) == models.RoleRestaurantOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Restaurant owners cannot place orders. Only customers can place orders."})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one item is required"})
		return
	}
	for i := range req.Items {
		if req.Items[i].Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
			return
		}
		if req.Items[i].Quantity == 0 {
			req.Items[i].Quantity = 1
		}
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var restaurantID uint
		var orderItems []models.OrderItem
		total := decimal.Zero

		for i, line := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, line.MenuItemID).Error; err != nil {
				return &apiError{http.StatusNotFound, "Menu item not found"}
			}
			if i == 0 {
				restaurantID = menuItem.RestaurantID
			} else if menuItem.RestaurantID != restaurantID {
				return &apiError{http.StatusBadRequest, "All menu items must belong to the same restaurant"}
			}
			if !menuItem.IsAvailable {
				return &apiError{http.StatusBadRequest, "Menu item '" + menuItem.Name + "' is not available"}
			}

			total = total.Add(menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   line.Quantity,
				Price:      menuItem.Price,
				Name:       menuItem.Name,
			})
		}

		order = models.Order{
			Number:          generateOrderNumber(),
			UserID:          userID,
			RestaurantID:    restaurantID,
			Status:          models.StatusPending,
			TotalPrice:      total,
			DeliveryAddress: req.DeliveryAddress,
			Items:           orderItems,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.status, gin.H{"error": apiErr.message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	if err := config.DB.Preload("Items.MenuItem").Preload("Restaurant").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// ListOrders returns the orders visible to the caller: customers see
// their own, restaurant owners see orders against restaurants they own.
func ListOrders(c *gin.Context) {
	query := permissions.ScopeOrders(
		config.DB.Model(&models.Order{}),
		middleware.GetUserID(c),
		middleware.GetRole(c),
	).Preload("Items.MenuItem").Preload("Restaurant")

	if status := c.Query("status"); status != "" {
		query = query.Where("orders.status = ?", status)
	}

	var orders []models.Order
	query.Order("orders.created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order, gated by the access predicate. An order
// the caller may not see reads as absent rather than forbidden, the
// same way scoped lists hide it.
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !permissions.CanAccessOrder(middleware.GetUserID(c), middleware.GetRole(c), &order) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// applyStatusUpdate is the single code path behind both status-update
// entry points: value validation, ownership check, transition check.
func applyStatusUpdate(c *gin.Context, statusValue string) {
	if statusValue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status field is required"})
		return
	}
	newStatus := models.OrderStatus(statusValue)
	if !statemachine.IsValidStatus(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: " + statusesString()})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Restaurant").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if middleware.GetRole(c) != models.RoleRestaurantOwner ||
		order.Restaurant.OwnerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the restaurant owner can update order status"})
		return
	}

	if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":               err.Error(),
			"current_status":      order.Status,
			"valid_next_statuses": statemachine.ValidNextStatuses(order.Status),
		})
		return
	}

	if err := config.DB.Model(&order).Update("status", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	if err := config.DB.Preload("Items.MenuItem").Preload("Restaurant").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

// PatchOrder is the general partial-update entry point. Only the status
// field may be touched after placement.
func PatchOrder(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status field is required"})
		return
	}
	for key := range body {
		if key != "status" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only order status can be updated after placement"})
			return
		}
	}
	statusValue, _ := body["status"].(string)
	applyStatusUpdate(c, statusValue)
}

// UpdateOrderStatus is the dedicated status-update action
func UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applyStatusUpdate(c, req.Status)
}

// PutOrder rejects full replacement: an order's items and total are
// immutable after placement.
func PutOrder(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Orders cannot be updated after placement. Use PATCH to update status only."})
}

func statusesString() string {
	s := ""
	for i, status := range statemachine.AllStatuses() {
		if i > 0 {
			s += ", "
		}
		s += string(status)
	}
	return s
}
