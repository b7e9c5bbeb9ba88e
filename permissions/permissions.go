// Package permissions holds the pure access predicates evaluated per
// request against a resolved entity, and the list-level scopes that
// restrict what a caller can enumerate.
package permissions

import (
	"food-ordering-api/models"

	"gorm.io/gorm"
)

// CanAccessOrder allows the order's placer, or the owner of the order's
// restaurant. Requires order.Restaurant to be resolved.
func CanAccessOrder(userID uint, role models.UserRole, order *models.Order) bool {
	if order.UserID == userID {
		return true
	}
	return role == models.RoleRestaurantOwner && order.Restaurant.OwnerID == userID
}

// CanMutateRestaurant allows only the owning restaurant_owner. Reads are
// not gated by this predicate.
func CanMutateRestaurant(userID uint, role models.UserRole, restaurant *models.Restaurant) bool {
	return restaurant.OwnerID == userID && role == models.RoleRestaurantOwner
}

// CanMutateMenuItem allows only the owner of the item's restaurant.
// Ownership runs through the restaurant record, which the caller
// resolves by the item's RestaurantID.
func CanMutateMenuItem(userID uint, role models.UserRole, restaurant *models.Restaurant) bool {
	return restaurant.OwnerID == userID && role == models.RoleRestaurantOwner
}

// ScopeOrders narrows an order query to what the caller may list: owners
// see orders against restaurants they own, customers see their own.
func ScopeOrders(db *gorm.DB, userID uint, role models.UserRole) *gorm.DB {
	if role == models.RoleRestaurantOwner {
		return db.Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Where("restaurants.owner_id = ?", userID)
	}
	return db.Where("orders.user_id = ?", userID)
}
