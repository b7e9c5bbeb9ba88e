package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires a fresh in-memory database and the full route table
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, username string, role models.UserRole) (models.User, string) {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func createRestaurant(t *testing.T, owner models.User, name string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		OwnerID: owner.ID,
		Name:    name,
		Address: "1 Test Street",
	}
	require.NoError(t, config.DB.Create(&restaurant).Error)
	return restaurant
}

func createMenuItem(t *testing.T, restaurant models.Restaurant, name, price string, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		IsAvailable:  available,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	if !available {
		// the column's default:true swallows a zero-value false on insert
		require.NoError(t, config.DB.Model(&item).Update("is_available", false).Error)
		item.IsAvailable = false
	}
	return item
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
