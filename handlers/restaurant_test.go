package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurant_DuplicateNameCaseInsensitive(t *testing.T) {
	r := setupRouter(t)
	_, ownerToken := createUser(t, "bob", models.RoleRestaurantOwner)
	_, otherToken := createUser(t, "carol", models.RoleRestaurantOwner)

	rec := doRequest(r, "POST", "/api/restaurant", ownerToken,
		`{"name":"Pizza Place","address":"1 Test Street"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, name := range []string{"Pizza Place", "pizza place", "PIZZA PLACE"} {
		body := fmt.Sprintf(`{"name":%q,"address":"2 Other Street"}`, name)
		rec = doRequest(r, "POST", "/api/restaurant", otherToken, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	}
}

func TestCreateRestaurant_CustomerForbidden(t *testing.T) {
	r := setupRouter(t)
	_, customerToken := createUser(t, "alice", models.RoleCustomer)

	rec := doRequest(r, "POST", "/api/restaurant", customerToken,
		`{"name":"Pizza Place","address":"1 Test Street"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "restaurant_owner")
}

func TestUpdateRestaurant_OwnerOnly(t *testing.T) {
	r := setupRouter(t)
	owner, ownerToken := createUser(t, "bob", models.RoleRestaurantOwner)
	_, otherToken := createUser(t, "carol", models.RoleRestaurantOwner)
	_, customerToken := createUser(t, "alice", models.RoleCustomer)
	restaurant := createRestaurant(t, owner, "Pizza Place")
	path := fmt.Sprintf("/api/restaurant/%d", restaurant.ID)

	rec := doRequest(r, "PATCH", path, otherToken, `{"description":"stolen"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, "PATCH", path, customerToken, `{"description":"stolen"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, "PATCH", path, ownerToken, `{"description":"wood-fired"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Reads stay open to everyone
	rec = doRequest(r, "GET", path, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMenu_AvailableItemsOnly(t *testing.T) {
	r := setupRouter(t)
	owner, _ := createUser(t, "bob", models.RoleRestaurantOwner)
	restaurant := createRestaurant(t, owner, "Pizza Place")
	createMenuItem(t, restaurant, "Margherita", "5.00", true)
	createMenuItem(t, restaurant, "Calzone", "6.00", false)

	rec := doRequest(r, "GET", fmt.Sprintf("/api/restaurant/%d/menu", restaurant.ID), "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int               `json:"count"`
		Menu  []models.MenuItem `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Margherita", resp.Menu[0].Name)
}

func TestListRestaurants_OwnerFilter(t *testing.T) {
	r := setupRouter(t)
	bob, bobToken := createUser(t, "bob", models.RoleRestaurantOwner)
	carol, _ := createUser(t, "carol", models.RoleRestaurantOwner)
	createRestaurant(t, bob, "Pizza Place")
	createRestaurant(t, carol, "Sushi Spot")

	rec := doRequest(r, "GET", "/api/restaurant", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, 2, all.Count)

	rec = doRequest(r, "GET", "/api/restaurant?owner=me", bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Count       int                 `json:"count"`
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Equal(t, 1, mine.Count)
	assert.Equal(t, "Pizza Place", mine.Restaurants[0].Name)
}

func TestCreateMenuItem_ExplicitRestaurantRequired(t *testing.T) {
	r := setupRouter(t)
	owner, ownerToken := createUser(t, "bob", models.RoleRestaurantOwner)
	_, otherToken := createUser(t, "carol", models.RoleRestaurantOwner)
	_, customerToken := createUser(t, "alice", models.RoleCustomer)
	restaurant := createRestaurant(t, owner, "Pizza Place")

	tests := []struct {
		name         string
		token        string
		body         string
		expectedCode int
	}{
		{
			name:         "missing_restaurant",
			token:        ownerToken,
			body:         `{"name":"Margherita","price":"5.00"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown_restaurant",
			token:        ownerToken,
			body:         `{"restaurant":9999,"name":"Margherita","price":"5.00"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "customer_role",
			token:        customerToken,
			body:         fmt.Sprintf(`{"restaurant":%d,"name":"Margherita","price":"5.00"}`, restaurant.ID),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "not_the_owner",
			token:        otherToken,
			body:         fmt.Sprintf(`{"restaurant":%d,"name":"Margherita","price":"5.00"}`, restaurant.ID),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "zero_price",
			token:        ownerToken,
			body:         fmt.Sprintf(`{"restaurant":%d,"name":"Margherita","price":"0"}`, restaurant.ID),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "owner_succeeds",
			token:        ownerToken,
			body:         fmt.Sprintf(`{"restaurant":%d,"name":"Margherita","price":"5.00"}`, restaurant.ID),
			expectedCode: http.StatusCreated,
		},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rec := doRequest(r, "POST", "/api/menu-items", testCase.token, testCase.body)
			assert.Equal(t, testCase.expectedCode, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateMenuItem_OwnerOnly(t *testing.T) {
	r := setupRouter(t)
	owner, ownerToken := createUser(t, "bob", models.RoleRestaurantOwner)
	_, otherToken := createUser(t, "carol", models.RoleRestaurantOwner)
	restaurant := createRestaurant(t, owner, "Pizza Place")
	item := createMenuItem(t, restaurant, "Margherita", "5.00", true)
	path := fmt.Sprintf("/api/menu-items/%d", item.ID)

	rec := doRequest(r, "PATCH", path, otherToken, `{"price":"1.00"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, "PATCH", path, ownerToken, `{"price":"5.50","is_available":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(r, "DELETE", path, otherToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, "DELETE", path, ownerToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
