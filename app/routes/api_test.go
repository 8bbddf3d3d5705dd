package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/routes"
	"github.com/shashiranjanraj/tillpoint/app/services"
	"github.com/shashiranjanraj/tillpoint/pkg/router"
)

type apiEnv struct {
	db  *gorm.DB
	srv *httptest.Server
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "api.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Associate{},
		&models.InventoryItem{},
		&models.InventoryTransaction{},
		&models.Sale{},
	))

	for _, c := range []models.Category{
		{Type: "type", Value: "Shirt", IsActive: true},
		{Type: "color", Value: "Blue", IsActive: true},
		{Type: "size", Value: "M", IsActive: true},
	} {
		require.NoError(t, db.Create(&c).Error)
	}

	auth := services.NewAuthService(db)
	_, err = auth.CreateAssociate(context.Background(), "Owner", "0000", models.RoleAdmin)
	require.NoError(t, err)
	_, err = auth.CreateAssociate(context.Background(), "Clerk", "1111", models.RoleAssociate)
	require.NoError(t, err)

	r := router.New()
	routes.RegisterAPI(r, db)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	return &apiEnv{db: db, srv: srv}
}

// request sends a JSON request and decodes the envelope.
func (e *apiEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (e *apiEnv) login(t *testing.T, code string) string {
	t.Helper()

	status, body := e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{"code": code})
	require.Equal(t, http.StatusOK, status)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "login response: %v", body)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAPI_RequiresAuth(t *testing.T) {
	env := newAPIEnv(t)

	status, _ := env.request(t, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.request(t, http.MethodGet, "/api/inventory", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_LoginRejectsBadCode(t *testing.T) {
	env := newAPIEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{"code": "9999"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_InventoryLifecycle(t *testing.T) {
	env := newAPIEnv(t)
	token := env.login(t, "0000")

	// Create with generated name and SKU, 5 units of opening stock.
	status, body := env.request(t, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"type": "Shirt", "color": "Blue", "size": "M",
		"price": "19.99", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, status, "create: %v", body)

	item := body["data"].(map[string]interface{})
	assert.Equal(t, "Blue Shirt (M)", item["name"])
	assert.Regexp(t, `^SHI-BLU-MD-\d{3}$`, item["sku"])
	itemID := int(item["id"].(float64))

	// Restock.
	status, body = env.request(t, http.MethodPost,
		"/api/inventory/"+itoa(itemID)+"/add-stock", token,
		map[string]interface{}{"quantity": 5, "reason": "restock"})
	require.Equal(t, http.StatusOK, status, "add-stock: %v", body)
	assert.EqualValues(t, 10, body["data"].(map[string]interface{})["quantity"])

	// Overselling through a sale is a conflict, not a server error.
	status, body = env.request(t, http.MethodPost, "/api/sales", token, map[string]interface{}{
		"itemId": itemID, "quantity": 99,
		"unitPrice": "19.99", "totalAmount": "1979.01",
		"paymentMethod": "cash",
	})
	assert.Equal(t, http.StatusConflict, status, "oversell: %v", body)

	// A real sale books and decrements.
	status, body = env.request(t, http.MethodPost, "/api/sales", token, map[string]interface{}{
		"itemId": itemID, "quantity": 2,
		"unitPrice": "19.99", "totalAmount": "39.98",
		"paymentMethod": "venmo",
	})
	require.Equal(t, http.StatusCreated, status, "sale: %v", body)

	// Archive blocks mutations; restore lifts the block.
	status, _ = env.request(t, http.MethodPatch, "/api/inventory/"+itoa(itemID)+"/archive", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.request(t, http.MethodPost,
		"/api/inventory/"+itoa(itemID)+"/add-stock", token,
		map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.request(t, http.MethodPatch, "/api/inventory/"+itoa(itemID)+"/restore", token, nil)
	require.Equal(t, http.StatusOK, status)

	// The ledger shows the whole history.
	status, body = env.request(t, http.MethodGet,
		"/api/inventory/"+itoa(itemID)+"/transactions", token, nil)
	require.Equal(t, http.StatusOK, status)
	ledger := body["data"].([]interface{})
	assert.Len(t, ledger, 3, "opening stock, restock, sale")
}

func TestAPI_ValidationErrors(t *testing.T) {
	env := newAPIEnv(t)
	token := env.login(t, "0000")

	// Missing price.
	status, _ := env.request(t, http.MethodPost, "/api/inventory", token,
		map[string]interface{}{"name": "No Price"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Unknown attribute value.
	status, body := env.request(t, http.MethodPost, "/api/inventory", token,
		map[string]interface{}{"type": "Couch", "price": "5"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotNil(t, body["errors"])
}

func TestAPI_AdminRoutesRejectAssociates(t *testing.T) {
	env := newAPIEnv(t)
	clerk := env.login(t, "1111")

	status, _ := env.request(t, http.MethodPost, "/api/categories", clerk,
		map[string]interface{}{"type": "color", "value": "Green"})
	assert.Equal(t, http.StatusForbidden, status)

	admin := env.login(t, "0000")
	status, _ = env.request(t, http.MethodPost, "/api/categories", admin,
		map[string]interface{}{"type": "color", "value": "Green"})
	assert.Equal(t, http.StatusCreated, status)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
