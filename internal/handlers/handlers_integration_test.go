package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"boutique/internal/handlers"
	"boutique/internal/middleware"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const adminPassword = "admin-secret"

// setupApp wires the full API against an in-memory SQLite database, the way
// the composition root does, minus the external services.
func setupApp(t *testing.T) (*fiber.App, repositories.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	store := repositories.NewGormStore(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	authService := services.NewAuthService(store, "test_jwt_secret", "admin@example.com", string(hash), nil)
	productService := services.NewProductService(store)
	categoryService := services.NewCategoryService(store)
	orderService := services.NewOrderService(store, nil)
	bannerService := services.NewBannerService(store)
	settingsService := services.NewSettingsService(store)
	reportService := services.NewReportService(store)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })
	uploadService := services.NewUploadService(bucket, "/uploads")

	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService, reportService)
	bannerHandler := handlers.NewBannerHandler(bannerService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	app := fiber.New()
	api := app.Group("/api")

	userRequired := middleware.UserRequired(authService)
	userOptional := middleware.UserOptional(authService)
	adminRequired := middleware.AdminRequired(authService)

	productHandler.RegisterRoutes(api, adminRequired)
	categoryHandler.RegisterRoutes(api, adminRequired)
	bannerHandler.RegisterRoutes(api, adminRequired)
	settingsHandler.RegisterRoutes(api, adminRequired)
	authHandler.RegisterRoutes(api, userRequired)
	orderHandler.RegisterRoutes(api, userOptional, userRequired, adminRequired)
	uploadHandler.RegisterRoutes(api, adminRequired)
	adminHandler.RegisterRoutes(api)

	admin := api.Group("/admin", adminRequired)
	adminHandler.RegisterAdminRoutes(admin)

	return app, store
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func adminLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAdminLoginAndGuard(t *testing.T) {
	app, _ := setupApp(t)

	// Wrong password is rejected.
	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Admin routes refuse missing tokens.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A customer token is not an admin token.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userToken, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, userToken)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The real admin token works.
	token := adminLogin(t, app)
	resp = doJSON(t, app, http.MethodGet, "/api/admin/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "admin@example.com", body["email"])
}

func TestProductCatalogFlow(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	// Create a category and a product inside it.
	resp := doJSON(t, app, http.MethodPost, "/api/categories", token, map[string]interface{}{
		"name": "Dresses", "slug": "dresses",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	category := decodeBody(t, resp)
	categoryID := uint(category["id"].(float64))

	resp = doJSON(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name":        "Silk Dress",
		"priceCents":  12999,
		"inventory":   5,
		"categoryIds": []uint{categoryID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decodeBody(t, resp)
	assert.Equal(t, "129.99", product["price"])
	productID := uint(product["id"].(float64))

	// Validation failures report per-field errors.
	resp = doJSON(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"priceCents": -5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Validation failed", body["message"])

	// Public listing, with and without the category filter.
	resp = doJSON(t, app, http.MethodGet, "/api/products?category=dresses", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	require.Len(t, listed, 1)
	assert.Equal(t, "Silk Dress", listed[0]["name"])

	resp = doJSON(t, app, http.MethodGet, "/api/products?category=unknown", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	assert.Empty(t, listed)

	// Delete and verify the 404.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", productID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutFlow(t *testing.T) {
	app, store := setupApp(t)
	token := adminLogin(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name":       "Scarf",
		"priceCents": 2500,
		"inventory":  10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	productID := uint(decodeBody(t, resp)["id"].(float64))

	customer := map[string]interface{}{
		"name": "Ada Lovelace", "email": "ada@example.com",
		"addressLine1": "12 Analytical Way", "city": "London",
		"postalCode": "EC1", "country": "UK",
	}

	// Guest checkout.
	resp = doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"items":    []map[string]interface{}{{"productId": productID, "quantity": 2}},
		"customer": customer,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decodeBody(t, resp)
	assert.Equal(t, "50.00", order["total"])
	assert.Equal(t, "PENDING", order["status"])

	// Overselling is a 400 with the inventory message.
	resp = doJSON(t, app, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"items":    []map[string]interface{}{{"productId": productID, "quantity": 50}},
		"customer": customer,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["message"], "insufficient inventory")

	// A registered customer's order is linked to the account.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Grace", "email": "grace@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userToken, _ := decodeBody(t, resp)["token"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/orders", userToken, map[string]interface{}{
		"items":    []map[string]interface{}{{"productId": productID, "quantity": 1}},
		"customer": customer,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/orders/me", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mine))
	resp.Body.Close()
	assert.Len(t, mine, 1)

	// Admin sees every order and can advance one.
	resp = doJSON(t, app, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	require.Len(t, all, 2)

	orderID := uint(all[0]["id"].(float64))
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), token, map[string]string{
		"status":         "SHIPPED",
		"trackingNumber": "TRACK-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "SHIPPED", updated["status"])

	// Inventory reflects the two successful checkouts.
	p, err := store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Inventory)
}

func TestSettingsEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	// First read materializes the default.
	resp := doJSON(t, app, http.MethodGet, "/api/settings/featured-count", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "8", decodeBody(t, resp)["value"])

	// Writes are admin-only.
	resp = doJSON(t, app, http.MethodPut, "/api/settings/featured-count", "", map[string]string{"value": "12"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := adminLogin(t, app)
	resp = doJSON(t, app, http.MethodPut, "/api/settings/featured-count", token, map[string]string{"value": "12"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/settings/featured-count", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "12", decodeBody(t, resp)["value"])
}

func TestImageUpload(t *testing.T) {
	app, _ := setupApp(t)
	token := adminLogin(t, app)

	upload := func(fieldContentType string) *http.Response {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="photo.jpg"`)
		header.Set("Content-Type", fieldContentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload("image/jpeg")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	url, _ := body["url"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// Non-image payloads are rejected.
	resp = upload("application/pdf")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
