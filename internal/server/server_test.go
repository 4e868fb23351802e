package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/server"
	"storefront/pkg/logx"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryCache struct {
	mu          sync.Mutex
	products    []models.Product
	cached      bool
	hits        int
	invalidated int
}

func (c *memoryCache) Get(ctx context.Context) ([]models.Product, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached {
		return nil, false, nil
	}
	c.hits++
	return c.products, true, nil
}

func (c *memoryCache) Set(ctx context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.cached = true
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.cached = false
	c.invalidated++
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logx.Discard()

	db, err := database.Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Name:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Account{}, &models.Order{}))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestCatalogAndCheckoutFlow(t *testing.T) {
	app := server.New(server.Deps{DB: openTestDB(t)})

	resp, body := do(t, app, http.MethodPost, "/products", `{"Product_name":"Pen","Price":10}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var created struct {
		Message string `json:"message"`
		ID      uint   `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Product Added Successfully!", created.Message)
	assert.NotZero(t, created.ID)

	resp, body = do(t, app, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 1)
	assert.Equal(t, float64(created.ID), products[0]["id"])
	assert.Equal(t, "Pen", products[0]["Product_name"])
	assert.Equal(t, float64(10), products[0]["Price"])

	resp, body = do(t, app, http.MethodPost, "/api/orders",
		`{"product_id":1,"product_name":"Pen","product_price":10,"user_name":"A","address":"X"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	resp, body = do(t, app, http.MethodPost, "/api/orders",
		`{"product_id":1,"product_name":"Pen","product_price":10,"user_name":"B","address":"Y"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "B", orders[0]["user_name"])
	assert.Contains(t, orders[0], "phone")
	assert.Nil(t, orders[0]["phone"])

	resp, body = do(t, app, http.MethodPut, "/products/999", `{"Product_name":"Ghost","Price":1}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Product not found"}`, string(body))
}

func TestUnknownFieldsAreRejected(t *testing.T) {
	app := server.New(server.Deps{DB: openTestDB(t)})

	resp, body := do(t, app, http.MethodPost, "/signup",
		`{"name":"A","email":"a@b.c","password":"p","Confirm_Password":"p","role":"root"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"message"`)

	resp, _ = do(t, app, http.MethodPost, "/api/orders",
		`{"product_id":1,"product_price":10,"user_name":"A","address":"X","discount":5}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/orders",
		`{"product_id":"1","product_price":10,"user_name":"A","address":"X"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSAndRequestID(t *testing.T) {
	app := server.New(server.Deps{DB: openTestDB(t)})

	resp, _ := do(t, app, http.MethodGet, "/products", "", map[string]string{"Origin": "https://shop.example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, _ = do(t, app, http.MethodOptions, "/api/orders", "", map[string]string{
		"Origin":                        "https://admin.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestPanicIsRecoveredAndLogged(t *testing.T) {
	app := server.New(server.Deps{DB: openTestDB(t)})
	app.Get("/explode", func(c *fiber.Ctx) error {
		panic("boom")
	})

	var buf bytes.Buffer
	logx.Init(logx.Options{Production: true, Level: zerolog.DebugLevel, Output: &buf})
	t.Cleanup(logx.Discard)

	resp, _ := do(t, app, http.MethodGet, "/explode", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "request", line["message"])
	assert.Equal(t, "/explode", line["path"])
	assert.Equal(t, float64(http.StatusInternalServerError), line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestHealth(t *testing.T) {
	db := openTestDB(t)
	app := server.New(server.Deps{DB: db})

	resp, body := do(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"healthy"`)

	require.NoError(t, database.Close(db))
	resp, body = do(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"unhealthy"`)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := server.New(server.Deps{DB: openTestDB(t), Registry: reg})

	resp, _ := do(t, app, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, "/products/42", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := string(body)
	assert.Contains(t, out, `http_requests_total{code="200",method="GET",route="/products`)
	assert.Contains(t, out, `http_requests_total{code="404",method="DELETE",route="/products/:id"}`)
	assert.Contains(t, out, "http_request_duration_seconds_bucket")
}

func TestMetricsDisabledWithoutRegistry(t *testing.T) {
	app := server.New(server.Deps{DB: openTestDB(t)})
	resp, _ := do(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductListIsCached(t *testing.T) {
	db := openTestDB(t)
	cache := &memoryCache{}
	app := server.New(server.Deps{DB: db, ProductCache: cache})

	resp, _ := do(t, app, http.MethodPost, "/products", `{"Product_name":"Pen","Price":10}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := func() []map[string]interface{} {
		resp, body := do(t, app, http.MethodGet, "/products", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var products []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &products))
		return products
	}

	assert.Len(t, list(), 1)

	// A row written behind the service's back stays invisible while cached.
	name := "Ink"
	require.NoError(t, db.Create(&models.Product{Name: &name}).Error)
	assert.Len(t, list(), 1)
	assert.Equal(t, 1, cache.hits)

	resp, _ = do(t, app, http.MethodPost, "/products", `{"Product_name":"Notebook","Price":3.5}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list(), 3)
	assert.Equal(t, 2, cache.invalidated)
}

func TestOrderEventsFollowSuccessfulWrites(t *testing.T) {
	publisher := &recordingPublisher{}
	app := server.New(server.Deps{DB: openTestDB(t), Publisher: publisher})

	resp, _ := do(t, app, http.MethodPost, "/api/orders", `{"product_id":1,"user_name":"A"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, "/api/orders/7", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, publisher.types())

	resp, body := do(t, app, http.MethodPost, "/api/orders",
		`{"product_id":1,"product_price":10,"user_name":"A","address":"X"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var created struct {
		OrderID uint `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	path := fmt.Sprintf("/api/orders/%d", created.OrderID)
	resp, _ = do(t, app, http.MethodPut, path, `{"user_name":"B","address":"Y"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{models.OrderCreated, models.OrderUpdated, models.OrderDeleted}, publisher.types())
	for _, e := range publisher.events {
		assert.Equal(t, created.OrderID, e.OrderID)
	}
	require.NotNil(t, publisher.events[0].Order)
	assert.Equal(t, "A", *publisher.events[0].Order.UserName)
}
