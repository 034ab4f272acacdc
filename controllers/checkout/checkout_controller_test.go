package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/middlewares"
	"github.com/Henzp/tienda-plantas/models"
	"github.com/Henzp/tienda-plantas/sessions"
	"github.com/Henzp/tienda-plantas/stores"
)

func newTestApp(t *testing.T) (*fiber.App, *stores.MemoryStore, *sessions.Store) {
	t.Helper()
	store := stores.NewMemoryStore()
	sess := sessions.NewStore(time.Hour)
	mw := middlewares.New(sess)
	ct := NewController(store, zap.NewNop())

	app := fiber.New()
	app.Post("/api/procesar-compra", mw.LoadSession, ct.ProcessPurchase)
	return app, store, sess
}

func purchaseRequestWith(t *testing.T, sess *sessions.Store, items []models.PurchaseItem) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"items": items, "total": 0})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/procesar-compra", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sess != nil {
		token := sess.Create(sessions.Identity{UserID: "64b0c5f2a1b2c3d4e5f60718", Nombre: "Ana"})
		req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: token})
	}
	return req
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(purchaseRequestWith(t, nil, []models.PurchaseItem{{ProductoId: "x", Cantidad: 1}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCheckoutRejectsEmptyCartAndBadQuantities(t *testing.T) {
	app, _, sess := newTestApp(t)

	resp, err := app.Test(purchaseRequestWith(t, sess, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(purchaseRequestWith(t, sess, []models.PurchaseItem{{ProductoId: "x", Cantidad: 0}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutScenario(t *testing.T) {
	app, store, sess := newTestApp(t)

	p := models.Product{Nombre: "Monstera", Descripcion: "d", Precio: 12990, Categoria: "interior", Stock: 5}
	require.NoError(t, store.CreateProduct(context.Background(), &p))

	// First purchase of 3 succeeds and leaves stock at 2.
	resp, err := app.Test(purchaseRequestWith(t, sess, []models.PurchaseItem{{ProductoId: p.Id.Hex(), Cantidad: 3}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["receiptToken"])
	assert.NotEmpty(t, body["saleId"])
	assert.Equal(t, 12990.0*3, body["total"])

	got, err := store.ProductByID(context.Background(), p.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// Second purchase of 3 fails and stock stays at 2.
	resp, err = app.Test(purchaseRequestWith(t, sess, []models.PurchaseItem{{ProductoId: p.Id.Hex(), Cantidad: 3}}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	got, err = store.ProductByID(context.Background(), p.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	app, _, sess := newTestApp(t)

	resp, err := app.Test(purchaseRequestWith(t, sess, []models.PurchaseItem{
		{ProductoId: "64b0c5f2a1b2c3d4e5f60799", Cantidad: 1},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
