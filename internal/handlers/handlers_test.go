package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// harness serves handlers as the owner of one seeded barbershop.
type harness struct {
	t    *testing.T
	db   *gorm.DB
	shop *models.Barbershop
	r    *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	shop := testutil.SeedBarbershop(t, db, "teixeira")

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, shop.OwnerID)
		c.Set(middleware.ContextBarbershop, shop)
		c.Next()
	})

	return &harness{t: t, db: db, shop: shop, r: r}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	return serve(h.t, h.r, method, path, body)
}

func serve(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[httperr.HTTPError](t, w).Code
}

type list[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type page[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
