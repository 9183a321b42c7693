package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appctx "github.com/kipngetich-lab/TukoShop-App/pkg/ctx"
)

func TestWrapAndSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":1`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestQueryAndHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?category=home&page=2&limit=abc", nil)
	req.Header.Set("Idempotency-Key", "abc-123")

	appctx.Wrap(func(c *appctx.Context) {
		if c.Query("category") != "home" {
			t.Errorf("unexpected query: %s", c.Query("category"))
		}
		if got := c.QueryInt("page", 1); got != 2 {
			t.Errorf("expected page 2, got %d", got)
		}
		if got := c.QueryInt("limit", 20); got != 20 {
			t.Errorf("expected limit fallback 20, got %d", got)
		}
		if c.Header("Idempotency-Key") != "abc-123" {
			t.Errorf("unexpected header: %s", c.Header("Idempotency-Key"))
		}
		c.Success(nil)
	})(rec, req)
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"lamp","price":30}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name  string  `json:"name"  validate:"required"`
			Price float64 `json:"price" validate:"gte=0"`
		}
		if !c.BindJSON(&input) {
			t.Error("expected BindJSON to succeed")
			return
		}
		if input.Name != "lamp" {
			t.Errorf("expected lamp, got %s", input.Name)
		}
		c.Success(nil)
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBindJSONValidationFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail validation")
		}
	})(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestBindJSONMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct{}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail on malformed body")
		}
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
