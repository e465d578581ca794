package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	productsvc "github.com/openpantry/productdb-backend/internal/products"
	"github.com/openpantry/productdb-backend/pkg/enums"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/logger"
	"github.com/openpantry/productdb-backend/pkg/query"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

const validProductBody = `{
	"product_id": "4006381333931",
	"name": "Rolled Oats",
	"quantity_type": "weight",
	"portion": 40,
	"nutrients": {"kcal": 150}
}`

type stubProductService struct {
	createIn  *descriptions.Input
	deleteID  string
	getID     string
	getOpts   descriptions.LoadOptions
	imageSlot enums.ImageSlot
	params    query.Params

	createErr error
	deleteErr error
	getErr    error
	imageErr  error
	queryErr  error
	items     []productsvc.ListItemDTO
	image     *descriptions.ImageDTO
}

func (s *stubProductService) Create(ctx context.Context, in descriptions.Input) (*productsvc.DTO, error) {
	s.createIn = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &productsvc.DTO{ID: 1, ProductID: in.ProductID}, nil
}

func (s *stubProductService) Delete(ctx context.Context, productID string) error {
	s.deleteID = productID
	return s.deleteErr
}

func (s *stubProductService) Get(ctx context.Context, productID string, opts descriptions.LoadOptions) (*productsvc.DTO, error) {
	s.getID = productID
	s.getOpts = opts
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &productsvc.DTO{ID: 7, ProductID: productID}, nil
}

func (s *stubProductService) GetImage(ctx context.Context, productID string, slot enums.ImageSlot) (*descriptions.ImageDTO, error) {
	s.getID = productID
	s.imageSlot = slot
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return s.image, nil
}

func (s *stubProductService) Query(ctx context.Context, params query.Params) ([]productsvc.ListItemDTO, error) {
	s.params = params
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.items, nil
}

func TestAdminCreateProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/product", strings.NewReader(validProductBody))
		rec := httptest.NewRecorder()
		AdminCreateProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.createIn == nil || stub.createIn.ProductID != "4006381333931" {
			t.Fatalf("expected service to receive input, got %+v", stub.createIn)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/product", strings.NewReader(`{"product_id":`))
		rec := httptest.NewRecorder()
		AdminCreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 on malformed json, got %d", rec.Code)
		}
	})

	t.Run("invalid quantity type", func(t *testing.T) {
		body := strings.Replace(validProductBody, `"weight"`, `"gallons"`, 1)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/product", strings.NewReader(body))
		rec := httptest.NewRecorder()
		AdminCreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 on invalid quantity type, got %d", rec.Code)
		}
	})

	t.Run("missing kcal", func(t *testing.T) {
		body := strings.Replace(validProductBody, `{"kcal": 150}`, `{}`, 1)
		stub := &stubProductService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/product", strings.NewReader(body))
		rec := httptest.NewRecorder()
		AdminCreateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without kcal, got %d", rec.Code)
		}
		if stub.createIn != nil {
			t.Fatal("expected service untouched on invalid payload")
		}
	})

	t.Run("duplicate product id", func(t *testing.T) {
		stub := &stubProductService{createErr: pkgerrors.New(pkgerrors.CodeConflict, "product id already published")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/product", strings.NewReader(validProductBody))
		rec := httptest.NewRecorder()
		AdminCreateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on duplicate, got %d", rec.Code)
		}
	})
}

func TestAdminDeleteProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{}
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/product/4006381333931", nil)
		req = withURLParam(req, "productId", "4006381333931")
		rec := httptest.NewRecorder()
		AdminDeleteProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.deleteID != "4006381333931" {
			t.Fatalf("expected delete for 4006381333931, got %q", stub.deleteID)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		stub := &stubProductService{deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/product/0000", nil)
		req = withURLParam(req, "productId", "0000")
		rec := httptest.NewRecorder()
		AdminDeleteProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUserGetProduct(t *testing.T) {
	logg := testLogger()

	t.Run("image flags forwarded", func(t *testing.T) {
		stub := &stubProductService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/product/4006381333931?with_preview=true", nil)
		req = withURLParam(req, "productId", "4006381333931")
		rec := httptest.NewRecorder()
		UserGetProduct(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !stub.getOpts.WithPreview || stub.getOpts.WithFullImage {
			t.Fatalf("expected preview only, got %+v", stub.getOpts)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubProductService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/product/0000", nil)
		req = withURLParam(req, "productId", "0000")
		rec := httptest.NewRecorder()
		UserGetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestUserGetProductImage(t *testing.T) {
	logg := testLogger()

	t.Run("streams bytes", func(t *testing.T) {
		stub := &stubProductService{image: &descriptions.ImageDTO{Data: []byte{0x89, 0x50}, ContentType: "image/png"}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/product/4006381333931/image?slot=preview", nil)
		req = withURLParam(req, "productId", "4006381333931")
		rec := httptest.NewRecorder()
		UserGetProductImage(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Fatalf("expected image/png, got %q", ct)
		}
		if stub.imageSlot != enums.ImageSlotPreview {
			t.Fatalf("expected preview slot, got %q", stub.imageSlot)
		}
		if rec.Body.Len() != 2 {
			t.Fatalf("expected raw bytes in body, got %d bytes", rec.Body.Len())
		}
	})

	t.Run("missing slot", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/user/product/4006381333931/image", nil)
		req = withURLParam(req, "productId", "4006381333931")
		rec := httptest.NewRecorder()
		UserGetProductImage(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without slot, got %d", rec.Code)
		}
	})
}

func TestUserQueryProducts(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{items: []productsvc.ListItemDTO{{ID: 3, Entity: productsvc.DTO{ID: 3, ProductID: "4006381333931"}}}}
		body := `{"limit": 10, "filter": {"kind": "text_search", "query": "oats"}, "sort": {"field": "similarity", "order": "desc"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/user/product/query", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UserQueryProducts(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.params.Filter.Kind != query.FilterTextSearch || stub.params.Filter.Query != "oats" {
			t.Fatalf("expected text search params, got %+v", stub.params.Filter)
		}

		var envelope struct {
			Data []productsvc.ListItemDTO `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(envelope.Data) != 1 || envelope.Data[0].ID != 3 {
			t.Fatalf("unexpected items: %+v", envelope.Data)
		}
	})

	t.Run("zero limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/user/product/query", strings.NewReader(`{"limit": 0}`))
		rec := httptest.NewRecorder()
		UserQueryProducts(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero limit, got %d", rec.Code)
		}
	})

	t.Run("unknown sort field", func(t *testing.T) {
		body := `{"limit": 10, "sort": {"field": "price", "order": "asc"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/user/product/query", strings.NewReader(body))
		rec := httptest.NewRecorder()
		UserQueryProducts(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown sort field, got %d", rec.Code)
		}
	})
}
