package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openpantry/productdb-backend/internal/descriptions"
	"github.com/openpantry/productdb-backend/internal/missing"
	product "github.com/openpantry/productdb-backend/internal/products"
	request "github.com/openpantry/productdb-backend/internal/requests"
	"github.com/openpantry/productdb-backend/pkg/config"
	"github.com/openpantry/productdb-backend/pkg/enums"
	"github.com/openpantry/productdb-backend/pkg/logger"
	"github.com/openpantry/productdb-backend/pkg/metrics"
	"github.com/openpantry/productdb-backend/pkg/query"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubProductService struct {
	queried bool
}

func (s *stubProductService) Create(ctx context.Context, in descriptions.Input) (*product.DTO, error) {
	return &product.DTO{ID: 1, ProductID: in.ProductID}, nil
}

func (s *stubProductService) Delete(ctx context.Context, productID string) error {
	return nil
}

func (s *stubProductService) Get(ctx context.Context, productID string, opts descriptions.LoadOptions) (*product.DTO, error) {
	return &product.DTO{ID: 1, ProductID: productID}, nil
}

func (s *stubProductService) GetImage(ctx context.Context, productID string, slot enums.ImageSlot) (*descriptions.ImageDTO, error) {
	return &descriptions.ImageDTO{Data: []byte{0x1}, ContentType: "image/png"}, nil
}

func (s *stubProductService) Query(ctx context.Context, params query.Params) ([]product.ListItemDTO, error) {
	s.queried = true
	return nil, nil
}

type stubRequestService struct{}

func (stubRequestService) Create(ctx context.Context, in descriptions.Input) (*request.CreatedDTO, error) {
	return &request.CreatedDTO{ID: 1}, nil
}

func (stubRequestService) Get(ctx context.Context, id int64, opts descriptions.LoadOptions) (*request.DTO, error) {
	return &request.DTO{ID: id}, nil
}

func (stubRequestService) GetImage(ctx context.Context, id int64, slot enums.ImageSlot) (*descriptions.ImageDTO, error) {
	return &descriptions.ImageDTO{ContentType: "image/png"}, nil
}

func (stubRequestService) Delete(ctx context.Context, id int64) error {
	return nil
}

func (stubRequestService) Query(ctx context.Context, params query.Params) ([]request.ListItemDTO, error) {
	return nil, nil
}

type stubMissingService struct{}

func (stubMissingService) Report(ctx context.Context, productID string) (*missing.CreatedDTO, error) {
	return &missing.CreatedDTO{ID: 1}, nil
}

func (stubMissingService) Delete(ctx context.Context, id int64) error {
	return nil
}

func (stubMissingService) Query(ctx context.Context, params query.Params) ([]missing.ListItemDTO, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, dbP stubPinger) (http.Handler, *stubProductService) {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	registry := prometheus.NewRegistry()
	productStub := &stubProductService{}
	handler := NewRouter(
		cfg,
		logg,
		dbP,
		nil,
		metrics.NewHTTPMetrics(registry),
		registry,
		productStub,
		stubRequestService{},
		stubMissingService{},
	)
	return handler, productStub
}

func TestRouterHealth(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health/live, got %d", rec.Code)
	}
	if env := rec.Header().Get("X-ProductDB-Env"); env != "test" {
		t.Fatalf("expected env header, got %q", env)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health/ready, got %d", rec.Code)
	}
}

func TestRouterReadyReportsDependencyFailure(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{err: io.ErrClosedPipe})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when database is down, got %d", rec.Code)
	}
}

func TestRouterDispatch(t *testing.T) {
	handler, productStub := newTestRouter(t, stubPinger{})

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"limit": 10}`)
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/user/product/query", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from product query, got %d: %s", rec.Code, rec.Body.String())
	}
	if !productStub.queried {
		t.Fatalf("expected query to reach the product service")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/product/4006381333931", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from product fetch, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/product/4006381333931", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from product delete, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{})

	// A request first so the registry has something to report.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}
