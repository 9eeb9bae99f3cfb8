package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/service"
)

type stubPeriodStore struct{}

func (stubPeriodStore) ListByPeriod(year, month int) ([]*models.Order, error) { return nil, nil }

type stubStockStore struct{}

func (stubStockStore) GetAll() ([]models.Product, error) { return nil, nil }

type stubSettingsStore struct{}

func (stubSettingsStore) GetByAdmin(adminUserID int) (*models.CostSettings, error) {
	return &models.CostSettings{AdminUserID: adminUserID}, nil
}

func newCalculatorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewCalculatorService(stubPeriodStore{}, stubStockStore{}, stubSettingsStore{})
	h := NewCalculatorHandler(svc)

	router := gin.New()
	router.GET("/v1/admin/calculator", h.Calculate)
	return router
}

func TestCalculatorHandler_MonthValidation(t *testing.T) {
	router := newCalculatorRouter()

	cases := []struct {
		name   string
		query  string
		status int
	}{
		{"missing params default to current month", "", http.StatusOK},
		{"explicit period", "?year=2026&month=5", http.StatusOK},
		{"explicit month zero rejected", "?year=2026&month=0", http.StatusBadRequest},
		{"month out of range rejected", "?year=2026&month=13", http.StatusBadRequest},
		{"garbage month rejected", "?year=2026&month=may", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/calculator"+tc.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
			}
		})
	}
}
