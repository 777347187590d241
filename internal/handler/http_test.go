package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/internal/handler"
	mocks "github.com/strumhaus/order-service/internal/handler/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(orders *mocks.MockOrderService, coupons *mocks.MockCouponService, notifications *mocks.MockNotificationService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewHTTPHandler(logger, testSecret, orders, coupons, notifications)
	r := chi.NewRouter()
	h.Init(r)
	return r
}

func makeToken(t *testing.T, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestHTTPHandler_ApplyCoupon(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		mockBehavior func(coupons *mocks.MockCouponService)
		wantStatus   int
		wantBody     map[string]any
	}{
		{
			name: "valid coupon",
			body: `{"coupon_code":"SAVE10","subtotal":1000}`,
			mockBehavior: func(coupons *mocks.MockCouponService) {
				coupons.On("ApplyCoupon", mock.Anything, "SAVE10", float64(1000)).
					Return(float64(100), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": true, "discount_amount": float64(100)},
		},
		{
			name: "expired coupon",
			body: `{"coupon_code":"OLD","subtotal":1000}`,
			mockBehavior: func(coupons *mocks.MockCouponService) {
				coupons.On("ApplyCoupon", mock.Anything, "OLD", float64(1000)).
					Return(float64(0), entities.ErrCouponExpired)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": false, "error": "coupon_expired"},
		},
		{
			name: "unknown coupon",
			body: `{"coupon_code":"NOPE","subtotal":50}`,
			mockBehavior: func(coupons *mocks.MockCouponService) {
				coupons.On("ApplyCoupon", mock.Anything, "NOPE", float64(50)).
					Return(float64(0), entities.ErrCouponNotFound)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": false, "error": "coupon_not_found"},
		},
		{
			name:         "missing code",
			body:         `{"subtotal":1000}`,
			mockBehavior: func(coupons *mocks.MockCouponService) {},
			wantStatus:   http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			coupons := new(mocks.MockCouponService)
			tc.mockBehavior(coupons)

			r := newTestRouter(new(mocks.MockOrderService), coupons, new(mocks.MockNotificationService))

			req := httptest.NewRequest(http.MethodPost, "/coupons/apply", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != nil {
				var got map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				for k, v := range tc.wantBody {
					assert.Equal(t, v, got[k], k)
				}
			}
		})
	}
}

func TestHTTPHandler_GetOrderByID(t *testing.T) {
	order := entities.Order{
		OrderID:    "order-1",
		CustomerID: "customer-1",
		Status:     entities.StatusPlaced,
	}

	testCases := []struct {
		name         string
		token        string
		mockBehavior func(orders *mocks.MockOrderService)
		wantStatus   int
	}{
		{
			name:  "owner can read",
			token: "customer-1|customer",
			mockBehavior: func(orders *mocks.MockOrderService) {
				orders.On("GetOrderByID", mock.Anything, "order-1").Return(order, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "admin can read",
			token: "admin-1|admin",
			mockBehavior: func(orders *mocks.MockOrderService) {
				orders.On("GetOrderByID", mock.Anything, "order-1").Return(order, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "stranger gets not found",
			token: "customer-2|customer",
			mockBehavior: func(orders *mocks.MockOrderService) {
				orders.On("GetOrderByID", mock.Anything, "order-1").Return(order, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:  "missing order",
			token: "customer-1|customer",
			mockBehavior: func(orders *mocks.MockOrderService) {
				orders.On("GetOrderByID", mock.Anything, "order-1").
					Return(entities.Order{}, entities.ErrOrderNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:         "no token",
			token:        "",
			mockBehavior: func(orders *mocks.MockOrderService) {},
			wantStatus:   http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := new(mocks.MockOrderService)
			tc.mockBehavior(orders)

			r := newTestRouter(orders, new(mocks.MockCouponService), new(mocks.MockNotificationService))

			req := httptest.NewRequest(http.MethodGet, "/orders/order-1", nil)
			if tc.token != "" {
				parts := strings.SplitN(tc.token, "|", 2)
				req.Header.Set("Authorization", "Bearer "+makeToken(t, parts[0], parts[1]))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHTTPHandler_ChangeStatus(t *testing.T) {
	updated := entities.Order{
		OrderID:    "order-1",
		CustomerID: "customer-1",
		Status:     entities.StatusShipped,
		History: []entities.HistoryEntry{
			{Status: entities.StatusPlaced},
			{Status: entities.StatusShipped},
		},
	}

	testCases := []struct {
		name         string
		role         string
		body         string
		mockBehavior func(orders *mocks.MockOrderService)
		wantStatus   int
	}{
		{
			name: "admin changes status",
			role: entities.RoleAdmin,
			body: `{"status":"Shipped","comment":"left the warehouse"}`,
			mockBehavior: func(orders *mocks.MockOrderService) {
				orders.On("ChangeStatus", mock.Anything, "order-1", entities.StatusShipped, "left the warehouse").
					Return(updated, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:         "customer is forbidden",
			role:         entities.RoleCustomer,
			body:         `{"status":"Shipped"}`,
			mockBehavior: func(orders *mocks.MockOrderService) {},
			wantStatus:   http.StatusForbidden,
		},
		{
			name:         "unknown status",
			role:         entities.RoleAdmin,
			body:         `{"status":"Teleported"}`,
			mockBehavior: func(orders *mocks.MockOrderService) {},
			wantStatus:   http.StatusBadRequest,
		},
		{
			name: "order not found",
			role: entities.RoleAdmin,
			body: `{"status":"Cancelled"}`,
			mockBehavior: func(orders *mocks.MockOrderService) {
				orders.On("ChangeStatus", mock.Anything, "order-1", entities.StatusCancelled, "").
					Return(entities.Order{}, entities.ErrOrderNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := new(mocks.MockOrderService)
			tc.mockBehavior(orders)

			r := newTestRouter(orders, new(mocks.MockCouponService), new(mocks.MockNotificationService))

			req := httptest.NewRequest(http.MethodPatch, "/orders/order-1/status", strings.NewReader(tc.body))
			req.Header.Set("Authorization", "Bearer "+makeToken(t, "user-1", tc.role))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				var got handler.Order
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, "Shipped", got.Status)
				assert.Len(t, got.History, 2)
			}
		})
	}
}

func TestHTTPHandler_CreateOrder(t *testing.T) {
	body := `{
		"items":[{"product_id":"strat-52","name":"Stratocaster","unit_price":1299,"quantity":1,"customizations":{"finish":"sunburst"}}],
		"shipping_address":{"name":"Jo","city":"Berlin"},
		"summary":{"subtotal":1299,"shipping_cost":20,"discount":0,"grand_total":1319,"payment_method":"card"}
	}`

	orders := new(mocks.MockOrderService)
	orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
		return o.CustomerID == "customer-1" && len(o.Items) == 1
	})).Return(entities.Order{
		OrderID:    "order-1",
		CustomerID: "customer-1",
		Status:     entities.StatusPlaced,
		History:    []entities.HistoryEntry{{Status: entities.StatusPlaced}},
	}, nil)

	r := newTestRouter(orders, new(mocks.MockCouponService), new(mocks.MockNotificationService))

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+makeToken(t, "customer-1", entities.RoleCustomer))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got handler.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Placed", got.Status)
	require.Len(t, got.History, 1)
	assert.Equal(t, "Placed", got.History[0].Status)
}

func TestHTTPHandler_CreateCoupon_DuplicateCode(t *testing.T) {
	coupons := new(mocks.MockCouponService)
	coupons.On("CreateCoupon", mock.Anything, mock.Anything).
		Return(entities.Coupon{}, entities.ErrCouponExists)

	r := newTestRouter(new(mocks.MockOrderService), coupons, new(mocks.MockNotificationService))

	body := `{"code":"SAVE10","discount_type":"percentage","discount_value":10}`
	req := httptest.NewRequest(http.MethodPost, "/admin/coupons", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+makeToken(t, "admin-1", entities.RoleAdmin))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHTTPHandler_CreateOrder_EmptyCart(t *testing.T) {
	r := newTestRouter(new(mocks.MockOrderService), new(mocks.MockCouponService), new(mocks.MockNotificationService))

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"items":[],"shipping_address":{},"summary":{}}`))
	req.Header.Set("Authorization", "Bearer "+makeToken(t, "customer-1", entities.RoleCustomer))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
