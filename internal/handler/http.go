package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/internal/middleware"
	"github.com/strumhaus/order-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
	ChangeStatus(ctx context.Context, orderID string, status entities.OrderStatus, comment string) (entities.Order, error)
}

type CouponService interface {
	ApplyCoupon(ctx context.Context, code string, subtotal float64) (float64, error)
	ListCoupons(ctx context.Context) ([]entities.Coupon, error)
	ListAllCoupons(ctx context.Context) ([]entities.Coupon, error)
	CreateCoupon(ctx context.Context, coupon entities.Coupon) (entities.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon entities.Coupon) (entities.Coupon, error)
	DeleteCoupon(ctx context.Context, code string) error
}

type NotificationService interface {
	Notifications(ctx context.Context, recipientID string) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id int64, recipientID string) error
}

type HTTPHandler struct {
	logger        *slog.Logger
	validate      *validator.Validate
	jwtSecret     string
	orders        OrderService
	coupons       CouponService
	notifications NotificationService
}

func NewHTTPHandler(logger *slog.Logger, jwtSecret string, orders OrderService, coupons CouponService, notifications NotificationService) *HTTPHandler {
	return &HTTPHandler{
		logger:        logger.With(slog.String("handler", "http")),
		validate:      validator.New(),
		jwtSecret:     jwtSecret,
		orders:        orders,
		coupons:       coupons,
		notifications: notifications,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Post("/coupons/apply", h.ApplyCoupon)
	r.Get("/coupons", h.ListCoupons)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.jwtSecret))

		r.Post("/orders", h.CreateOrder)
		r.Get("/orders", h.ListMyOrders)
		r.Get("/orders/{order_id}", h.GetOrderByID)

		r.Get("/notifications", h.ListNotifications)
		r.Post("/notifications/{notification_id}/read", h.MarkNotificationRead)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Patch("/orders/{order_id}/status", h.ChangeStatus)
			r.Get("/admin/orders", h.LatestOrders)

			r.Get("/admin/coupons", h.ListAllCoupons)
			r.Post("/admin/coupons", h.CreateCoupon)
			r.Put("/admin/coupons/{code}", h.UpdateCoupon)
			r.Delete("/admin/coupons/{code}", h.DeleteCoupon)
		})
	})
}

// CreateOrder оформляет заказ из снимка корзины.
// @Summary      Оформить заказ
// @Description  Создаёт заказ со статусом Placed и одной записью в истории
// @Tags         orders
// @Accept       json
// @Param        request body CreateOrderRequest true "Снимок корзины"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, CreateOrderRequestToEntity(req, principal.UserID))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ordersCreated.Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ
// @Tags         orders
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// чужой заказ не раскрываем, для клиента он "не найден"
	principal, _ := middleware.PrincipalFromContext(ctx)
	if order.CustomerID != principal.UserID && principal.Role != entities.RoleAdmin {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.orders.ListOrdersByCustomer(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

const defaultLatestCount = 50

func (h *HTTPHandler) LatestOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count := defaultLatestCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.WriteError(w, "invalid count", http.StatusBadRequest)
			return
		}
		count = parsed
	}

	orders, err := h.orders.LatestOrders(ctx, count)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list latest orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// ChangeStatus применяет смену статуса заказа.
// @Summary      Сменить статус заказа
// @Description  Дописывает запись в историю и рассылает уведомления
// @Tags         orders
// @Accept       json
// @Param        order_id path string true "Идентификатор заказа"
// @Param        request body ChangeStatusRequest true "Новый статус"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Неизвестный статус"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Router       /orders/{order_id}/status [patch]
func (h *HTTPHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	var req ChangeStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	status := entities.OrderStatus(req.Status)
	if !status.Valid() {
		utils.WriteError(w, "unknown status", http.StatusBadRequest)
		return
	}

	order, err := h.orders.ChangeStatus(ctx, orderID, status, req.Comment)
	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to change status", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	statusTransitions.WithLabelValues(req.Status).Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notifications.Notifications(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, NotificationsEntityToJSON(notifications), http.StatusOK)
}

func (h *HTTPHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "notification_id"), 10, 64)
	if err != nil {
		utils.WriteError(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	err = h.notifications.MarkRead(ctx, id, principal.UserID)
	if errors.Is(err, entities.ErrNotificationNotFound) {
		utils.WriteError(w, "notification not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to mark notification read", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
