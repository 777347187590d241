package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// Отказ купона это не ошибка запроса: ответ всегда 200 с success=false и
// машинной причиной.
var couponReasons = map[error]string{
	entities.ErrCouponNotFound:    "coupon_not_found",
	entities.ErrCouponInactive:    "coupon_inactive",
	entities.ErrCouponNotYetValid: "coupon_not_yet_valid",
	entities.ErrCouponExpired:     "coupon_expired",
	entities.ErrCouponMinOrder:    "min_order_amount_not_met",
}

// ApplyCoupon проверяет купон и возвращает размер скидки.
// @Summary      Применить купон
// @Tags         coupons
// @Accept       json
// @Param        request body ApplyCouponRequest true "Код купона и сумма корзины"
// @Success      200  {object}  ApplyCouponResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /coupons/apply [post]
func (h *HTTPHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ApplyCouponRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	discount, err := h.coupons.ApplyCoupon(ctx, req.CouponCode, req.Subtotal)
	if err != nil {
		if reason, ok := rejectionReason(err); ok {
			couponsApplied.WithLabelValues("rejected").Inc()
			utils.WriteJSON(w, ApplyCouponResponse{Success: false, Error: reason}, http.StatusOK)
			return
		}
		h.logger.ErrorContext(ctx, "failed to apply coupon", slog.Any("error", err), slog.String("code", req.CouponCode))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	couponsApplied.WithLabelValues("applied").Inc()
	utils.WriteJSON(w, ApplyCouponResponse{Success: true, DiscountAmount: discount}, http.StatusOK)
}

func rejectionReason(err error) (string, bool) {
	for sentinel, reason := range couponReasons {
		if errors.Is(err, sentinel) {
			return reason, true
		}
	}
	return "", false
}

func (h *HTTPHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coupons, err := h.coupons.ListCoupons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list coupons", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CouponsEntityToJSON(coupons), http.StatusOK)
}

func (h *HTTPHandler) ListAllCoupons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coupons, err := h.coupons.ListAllCoupons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list coupons", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CouponsEntityToJSON(coupons), http.StatusOK)
}

func (h *HTTPHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpsertCouponRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	coupon, err := h.coupons.CreateCoupon(ctx, UpsertCouponRequestToEntity(req))
	if errors.Is(err, entities.ErrCouponExists) {
		utils.WriteError(w, "coupon already exists", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create coupon", slog.Any("error", err), slog.String("code", req.Code))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CouponEntityToJSON(coupon), http.StatusCreated)
}

func (h *HTTPHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpsertCouponRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Code = chi.URLParam(r, "code")
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	coupon, err := h.coupons.UpdateCoupon(ctx, UpsertCouponRequestToEntity(req))
	if errors.Is(err, entities.ErrCouponNotFound) {
		utils.WriteError(w, "coupon not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update coupon", slog.Any("error", err), slog.String("code", req.Code))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CouponEntityToJSON(coupon), http.StatusOK)
}

func (h *HTTPHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	err := h.coupons.DeleteCoupon(ctx, code)
	if errors.Is(err, entities.ErrCouponNotFound) {
		utils.WriteError(w, "coupon not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete coupon", slog.Any("error", err), slog.String("code", code))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
