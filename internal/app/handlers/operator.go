package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mathanmathan27/aarvel-store/internal/domain/models"
	"github.com/mathanmathan27/aarvel-store/internal/service"
	"github.com/mathanmathan27/aarvel-store/internal/storage"
)

// OperatorLoginRequest is the operator credential payload.
type OperatorLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type OperatorLoginResponse struct {
	Token string `json:"token"`
}

type OperatorOrdersResponse struct {
	Orders []*models.Order `json:"orders"`
}

// OperatorLoginHandler handles POST /operator/login.
func OperatorLoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OperatorLoginHandler"
		logger := log.With(slog.String("op", op))

		var req OperatorLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		token, err := authService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				logger.Warn("login rejected")
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		resp := OperatorLoginResponse{Token: token}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// OperatorOrdersHandler handles GET /operator/orders.
func OperatorOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OperatorOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		resp := OperatorOrdersResponse{Orders: orders}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// OperatorOrderHandler handles GET /operator/orders/{orderID}.
func OperatorOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OperatorOrderHandler"
		logger := log.With(slog.String("op", op))

		orderID := chi.URLParam(r, "orderID")
		if orderID == "" {
			logger.Error("orderID parameter is missing")
			http.Error(w, "orderID parameter is required", http.StatusBadRequest)
			return
		}

		order, err := orderService.GetOrder(r.Context(), orderID)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to get order", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(order); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// OperatorCancelHandler handles POST /operator/orders/{orderID}/cancel.
// Cancelling an unknown or already settled order is a no-op.
func OperatorCancelHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OperatorCancelHandler"
		logger := log.With(slog.String("op", op))

		orderID := chi.URLParam(r, "orderID")
		if orderID == "" {
			logger.Error("orderID parameter is missing")
			http.Error(w, "orderID parameter is required", http.StatusBadRequest)
			return
		}

		if err := paymentService.CancelOrder(r.Context(), orderID); err != nil {
			logger.Error("failed to cancel order", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"message": "order cancelled"}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
