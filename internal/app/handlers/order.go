package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mathanmathan27/aarvel-store/internal/domain/models"
	"github.com/mathanmathan27/aarvel-store/internal/service"
)

var validate = validator.New()

// PackOption is one size/price entry shown on the product and checkout pages.
type PackOption struct {
	Size  int    `json:"size"`
	Price int    `json:"price"`
	Label string `json:"label"`
}

// ProductResponse describes the single product on offer.
type ProductResponse struct {
	Product string       `json:"product"`
	Packs   []PackOption `json:"packs"`
}

// SubmitOrderResponse is returned after a checkout submission. Warning is set
// when the order could not be written to the ledger.
type SubmitOrderResponse struct {
	Order   *models.Order `json:"order"`
	Warning string        `json:"warning,omitempty"`
}

func packOptions(productName string) []PackOption {
	var packs []PackOption
	for _, size := range models.PackSizes() {
		packs = append(packs, PackOption{
			Size:  size,
			Price: models.PriceFor(size),
			Label: fmt.Sprintf("%s %dg", productName, size),
		})
	}
	return packs
}

// ProductHandler handles GET /.
func ProductHandler(log *slog.Logger, productName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductHandler"
		logger := log.With(slog.String("op", op))

		resp := ProductResponse{Product: productName, Packs: packOptions(productName)}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// CheckoutHandler handles GET /checkout?size=<grams>. The size parameter is
// validated against the price table instead of being passed through blind,
// and the returned price always comes from the table.
func CheckoutHandler(log *slog.Logger, productName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		size, err := strconv.Atoi(r.URL.Query().Get("size"))
		if err != nil || !models.ValidSize(size) {
			logger.Warn("invalid checkout size", slog.String("size", r.URL.Query().Get("size")))
			http.Error(w, "unknown pack size", http.StatusBadRequest)
			return
		}

		resp := PackOption{
			Size:  size,
			Price: models.PriceFor(size),
			Label: fmt.Sprintf("%s %dg", productName, size),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// SubmitOrderHandler handles POST /submit_order. Customer fields default to
// empty strings when absent; the submitted price field is ignored because the
// service recomputes it from the pack size.
func SubmitOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SubmitOrderHandler"
		logger := log.With(slog.String("op", op))

		if err := r.ParseForm(); err != nil {
			logger.Error("invalid form", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		sizeField := r.PostFormValue("size")
		if sizeField == "" {
			sizeField = r.PostFormValue("quantity")
		}
		size, _ := strconv.Atoi(sizeField)

		sub := service.OrderSubmission{
			Name:    r.PostFormValue("name"),
			Phone:   r.PostFormValue("phone"),
			Street:  r.PostFormValue("street"),
			City:    r.PostFormValue("city"),
			State:   r.PostFormValue("state"),
			Pincode: r.PostFormValue("pincode"),
			Size:    size,
		}

		order, err := orderService.CreateOrder(r.Context(), sub)
		if err != nil && !errors.Is(err, service.ErrLedgerUnavailable) {
			logger.Error("failed to create order", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		resp := SubmitOrderResponse{Order: order}
		if err != nil {
			// order accepted but not persisted; tell the customer instead
			// of failing or hiding it
			logger.Warn("order not persisted", slog.String("orderID", order.OrderID), slog.Any("error", err))
			resp.Warning = "order accepted but not yet recorded, please keep your order id"
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}
