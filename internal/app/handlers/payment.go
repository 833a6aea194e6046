package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mathanmathan27/aarvel-store/internal/service"
)

// maxScreenshotSize caps manual-payment uploads at 10 MiB.
const maxScreenshotSize = 10 << 20

// UPICallbackRequest is the JSON body posted by the payment provider.
type UPICallbackRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

// PaymentResultResponse reports the resolved outcome for an order.
type PaymentResultResponse struct {
	OrderID string                 `json:"order_id"`
	Outcome service.PaymentOutcome `json:"outcome"`
}

// UPICallbackHandler handles POST /upi_callback. Events are appended to the
// status log as-is; the order id is not checked against the ledger.
func UPICallbackHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UPICallbackHandler"
		logger := log.With(slog.String("op", op))

		var req UPICallbackRequest
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

		if err := paymentService.RecordCallback(r.Context(), req.OrderID, req.Status); err != nil {
			logger.Error("failed to record callback", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]bool{"ok": true}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// PaymentResultHandler handles GET /payment_result?order_id=<id>.
func PaymentResultHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PaymentResultHandler"
		logger := log.With(slog.String("op", op))

		orderID := r.URL.Query().Get("order_id")
		if orderID == "" {
			logger.Error("order_id parameter is missing")
			http.Error(w, "order_id parameter is required", http.StatusBadRequest)
			return
		}

		outcome, err := paymentService.ResolveStatus(r.Context(), orderID)
		if err != nil {
			logger.Error("failed to resolve status", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		resp := PaymentResultResponse{OrderID: orderID, Outcome: outcome}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// ConfirmPaidHandler handles POST /confirm_paid. A successful confirmation
// redirects to the payment result for the order; an unknown order id is a
// no-op and redirects all the same.
func ConfirmPaidHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ConfirmPaidHandler"
		logger := log.With(slog.String("op", op))

		if err := r.ParseForm(); err != nil {
			logger.Error("invalid form", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		orderID := r.PostFormValue("order_id")
		if orderID == "" {
			logger.Error("order_id field is missing")
			http.Error(w, "order_id field is required", http.StatusBadRequest)
			return
		}

		if err := paymentService.ConfirmPaid(r.Context(), orderID); err != nil {
			logger.Error("failed to confirm payment", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/payment_result?order_id="+url.QueryEscape(orderID), http.StatusSeeOther)
	}
}

// ManualPaidHandler handles POST /manual_paid: multipart form with order_id
// and a payment screenshot. The order stays pending until an operator
// confirms it.
func ManualPaidHandler(log *slog.Logger, paymentService service.PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ManualPaidHandler"
		logger := log.With(slog.String("op", op))

		if err := r.ParseMultipartForm(maxScreenshotSize); err != nil {
			logger.Error("invalid multipart form", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		orderID := r.PostFormValue("order_id")
		if orderID == "" {
			logger.Error("order_id field is missing")
			http.Error(w, "order_id field is required", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("screenshot")
		if err != nil {
			logger.Error("screenshot file is missing", slog.Any("error", err))
			http.Error(w, "screenshot file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if err := paymentService.SubmitManualProof(r.Context(), orderID, header.Filename, file); err != nil {
			logger.Error("failed to submit manual proof", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		resp := PaymentResultResponse{OrderID: orderID, Outcome: service.OutcomePending}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// VerifyPaymentHandler handles POST /verify_payment with a txn_id form
// field. The verifier is pluggable; the stock implementation compares
// against one configured token.
func VerifyPaymentHandler(log *slog.Logger, verifier service.TransactionVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.VerifyPaymentHandler"
		logger := log.With(slog.String("op", op))

		if err := r.ParseForm(); err != nil {
			logger.Error("invalid form", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		txnID := r.PostFormValue("txn_id")
		verified, err := verifier.Verify(r.Context(), txnID)
		if err != nil {
			logger.Error("verification failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		logger.Info("transaction verification", slog.Bool("verified", verified))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]bool{"verified": verified}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
