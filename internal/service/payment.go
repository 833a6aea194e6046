package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mathanmathan27/aarvel-store/internal/domain/models"
	"github.com/mathanmathan27/aarvel-store/internal/storage"
)

// Status values written to the status log by the UPI callback.
const (
	CallbackSuccess = "SUCCESS"
	CallbackFailure = "FAILURE"
	CallbackPending = "PENDING"
)

// PaymentOutcome classifies the resolved state of a payment for the result
// page.
type PaymentOutcome string

const (
	OutcomeSuccess PaymentOutcome = "success"
	OutcomeFailed  PaymentOutcome = "failed"
	OutcomePending PaymentOutcome = "pending"
)

type PaymentService interface {
	// RecordCallback appends a callback event to the status log. The order
	// id is not checked for existence; the log is a plain sink.
	RecordCallback(ctx context.Context, orderID, status string) error
	// ResolveStatus classifies the last logged event for the order id,
	// defaulting to pending when the id never appears.
	ResolveStatus(ctx context.Context, orderID string) (PaymentOutcome, error)
	// ConfirmPaid marks the ledger row Paid and logs a SUCCESS event so the
	// result page reflects the confirmation. A missing or already settled
	// order is a no-op.
	ConfirmPaid(ctx context.Context, orderID string) error
	// CancelOrder marks the ledger row Cancelled, same no-op semantics.
	CancelOrder(ctx context.Context, orderID string) error
	// SubmitManualProof stores a payment screenshot and logs the order as
	// pending manual review.
	SubmitManualProof(ctx context.Context, orderID, originalName string, file io.Reader) error
}

type paymentService struct {
	log         *slog.Logger
	ledger      storage.LedgerStorage
	statusLog   storage.StatusLogStorage
	screenshots storage.ScreenshotStorage
}

func NewPaymentService(log *slog.Logger, ledger storage.LedgerStorage, statusLog storage.StatusLogStorage, screenshots storage.ScreenshotStorage) PaymentService {
	return &paymentService{
		log:         log,
		ledger:      ledger,
		statusLog:   statusLog,
		screenshots: screenshots,
	}
}

func (s *paymentService) RecordCallback(ctx context.Context, orderID, status string) error {
	const op = "service.PaymentService.RecordCallback"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))

	if err := s.statusLog.Append(ctx, orderID, status); err != nil {
		logger.Error("failed to record callback", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("callback recorded", slog.String("status", status))
	return nil
}

func (s *paymentService) ResolveStatus(ctx context.Context, orderID string) (PaymentOutcome, error) {
	const op = "service.PaymentService.ResolveStatus"

	last, err := s.statusLog.LastStatus(ctx, orderID)
	if err != nil {
		s.log.Error("failed to resolve status", slog.String("op", op), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	switch last {
	case CallbackSuccess:
		return OutcomeSuccess, nil
	case CallbackFailure:
		return OutcomeFailed, nil
	default:
		return OutcomePending, nil
	}
}

func (s *paymentService) ConfirmPaid(ctx context.Context, orderID string) error {
	const op = "service.PaymentService.ConfirmPaid"

	settled, err := s.settle(ctx, orderID, models.StatusPaid, op)
	if err != nil || !settled {
		return err
	}

	// mirror the confirmation into the status log so the result page the
	// customer is redirected to resolves as success, not pending
	if err := s.statusLog.Append(ctx, orderID, CallbackSuccess); err != nil {
		s.log.Error("failed to log confirmation", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *paymentService) CancelOrder(ctx context.Context, orderID string) error {
	_, err := s.settle(ctx, orderID, models.StatusCancelled, "service.PaymentService.CancelOrder")
	return err
}

// settle moves a Pending ledger row to a terminal status and reports whether
// a row was actually moved. An unknown or already settled order id is
// treated as nothing-to-do rather than an error.
func (s *paymentService) settle(ctx context.Context, orderID string, status models.OrderStatus, op string) (bool, error) {
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))

	err := s.ledger.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			logger.Info("no pending order with that id, nothing to do")
			return false, nil
		}
		logger.Error("failed to update order status", slog.Any("error", err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order settled", slog.String("status", string(status)))
	return true, nil
}

func (s *paymentService) SubmitManualProof(ctx context.Context, orderID, originalName string, file io.Reader) error {
	const op = "service.PaymentService.SubmitManualProof"
	logger := s.log.With(slog.String("op", op), slog.String("orderID", orderID))

	stored, err := s.screenshots.Save(ctx, orderID, originalName, file)
	if err != nil {
		logger.Error("failed to store payment screenshot", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.statusLog.Append(ctx, orderID, CallbackPending); err != nil {
		logger.Error("failed to log manual payment", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("manual payment proof stored", slog.String("file", stored))
	return nil
}
