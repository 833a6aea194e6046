package service_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/mathanmathan27/aarvel-store/internal/domain/models"
	"github.com/mathanmathan27/aarvel-store/internal/service"
	"github.com/mathanmathan27/aarvel-store/internal/storage"
	"github.com/stretchr/testify/assert"
)

type logEntry struct {
	orderID string
	status  string
}

// fakeStatusLog is an in-memory StatusLogStorage preserving append order.
type fakeStatusLog struct {
	entries []logEntry
}

var _ storage.StatusLogStorage = (*fakeStatusLog)(nil)

func (f *fakeStatusLog) Append(ctx context.Context, orderID, status string) error {
	f.entries = append(f.entries, logEntry{orderID: orderID, status: status})
	return nil
}

func (f *fakeStatusLog) LastStatus(ctx context.Context, orderID string) (string, error) {
	var last string
	for _, e := range f.entries {
		if e.orderID == orderID {
			last = e.status
		}
	}
	return last, nil
}

// fakeScreenshots records saved uploads without touching the filesystem.
type fakeScreenshots struct {
	saved []string
}

var _ storage.ScreenshotStorage = (*fakeScreenshots)(nil)

func (f *fakeScreenshots) Save(ctx context.Context, orderID, originalName string, file io.Reader) (string, error) {
	name := orderID + "_" + originalName
	f.saved = append(f.saved, name)
	return name, nil
}

func newPaymentService(ledger *fakeLedger, statusLog *fakeStatusLog, screenshots *fakeScreenshots) service.PaymentService {
	return service.NewPaymentService(testLogger(), ledger, statusLog, screenshots)
}

func TestResolveStatus_NoEntries(t *testing.T) {
	svc := newPaymentService(newFakeLedger(), &fakeStatusLog{}, &fakeScreenshots{})

	outcome, err := svc.ResolveStatus(context.Background(), "DEAFBEEF")
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomePending, outcome, "an order with no log entries is pending")
}

func TestResolveStatus_LastMatchWins(t *testing.T) {
	statusLog := &fakeStatusLog{}
	svc := newPaymentService(newFakeLedger(), statusLog, &fakeScreenshots{})
	ctx := context.Background()

	assert.NoError(t, svc.RecordCallback(ctx, "AB12CD34", service.CallbackPending))
	assert.NoError(t, svc.RecordCallback(ctx, "AB12CD34", service.CallbackSuccess))

	outcome, err := svc.ResolveStatus(ctx, "AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeSuccess, outcome, "the last logged status should win")
}

func TestResolveStatus_Failure(t *testing.T) {
	statusLog := &fakeStatusLog{}
	svc := newPaymentService(newFakeLedger(), statusLog, &fakeScreenshots{})
	ctx := context.Background()

	assert.NoError(t, svc.RecordCallback(ctx, "AB12CD34", service.CallbackFailure))

	outcome, err := svc.ResolveStatus(ctx, "AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeFailed, outcome)
}

func TestRecordCallback_NoExistenceCheck(t *testing.T) {
	statusLog := &fakeStatusLog{}
	svc := newPaymentService(newFakeLedger(), statusLog, &fakeScreenshots{})

	// the order id never went through checkout; the log takes it anyway
	err := svc.RecordCallback(context.Background(), "NOSUCHID", service.CallbackSuccess)
	assert.NoError(t, err)
	assert.Len(t, statusLog.entries, 1)
}

func TestConfirmPaid_UnknownOrder_NoOp(t *testing.T) {
	ledger := newFakeLedger()
	svc := newPaymentService(ledger, &fakeStatusLog{}, &fakeScreenshots{})

	err := svc.ConfirmPaid(context.Background(), "NOSUCHID")
	assert.NoError(t, err, "confirming a nonexistent order is a no-op, not an error")
	assert.Empty(t, ledger.orders)
}

func TestConfirmPaid_PendingOrder(t *testing.T) {
	ledger := newFakeLedger()
	statusLog := &fakeStatusLog{}
	orderSvc := service.NewOrderService(testLogger(), ledger, "Aarvel Ghee")
	svc := newPaymentService(ledger, statusLog, &fakeScreenshots{})
	ctx := context.Background()

	order, err := orderSvc.CreateOrder(ctx, service.OrderSubmission{Size: 250})
	assert.NoError(t, err)

	assert.NoError(t, svc.ConfirmPaid(ctx, order.OrderID))

	stored, err := ledger.FindByOrderID(ctx, order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPaid, stored.Status)

	// the confirmation is mirrored into the status log, so the result page
	// resolves as success
	outcome, err := svc.ResolveStatus(ctx, order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomeSuccess, outcome)

	// a repeat confirmation finds no Pending row and does nothing
	assert.NoError(t, svc.ConfirmPaid(ctx, order.OrderID))
	stored, err = ledger.FindByOrderID(ctx, order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPaid, stored.Status)
	assert.Len(t, statusLog.entries, 1, "a no-op confirmation must not log again")
}

func TestConfirmPaid_UnknownOrder_LogUntouched(t *testing.T) {
	statusLog := &fakeStatusLog{}
	svc := newPaymentService(newFakeLedger(), statusLog, &fakeScreenshots{})

	assert.NoError(t, svc.ConfirmPaid(context.Background(), "NOSUCHID"))
	assert.Empty(t, statusLog.entries, "a no-op confirmation must not log a success")
}

func TestCancelOrder(t *testing.T) {
	ledger := newFakeLedger()
	orderSvc := service.NewOrderService(testLogger(), ledger, "Aarvel Ghee")
	svc := newPaymentService(ledger, &fakeStatusLog{}, &fakeScreenshots{})
	ctx := context.Background()

	order, err := orderSvc.CreateOrder(ctx, service.OrderSubmission{Size: 500})
	assert.NoError(t, err)

	assert.NoError(t, svc.CancelOrder(ctx, order.OrderID))

	stored, err := ledger.FindByOrderID(ctx, order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)

	// cancelled is terminal, a later confirmation must not flip it to paid
	assert.NoError(t, svc.ConfirmPaid(ctx, order.OrderID))
	stored, err = ledger.FindByOrderID(ctx, order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestSubmitManualProof(t *testing.T) {
	statusLog := &fakeStatusLog{}
	screenshots := &fakeScreenshots{}
	svc := newPaymentService(newFakeLedger(), statusLog, screenshots)
	ctx := context.Background()

	err := svc.SubmitManualProof(ctx, "AB12CD34", "proof.png", bytes.NewReader([]byte("img")))
	assert.NoError(t, err)
	assert.Len(t, screenshots.saved, 1)

	outcome, err := svc.ResolveStatus(ctx, "AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, service.OutcomePending, outcome, "a manual proof leaves the order pending review")
}
