package event

import (
	"context"

	"github.com/travelerp/backend/internal/domain/hajumrah"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityRecorder receives ledger activity counts
type ActivityRecorder interface {
	PaymentCreated(sourceType string)
	ReceiptRecorded(status string)
	BookingCanceled()
	DomainEvent(eventType string)
}

// ActivityHandler is the notification hook subscriber: it logs every
// committed event and feeds the ledger counters.
type ActivityHandler struct {
	recorder ActivityRecorder
	logger   *zap.Logger
}

// NewActivityHandler creates the handler. recorder may be nil.
func NewActivityHandler(recorder ActivityRecorder, logger *zap.Logger) *ActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityHandler{recorder: recorder, logger: logger.Named("activity")}
}

// EventTypes subscribes to every event
func (h *ActivityHandler) EventTypes() []string { return nil }

// Handle implements shared.EventHandler
func (h *ActivityHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("tenant_id", event.TenantID().String()),
	}

	switch e := event.(type) {
	case *ledger.PaymentCreatedEvent:
		fields = append(fields, zap.String("source_type", string(e.SourceType)), zap.String("amount", e.Amount.String()))
		h.record(func(r ActivityRecorder) { r.PaymentCreated(string(e.SourceType)) })
	case *ledger.ReceiptRecordedEvent:
		fields = append(fields, zap.String("amount", e.Amount.String()), zap.String("status", string(e.Status)))
		h.record(func(r ActivityRecorder) { r.ReceiptRecorded(string(e.Status)) })
	case *ledger.PaymentRefundedEvent:
		fields = append(fields, zap.String("received", e.Received.String()))
	case *hajumrah.BookingCanceledEvent:
		fields = append(fields, zap.String("booking_number", e.BookingNumber))
		h.record(func(r ActivityRecorder) { r.BookingCanceled() })
	}
	h.record(func(r ActivityRecorder) { r.DomainEvent(event.EventType()) })

	h.logger.Info("Domain event", fields...)
	return nil
}

func (h *ActivityHandler) record(fn func(ActivityRecorder)) {
	if h.recorder != nil {
		fn(h.recorder)
	}
}

var _ shared.EventHandler = (*ActivityHandler)(nil)
