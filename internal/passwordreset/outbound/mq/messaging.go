package mq

import (
	"context"
	"encoding/json"

	"github.com/mabinihs/portal/internal/passwordreset/usecase"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/messaging"
	"github.com/mabinihs/portal/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishResetCompleted(ctx context.Context, ev usecase.ResetCompletedEvent) error {
	ctx, span := m.ins.Tracer("passwordreset.outbound.mq").Start(ctx, "PublishResetCompleted")
	defer span.End()

	body, err := json.Marshal(event.PasswordResetCompletedMessage{
		TokenID:     ev.TokenID,
		Email:       ev.Email,
		Role:        ev.Role.String(),
		CompletedAt: ev.CompletedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PasswordResetCompletedDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(ev.Email),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
