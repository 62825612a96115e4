package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mabinihs/portal/internal/notification/usecase"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/messaging"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID && len(headers[i].Value) > 0 {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) PasswordResetCompletedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordResetCompletedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: password reset completed notification", "msg_body", string(body))

	var payload event.PasswordResetCompletedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of password reset completed notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePasswordResetCompleted(ctx, usecase.ConsumePasswordResetCompletedInput{
		TokenID:     payload.TokenID,
		Email:       payload.Email,
		Role:        payload.Role,
		CompletedAt: payload.CompletedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume password reset completed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
