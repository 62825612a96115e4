package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mabinihs/portal/internal/pkg/config"
	"github.com/mabinihs/portal/internal/pkg/goroutine"
	"github.com/mabinihs/portal/internal/pkg/instrument"
	"github.com/mabinihs/portal/internal/pkg/messaging"
	"github.com/mabinihs/portal/internal/pkg/uid"
	"github.com/mabinihs/portal/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string // also the group, channel or subscription of the driver
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.PasswordResetCompletedConsumerNotification,
			topic:   event.PasswordResetCompletedDestination,
			handler: mqHandler.PasswordResetCompletedNotification,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enableConsumerNames, consumer.name) {
			continue
		}

		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
			return messenger.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithGroup(consumer.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(10),
				messaging.WithMaxInFlight(10),
			)
		})
	}
}
