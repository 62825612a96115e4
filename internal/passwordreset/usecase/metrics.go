package usecase

import (
	"context"

	"github.com/mabinihs/portal/internal/passwordreset/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func (s *Usecase) count(ctx context.Context, c metric.Int64Counter, role entity.Role) {
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("role", role.String())))
}
