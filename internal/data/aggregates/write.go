package aggregates

import (
	"context"
	"strings"
	"time"

	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const slowWrite = 500 * time.Millisecond

// Writer runs a named mutation inside one transaction and maps whatever
// it returns onto coded errors.
type Writer struct {
	Runner TxRunner
	Log    *logger.Logger
}

func NewWriter(runner TxRunner, log *logger.Logger) Writer {
	return Writer{Runner: runner, Log: log.With("component", "AggregateWriter")}
}

func (w Writer) Execute(ctx context.Context, op string, fn func(dbc dbctx.Context) error) error {
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	ctx, span := otel.Tracer("gestao/aggregates").Start(ctx, op)
	defer span.End()

	start := time.Now()
	mapped := MapError(op, w.Runner.InTx(ctx, fn))
	dur := time.Since(start)

	status := "success"
	if mapped != nil {
		status = string(domainagg.CodeOf(mapped))
		span.RecordError(mapped)
		span.SetStatus(codes.Error, status)
	}
	span.SetAttributes(attribute.String("aggregate.status", status))

	if w.Log != nil {
		switch {
		case mapped != nil && domainagg.IsCode(mapped, domainagg.CodeInternal):
			w.Log.Error("aggregate write failed", "op", op, "error", mapped, "duration_ms", dur.Milliseconds())
		case dur > slowWrite:
			w.Log.Warn("slow aggregate write", "op", op, "status", status, "duration_ms", dur.Milliseconds())
		}
	}
	return mapped
}
