package aggregates

import (
	"context"
	"errors"
	"testing"

	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"gorm.io/gorm"
)

type fakeRunner struct {
	calls int
}

func (r *fakeRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.calls++
	return fn(dbctx.Context{Ctx: ctx})
}

func TestWriterExecuteMapsErrors(t *testing.T) {
	runner := &fakeRunner{}
	w := NewWriter(runner, logger.Nop())

	if err := w.Execute(context.Background(), "employee.update", func(dbctx.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := w.Execute(context.Background(), "employee.update", func(dbctx.Context) error {
		return gorm.ErrRecordNotFound
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
	err = w.Execute(context.Background(), "", func(dbctx.Context) error { return errors.New("disk full") })
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
	if runner.calls != 3 {
		t.Fatalf("runner calls: want=3 got=%d", runner.calls)
	}
}
