package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"wrapped not found", fmt.Errorf("load employee: %w", gorm.ErrRecordNotFound), domainagg.CodeNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, domainagg.CodePreconditionFailed},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, domainagg.CodeRetryable},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), domainagg.CodePreconditionFailed},
		{"canceled", context.Canceled, domainagg.CodeRetryable},
		{"other", errors.New("boom"), domainagg.CodeInternal},
	}
	for _, tt := range tests {
		got := MapError("op", tt.err)
		if !domainagg.IsCode(got, tt.want) {
			t.Fatalf("%s: want=%s got=%q (%v)", tt.name, tt.want, domainagg.CodeOf(got), got)
		}
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeValidation, "op", "bad amount", nil)
	if out := MapError("other", in); out != in {
		t.Fatalf("expected passthrough of coded error")
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}
