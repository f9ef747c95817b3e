package employees

import (
	"testing"

	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		owed, paid string
		want       PaymentStatus
	}{
		{"1000.00", "0", PaymentPending},
		{"1000.00", "400.00", PaymentPartial},
		{"1000.00", "1000.00", PaymentPaid},
		{"0", "0", PaymentPending},
	}
	for _, tt := range tests {
		got := StatusFor(money.MustParse(tt.owed), money.MustParse(tt.paid))
		if got != tt.want {
			t.Fatalf("StatusFor(%s,%s): want=%s got=%s", tt.owed, tt.paid, tt.want, got)
		}
	}
}

func TestSetPaidAndReset(t *testing.T) {
	e := Employee{
		Salary:             money.MustParse("2000.00"),
		MealAllowance:      money.MustParse("300.00"),
		TransportAllowance: money.MustParse("150.00"),
	}
	e.SetPaid(PaymentSalary, money.MustParse("500.00"))
	if e.SalaryPaymentStatus != PaymentPartial {
		t.Fatalf("salary status: want=partial got=%s", e.SalaryPaymentStatus)
	}
	if got := e.Outstanding(PaymentSalary).String(); got != "1500.00" {
		t.Fatalf("outstanding: want=1500.00 got=%s", got)
	}
	e.SetPaid(PaymentMealAllowance, e.Owed(PaymentMealAllowance))
	if e.MealAllowancePaymentStatus != PaymentPaid {
		t.Fatalf("meal status: want=paid got=%s", e.MealAllowancePaymentStatus)
	}

	e.ResetPayments()
	for _, p := range PaymentTypes {
		if !e.Paid(p).IsZero() {
			t.Fatalf("%s paid after reset: %s", p, e.Paid(p))
		}
	}
	if e.SalaryPaymentStatus != PaymentPending || e.MealAllowancePaymentStatus != PaymentPending || e.TransportAllowancePaymentStatus != PaymentPending {
		t.Fatalf("statuses not pending after reset: %+v", e)
	}
}

func TestNewEmployeeViewFlattensNames(t *testing.T) {
	cid := uint(2)
	v := NewEmployeeView(Employee{
		Name:           "Ana",
		Department:     &Department{Name: "Obras"},
		ConstructionID: &cid,
		Construction:   &Construction{ID: 2, Name: "Residencial Sol"},
	})
	if v.DepartmentName != "Obras" || v.ConstructionName != "Residencial Sol" || v.ConstructionSectorName != "" {
		t.Fatalf("unexpected view: %+v", v)
	}
}
