package employees

import "github.com/RodCinelli/gestao-engparente/internal/domain/money"

type ConstructionHeadcount struct {
	ConstructionID   uint        `json:"construction_id"`
	ConstructionName string      `json:"construction_name"`
	TotalEmployees   int         `json:"total_employees"`
	TotalSalary      money.Money `json:"total_salary"`
	TotalPaid        money.Money `json:"total_paid"`
}

type ConstructionPayments struct {
	ConstructionID   uint        `json:"construction_id"`
	ConstructionName string      `json:"construction_name"`
	TotalToPay       money.Money `json:"total_to_pay"`
	TotalPaid        money.Money `json:"total_paid"`
}

// DashboardSnapshot summarizes payroll state at one point in time.
type DashboardSnapshot struct {
	TotalEmployees     int `json:"total_employees"`
	TotalConstructions int `json:"total_constructions"`
	TotalDepartments   int `json:"total_departments"`

	TotalSalaryToPay             money.Money `json:"total_salary_to_pay"`
	TotalSalaryPaid              money.Money `json:"total_salary_paid"`
	TotalMealAllowanceToPay      money.Money `json:"total_meal_allowance_to_pay"`
	TotalMealAllowancePaid       money.Money `json:"total_meal_allowance_paid"`
	TotalTransportAllowanceToPay money.Money `json:"total_transport_allowance_to_pay"`
	TotalTransportAllowancePaid  money.Money `json:"total_transport_allowance_paid"`

	EmployeesWithPendingSalary int `json:"employees_with_pending_salary"`
	EmployeesWithPaidSalary    int `json:"employees_with_paid_salary"`
	EmployeesWithPartialSalary int `json:"employees_with_partial_salary"`

	EmployeesByConstruction []ConstructionHeadcount `json:"employees_by_construction"`
	PaymentsByConstruction  []ConstructionPayments  `json:"payments_by_construction"`
}

// DashboardInput is the state a snapshot is computed from.
type DashboardInput struct {
	Employees []Employee
	// ActiveConstructions in the order they should be reported.
	ActiveConstructions []Construction
	TotalDepartments    int
}

// ComputeDashboard derives a snapshot from in. It has no side effects and
// the same input always yields the same snapshot.
func ComputeDashboard(in DashboardInput) DashboardSnapshot {
	snap := DashboardSnapshot{
		TotalEmployees:          len(in.Employees),
		TotalConstructions:      len(in.ActiveConstructions),
		TotalDepartments:        in.TotalDepartments,
		EmployeesByConstruction: make([]ConstructionHeadcount, 0, len(in.ActiveConstructions)),
		PaymentsByConstruction:  make([]ConstructionPayments, 0, len(in.ActiveConstructions)),
	}

	type siteTotals struct {
		headcount int
		salary    money.Money
		toPay     money.Money
		paid      money.Money
	}
	bySite := make(map[uint]*siteTotals, len(in.ActiveConstructions))
	for _, c := range in.ActiveConstructions {
		bySite[c.ID] = &siteTotals{}
	}

	for i := range in.Employees {
		e := &in.Employees[i]
		snap.TotalSalaryToPay = snap.TotalSalaryToPay.Add(e.Salary)
		snap.TotalSalaryPaid = snap.TotalSalaryPaid.Add(e.SalaryAmountPaid)
		snap.TotalMealAllowanceToPay = snap.TotalMealAllowanceToPay.Add(e.MealAllowance)
		snap.TotalMealAllowancePaid = snap.TotalMealAllowancePaid.Add(e.MealAllowanceAmountPaid)
		snap.TotalTransportAllowanceToPay = snap.TotalTransportAllowanceToPay.Add(e.TransportAllowance)
		snap.TotalTransportAllowancePaid = snap.TotalTransportAllowancePaid.Add(e.TransportAllowanceAmountPaid)

		switch e.SalaryPaymentStatus {
		case PaymentPending:
			snap.EmployeesWithPendingSalary++
		case PaymentPaid:
			snap.EmployeesWithPaidSalary++
		case PaymentPartial:
			snap.EmployeesWithPartialSalary++
		}

		if e.ConstructionID == nil {
			continue
		}
		site, ok := bySite[*e.ConstructionID]
		if !ok {
			continue
		}
		site.headcount++
		site.salary = site.salary.Add(e.Salary)
		site.toPay = site.toPay.Add(money.Sum(e.Salary, e.MealAllowance, e.TransportAllowance))
		site.paid = site.paid.Add(money.Sum(e.SalaryAmountPaid, e.MealAllowanceAmountPaid, e.TransportAllowanceAmountPaid))
	}

	for _, c := range in.ActiveConstructions {
		site := bySite[c.ID]
		snap.EmployeesByConstruction = append(snap.EmployeesByConstruction, ConstructionHeadcount{
			ConstructionID:   c.ID,
			ConstructionName: c.Name,
			TotalEmployees:   site.headcount,
			TotalSalary:      site.salary,
			TotalPaid:        site.paid,
		})
		snap.PaymentsByConstruction = append(snap.PaymentsByConstruction, ConstructionPayments{
			ConstructionID:   c.ID,
			ConstructionName: c.Name,
			TotalToPay:       site.toPay,
			TotalPaid:        site.paid,
		})
	}
	return snap
}
