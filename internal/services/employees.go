package services

import (
	"context"
	"strings"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	domainagg "github.com/RodCinelli/gestao-engparente/internal/domain/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/dates"
	"github.com/RodCinelli/gestao-engparente/internal/domain/employees"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
)

const (
	msgEmployeeChanged = "Employee data changed"
	defaultPaymentDay  = 5
	maxPaymentDay      = 31
)

// EmployeeInput is the create/update payload. Absent fields keep their
// current value on a partial update.
type EmployeeInput struct {
	Name     *string `json:"name"`
	CPF      *string `json:"cpf"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Position *string `json:"position"`

	Department         Ref `json:"department"`
	Construction       Ref `json:"construction"`
	ConstructionSector Ref `json:"construction_sector"`

	Salary             *money.Money `json:"salary"`
	PaymentDay         *int         `json:"payment_day"`
	MealAllowance      *money.Money `json:"meal_allowance"`
	TransportAllowance *money.Money `json:"transport_allowance"`
}

// PaymentInput registers a payment. A nil Amount pays what is outstanding.
type PaymentInput struct {
	PaymentType types.PaymentType `json:"payment_type"`
	Amount      *money.Money      `json:"amount"`
}

type EmployeeService interface {
	List(ctx context.Context, f repos.EmployeeFilter) ([]types.EmployeeView, error)
	Get(ctx context.Context, id uint) (*types.EmployeeView, error)
	Create(ctx context.Context, in EmployeeInput) (*types.EmployeeView, error)
	// Update applies in to an employee. With partial false (PUT) the required
	// fields must be present and an absent construction or sector is cleared.
	Update(ctx context.Context, id uint, in EmployeeInput, partial bool) (*types.EmployeeView, error)
	Delete(ctx context.Context, id uint) error

	RegisterPayment(ctx context.Context, id uint, in PaymentInput) (*types.EmployeeView, error)
	MarkAsPaid(ctx context.Context, id uint) (*types.EmployeeView, error)
	ResetPayment(ctx context.Context, id uint) (*types.EmployeeView, error)
	ResetAllPayments(ctx context.Context) (int64, error)
}

type employeeService struct {
	log       *logger.Logger
	writer    dataagg.Writer
	notifier  realtime.Notifier
	resolver  Resolver
	employees repos.EmployeeRepo
}

func NewEmployeeService(
	log *logger.Logger,
	writer dataagg.Writer,
	notifier realtime.Notifier,
	resolver Resolver,
	employeeRepo repos.EmployeeRepo,
) EmployeeService {
	if notifier == nil {
		notifier = realtime.NopNotifier{}
	}
	return &employeeService{
		log:       log.With("service", "EmployeeService"),
		writer:    writer,
		notifier:  notifier,
		resolver:  resolver,
		employees: employeeRepo,
	}
}

func (s *employeeService) List(ctx context.Context, f repos.EmployeeFilter) ([]types.EmployeeView, error) {
	rows, err := s.employees.List(readCtx(ctx), f)
	if err != nil {
		return nil, dataagg.MapError("employee.list", err)
	}
	out := make([]types.EmployeeView, 0, len(rows))
	for _, e := range rows {
		out = append(out, employees.NewEmployeeView(e))
	}
	return out, nil
}

func (s *employeeService) Get(ctx context.Context, id uint) (*types.EmployeeView, error) {
	e, err := s.employees.GetByID(readCtx(ctx), id)
	if err != nil {
		return nil, dataagg.MapError("employee.get", err)
	}
	v := employees.NewEmployeeView(*e)
	return &v, nil
}

func (s *employeeService) Create(ctx context.Context, in EmployeeInput) (*types.EmployeeView, error) {
	e := &types.Employee{PaymentDay: defaultPaymentDay}
	e.ResetPayments()
	return s.mutate(ctx, "employee.create", realtime.ActionEmployeeCreated, func(dbc dbctx.Context) (uint, error) {
		if err := s.apply(dbc, e, in, false); err != nil {
			return 0, err
		}
		if err := s.employees.Create(dbc, e); err != nil {
			return 0, err
		}
		return e.ID, nil
	})
}

func (s *employeeService) Update(ctx context.Context, id uint, in EmployeeInput, partial bool) (*types.EmployeeView, error) {
	return s.mutate(ctx, "employee.update", realtime.ActionEmployeeUpdated, func(dbc dbctx.Context) (uint, error) {
		e, err := s.employees.GetForUpdate(dbc, id)
		if err != nil {
			return 0, err
		}
		if err := s.apply(dbc, e, in, partial); err != nil {
			return 0, err
		}
		return e.ID, s.employees.Update(dbc, e)
	})
}

func (s *employeeService) Delete(ctx context.Context, id uint) error {
	err := s.writer.Execute(ctx, "employee.delete", func(dbc dbctx.Context) error {
		return s.employees.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionEmployeeDeleted, msgEmployeeChanged)
	return nil
}

func (s *employeeService) RegisterPayment(ctx context.Context, id uint, in PaymentInput) (*types.EmployeeView, error) {
	const op = "employee.register_payment"
	if !in.PaymentType.Valid() {
		return nil, domainagg.Validation(op, "payment_type must be one of salary, meal_allowance, transport_allowance")
	}
	return s.mutate(ctx, op, realtime.ActionPaymentRegistered, func(dbc dbctx.Context) (uint, error) {
		e, err := s.employees.GetForUpdate(dbc, id)
		if err != nil {
			return 0, err
		}
		outstanding := e.Outstanding(in.PaymentType)
		amount := outstanding
		if in.Amount != nil {
			amount = *in.Amount
			if !amount.IsPositive() {
				return 0, domainagg.Validation(op, "amount must be greater than zero")
			}
			if amount.Cmp(outstanding) > 0 {
				return 0, domainagg.Validation(op, "amount %s exceeds the outstanding %s", amount, outstanding)
			}
		} else if !outstanding.IsPositive() {
			return 0, domainagg.Validation(op, "nothing outstanding for %s", in.PaymentType)
		}
		e.SetPaid(in.PaymentType, e.Paid(in.PaymentType).Add(amount))
		today := dates.Today()
		e.LastPaymentDate = &today
		return e.ID, s.employees.Update(dbc, e)
	})
}

func (s *employeeService) MarkAsPaid(ctx context.Context, id uint) (*types.EmployeeView, error) {
	return s.mutate(ctx, "employee.mark_as_paid", realtime.ActionPaymentRegistered, func(dbc dbctx.Context) (uint, error) {
		e, err := s.employees.GetForUpdate(dbc, id)
		if err != nil {
			return 0, err
		}
		for _, p := range employees.PaymentTypes {
			e.SetPaid(p, e.Owed(p))
		}
		today := dates.Today()
		e.LastPaymentDate = &today
		return e.ID, s.employees.Update(dbc, e)
	})
}

func (s *employeeService) ResetPayment(ctx context.Context, id uint) (*types.EmployeeView, error) {
	return s.mutate(ctx, "employee.reset_payment", realtime.ActionPaymentsReset, func(dbc dbctx.Context) (uint, error) {
		e, err := s.employees.GetForUpdate(dbc, id)
		if err != nil {
			return 0, err
		}
		e.ResetPayments()
		return e.ID, s.employees.Update(dbc, e)
	})
}

func (s *employeeService) ResetAllPayments(ctx context.Context) (int64, error) {
	var n int64
	err := s.writer.Execute(ctx, "employee.reset_all_payments", func(dbc dbctx.Context) error {
		var err error
		n, err = s.employees.ResetAllPayments(dbc)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("payments reset", "employees", n)
	s.notifier.Notify(ctx, realtime.GroupEmployees, realtime.ActionPaymentsReset, msgEmployeeChanged)
	return n, nil
}

// mutate runs fn in one transaction, reloads the employee it names with
// its relations and announces action once the commit succeeded.
func (s *employeeService) mutate(
	ctx context.Context,
	op string,
	action realtime.Action,
	fn func(dbc dbctx.Context) (uint, error),
) (*types.EmployeeView, error) {
	var view types.EmployeeView
	err := s.writer.Execute(ctx, op, func(dbc dbctx.Context) error {
		id, err := fn(dbc)
		if err != nil {
			return err
		}
		e, err := s.employees.GetByID(dbc, id)
		if err != nil {
			return err
		}
		view = employees.NewEmployeeView(*e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, realtime.GroupEmployees, action, msgEmployeeChanged)
	return &view, nil
}

func (s *employeeService) apply(dbc dbctx.Context, e *types.Employee, in EmployeeInput, partial bool) error {
	const op = "employee"
	if in.Name != nil || !partial {
		name := trimmed(in.Name)
		if name == "" {
			return domainagg.Validation(op, "name is required")
		}
		e.Name = name
	}
	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&e.CPF, in.CPF},
		{&e.Phone, in.Phone},
		{&e.Email, in.Email},
		{&e.Position, in.Position},
	} {
		if f.src != nil {
			*f.dst = strings.TrimSpace(*f.src)
		}
	}

	if in.Salary != nil || !partial {
		if in.Salary == nil {
			return domainagg.Validation(op, "salary is required")
		}
		e.Salary = *in.Salary
	}
	if in.MealAllowance != nil {
		e.MealAllowance = *in.MealAllowance
	}
	if in.TransportAllowance != nil {
		e.TransportAllowance = *in.TransportAllowance
	}
	for _, amt := range []struct {
		field string
		v     money.Money
	}{
		{"salary", e.Salary},
		{"meal_allowance", e.MealAllowance},
		{"transport_allowance", e.TransportAllowance},
	} {
		if amt.v.IsNegative() {
			return domainagg.Validation(op, "%s cannot be negative", amt.field)
		}
	}
	if in.PaymentDay != nil {
		if *in.PaymentDay < 1 || *in.PaymentDay > maxPaymentDay {
			return domainagg.Validation(op, "payment_day must be between 1 and %d", maxPaymentDay)
		}
		e.PaymentDay = *in.PaymentDay
	}

	if in.Department.Set || !partial {
		d, err := s.resolver.Department(dbc, in.Department)
		if err != nil {
			return err
		}
		e.DepartmentID, e.Department = d.ID, nil
	}
	if err := s.applyPlacement(dbc, e, in, partial); err != nil {
		return err
	}

	// Owed amounts may have changed; statuses follow.
	for _, p := range employees.PaymentTypes {
		e.SetPaid(p, e.Paid(p))
	}
	return nil
}

// applyPlacement resolves construction and sector together so the sector
// always belongs to the employee's construction.
func (s *employeeService) applyPlacement(dbc dbctx.Context, e *types.Employee, in EmployeeInput, partial bool) error {
	const op = "employee"
	consTouched := in.Construction.Set || !partial
	sectorTouched := in.ConstructionSector.Set || !partial
	if !consTouched && !sectorTouched {
		return nil
	}

	var construction *types.Construction
	if consTouched {
		c, err := s.resolver.Construction(dbc, in.Construction)
		if err != nil {
			return err
		}
		construction = c
	} else if e.ConstructionID != nil {
		construction = &types.Construction{ID: *e.ConstructionID}
	}

	var sectorID *uint
	switch {
	case sectorTouched:
		sector, err := s.resolver.Sector(dbc, in.ConstructionSector, construction)
		if err != nil {
			return err
		}
		if sector != nil {
			if construction == nil {
				c, err := s.resolver.Construction(dbc, RefID(sector.ConstructionID))
				if err != nil {
					return err
				}
				construction = c
			}
			if sector.ConstructionID != construction.ID {
				return domainagg.Validation(op, "construction sector %d does not belong to construction %d", sector.ID, construction.ID)
			}
			sectorID = &sector.ID
		}
	case e.ConstructionSectorID != nil:
		// Construction moved while the sector was left alone: keep the
		// sector only if it still fits.
		keep, err := s.resolver.Sector(dbc, RefID(*e.ConstructionSectorID), nil)
		if err != nil {
			return err
		}
		if construction != nil && keep.ConstructionID == construction.ID {
			sectorID = &keep.ID
		}
	}

	e.ConstructionID, e.Construction = nil, nil
	if construction != nil {
		id := construction.ID
		e.ConstructionID = &id
	}
	e.ConstructionSectorID, e.ConstructionSector = sectorID, nil
	return nil
}
