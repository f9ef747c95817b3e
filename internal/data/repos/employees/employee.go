package employees

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/domain/employees"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type EmployeeFilter struct {
	DepartmentID        *uint
	ConstructionID      *uint
	SalaryPaymentStatus types.PaymentStatus
}

type EmployeeRepo interface {
	Create(dbc dbctx.Context, e *types.Employee) error
	Update(dbc dbctx.Context, e *types.Employee) error
	Delete(dbc dbctx.Context, id uint) error
	GetByID(dbc dbctx.Context, id uint) (*types.Employee, error)
	// GetForUpdate loads the row under a write lock where the driver has one.
	GetForUpdate(dbc dbctx.Context, id uint) (*types.Employee, error)
	List(dbc dbctx.Context, f EmployeeFilter) ([]types.Employee, error)
	// ListPayroll loads every employee without relations.
	ListPayroll(dbc dbctx.Context) ([]types.Employee, error)
	Count(dbc dbctx.Context) (int64, error)
	ResetAllPayments(dbc dbctx.Context) (int64, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(dbc dbctx.Context, e *types.Employee) error {
	return dbc.DB(r.db).Omit(clause.Associations).Create(e).Error
}

func (r *employeeRepo) Update(dbc dbctx.Context, e *types.Employee) error {
	return dbc.DB(r.db).Omit(clause.Associations).Save(e).Error
}

func (r *employeeRepo) Delete(dbc dbctx.Context, id uint) error {
	res := dbc.DB(r.db).Delete(&types.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *employeeRepo) withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Department").Preload("Construction").Preload("ConstructionSector")
}

func (r *employeeRepo) GetByID(dbc dbctx.Context, id uint) (*types.Employee, error) {
	var e types.Employee
	if err := r.withRelations(dbc.DB(r.db)).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) GetForUpdate(dbc dbctx.Context, id uint) (*types.Employee, error) {
	var e types.Employee
	if err := dbc.DB(r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) List(dbc dbctx.Context, f EmployeeFilter) ([]types.Employee, error) {
	q := r.withRelations(dbc.DB(r.db))
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.ConstructionID != nil {
		q = q.Where("construction_id = ?", *f.ConstructionID)
	}
	if f.SalaryPaymentStatus != "" {
		q = q.Where("salary_payment_status = ?", f.SalaryPaymentStatus)
	}
	var rows []types.Employee
	if err := q.Order("name").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *employeeRepo) ListPayroll(dbc dbctx.Context) ([]types.Employee, error) {
	var rows []types.Employee
	if err := dbc.DB(r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *employeeRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Employee{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *employeeRepo) ResetAllPayments(dbc dbctx.Context) (int64, error) {
	res := dbc.DB(r.db).Model(&types.Employee{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"salary_payment_status":              employees.PaymentPending,
			"salary_amount_paid":                 money.Zero,
			"meal_allowance_payment_status":      employees.PaymentPending,
			"meal_allowance_amount_paid":         money.Zero,
			"transport_allowance_payment_status": employees.PaymentPending,
			"transport_allowance_amount_paid":    money.Zero,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
