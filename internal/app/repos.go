package app

import (
	"gorm.io/gorm"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	"github.com/RodCinelli/gestao-engparente/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo

	Department         repos.DepartmentRepo
	Construction       repos.ConstructionRepo
	ConstructionSector repos.ConstructionSectorRepo
	Employee           repos.EmployeeRepo

	Material        repos.MaterialRepo
	ExpenseCategory repos.ExpenseCategoryRepo
	Expense         repos.ExpenseRepo
	Transaction     repos.TransactionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		UserToken:          repos.NewUserTokenRepo(db, log),
		Department:         repos.NewDepartmentRepo(db, log),
		Construction:       repos.NewConstructionRepo(db, log),
		ConstructionSector: repos.NewConstructionSectorRepo(db, log),
		Employee:           repos.NewEmployeeRepo(db, log),
		Material:           repos.NewMaterialRepo(db, log),
		ExpenseCategory:    repos.NewExpenseCategoryRepo(db, log),
		Expense:            repos.NewExpenseRepo(db, log),
		Transaction:        repos.NewTransactionRepo(db, log),
	}
}
