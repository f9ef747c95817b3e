package services

import (
	"context"
	"sync"
	"testing"
	"time"

	dataagg "github.com/RodCinelli/gestao-engparente/internal/data/aggregates"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos"
	"github.com/RodCinelli/gestao-engparente/internal/data/repos/testutil"
	"github.com/RodCinelli/gestao-engparente/internal/domain/money"
	"github.com/RodCinelli/gestao-engparente/internal/realtime"
	"gorm.io/gorm"
)

type notified struct {
	Group   realtime.Group
	Action  realtime.Action
	Message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notified
}

func (n *recordingNotifier) Notify(_ context.Context, group realtime.Group, action realtime.Action, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notified{Group: group, Action: action, Message: message})
}

func (n *recordingNotifier) take() []notified {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.events
	n.events = nil
	return out
}

type testEnv struct {
	db        *gorm.DB
	notifier  *recordingNotifier
	reference ReferenceService
	employees EmployeeService
	dashboard DashboardService
	financial FinancialService
	auth      AuthService
	seed      SeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	runner := dataagg.NewGormTxRunner(db)
	writer := dataagg.NewWriter(runner, log)
	n := &recordingNotifier{}

	departments := repos.NewDepartmentRepo(db, log)
	constructions := repos.NewConstructionRepo(db, log)
	sectors := repos.NewConstructionSectorRepo(db, log)
	employeeRepo := repos.NewEmployeeRepo(db, log)
	resolver := NewResolver(log, departments, constructions, sectors)

	materials := repos.NewMaterialRepo(db, log)
	categories := repos.NewExpenseCategoryRepo(db, log)
	expenses := repos.NewExpenseRepo(db, log)
	transactions := repos.NewTransactionRepo(db, log)

	return &testEnv{
		db:        db,
		notifier:  n,
		reference: NewReferenceService(log, writer, n, resolver, departments, constructions, sectors),
		employees: NewEmployeeService(log, writer, n, resolver, employeeRepo),
		dashboard: NewDashboardService(log, runner, employeeRepo, constructions, departments),
		financial: NewFinancialService(log, writer, n, materials, categories, expenses, transactions),
		auth: NewAuthService(log, writer, repos.NewUserRepo(db, log), repos.NewUserTokenRepo(db, log),
			"test-secret", 5*time.Minute, time.Hour),
		seed: NewSeedService(log, writer, resolver, departments, constructions, sectors, categories),
	}
}

func expectActions(t *testing.T, n *recordingNotifier, group realtime.Group, want ...realtime.Action) {
	t.Helper()
	got := n.take()
	if len(got) != len(want) {
		t.Fatalf("notifications: want=%v got=%+v", want, got)
	}
	for i := range want {
		if got[i].Group != group || got[i].Action != want[i] {
			t.Fatalf("notification %d: want=%s/%s got=%+v", i, group, want[i], got[i])
		}
	}
}

func strPtr(s string) *string { return &s }

func moneyPtr(s string) *money.Money {
	m := money.MustParse(s)
	return &m
}
