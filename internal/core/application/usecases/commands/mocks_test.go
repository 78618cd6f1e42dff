package commands_test

import (
	"context"
	"testing"
	"time"

	"luggage/internal/core/application/usecases/commands"
	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/core/domain/services"
	"luggage/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCounterRepository struct{ mock.Mock }

func (m *MockCounterRepository) Next(ctx context.Context, kind sequence.Kind, date kernel.BusinessDate) (int, error) {
	args := m.Called(ctx, kind, date)
	return args.Int(0), args.Error(1)
}

type MockOrderRetention struct{ mock.Mock }

func (m *MockOrderRetention) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCashClosingRepository struct{ mock.Mock }

func (m *MockCashClosingRepository) Add(ctx context.Context, c *cashclosing.CashClosing) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCashClosingRepository) Update(ctx context.Context, c *cashclosing.CashClosing) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCashClosingRepository) Get(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*cashclosing.CashClosing)
	return c, args.Error(1)
}

func (m *MockCashClosingRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*cashclosing.CashClosing)
	return c, args.Error(1)
}

func (m *MockCashClosingRepository) ExistsFor(
	ctx context.Context,
	date kernel.BusinessDate,
	closingType cashclosing.ClosingType,
	exclude *kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, date, closingType, exclude)
	return args.Bool(0), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, e cashclosing.AuditEntry) error {
	return m.Called(ctx, e).Error(0)
}

type MockSalesLedger struct{ mock.Mock }

func (m *MockSalesLedger) Summarize(ctx context.Context, from, to time.Time) (cashclosing.LedgerSales, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(cashclosing.LedgerSales), args.Error(1)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CounterRepository() ports.CounterRepository {
	return m.Called().Get(0).(ports.CounterRepository)
}

func (m *MockUoW) OrderRetention() ports.OrderRetention {
	return m.Called().Get(0).(ports.OrderRetention)
}

func (m *MockUoW) CashClosingRepository() ports.CashClosingRepository {
	return m.Called().Get(0).(ports.CashClosingRepository)
}

func (m *MockUoW) CashClosingAuditRepository() ports.CashClosingAuditRepository {
	return m.Called().Get(0).(ports.CashClosingAuditRepository)
}

func (m *MockUoW) SalesLedger() ports.SalesLedger {
	return m.Called().Get(0).(ports.SalesLedger)
}

// newMockUoW expects one Begin and a deferred Rollback; Commit is left to
// the test.
func newMockUoW() *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type counterUoWFactory struct{ uow *MockUoW }

func (f counterUoWFactory) Create() commands.CounterUoW { return f.uow }

type closingUoWFactory struct{ uow *MockUoW }

func (f closingUoWFactory) Create() commands.CashClosingUoW { return f.uow }

type retentionUoWFactory struct{ uow *MockUoW }

func (f retentionUoWFactory) Create() commands.RetentionUoW { return f.uow }

// passThroughRetrier runs fn exactly once.
type passThroughRetrier struct{}

func (passThroughRetrier) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func fixedClock(t time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return t })
}

func testCalendar(t *testing.T) kernel.ShopCalendar {
	t.Helper()
	cal, err := kernel.NewShopCalendar(jst, 9, 21)
	require.NoError(t, err)
	return cal
}

func testLifecycle(t *testing.T) *services.OrderLifecycle {
	t.Helper()
	engine, err := services.NewPricingEngine(testCalendar(t))
	require.NoError(t, err)
	l, err := services.NewOrderLifecycle(engine)
	require.NoError(t, err)
	return l
}

func staffActor(t *testing.T, admin bool) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), admin)
	require.NoError(t, err)
	return a
}
