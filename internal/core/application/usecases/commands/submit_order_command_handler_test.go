package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"luggage/internal/core/application/usecases/commands"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	submittedAt = time.Date(2025, 7, 4, 10, 0, 0, 0, jst)
	pickupAt    = time.Date(2025, 7, 6, 18, 0, 0, 0, jst)
)

func submitParams() commands.SubmitOrderParams {
	return commands.SubmitOrderParams{
		Name:             "Kim",
		Phone:            "090-1234-5678",
		CompanionCount:   2,
		SuitcaseQty:      2,
		BackpackQty:      1,
		ExpectedPickupAt: pickupAt,
		PaymentMethod:    "PAY_QR",
	}
}

func newSubmitHandler(t *testing.T, uow *MockUoW) commands.SubmitOrderCommandHandler {
	t.Helper()
	return commands.NewSubmitOrderCommandHandler(
		orderUoWFactory{uow}, passThroughRetrier{}, testLifecycle(t), fixedClock(submittedAt),
	)
}

func Test_SubmitOrderCommandHandler_Handle_AssignsDailyNumbers(t *testing.T) {
	// Arrange
	ctx := context.Background()
	date := kernel.MustParseBusinessDate("2025-07-04")

	counters := new(MockCounterRepository)
	counters.On("Next", mock.Anything, sequence.OrderKind, date).Return(1, nil).Once()
	counters.On("Next", mock.Anything, sequence.TagKind, date).Return(7, nil).Once()

	var stored *order.Order
	orders := new(MockOrderRepository)
	orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
		Return(nil).Once()

	uow := newMockUoW()
	uow.On("CounterRepository").Return(counters)
	uow.On("OrderRepository").Return(orders)
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewSubmitOrderCommand(submitParams())
	require.NoError(t, err)
	handler := newSubmitHandler(t, uow)

	// Act
	id, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.ID("20250704-001"), id)
	require.NotNil(t, stored)
	assert.Equal(t, "7", stored.TagNo())
	assert.Equal(t, order.PaymentPending, stored.Status())
	assert.Equal(t, order.PayQR, stored.DeclaredPaymentMethod())
	assert.False(t, stored.PaymentMethod().IsSet())
	assert.False(t, stored.IsManualEntry())
	assert.Nil(t, stored.LastActor())
	counters.AssertExpectations(t)
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func Test_SubmitOrderCommandHandler_Handle_ManualEntry(t *testing.T) {
	// Arrange
	ctx := context.Background()
	actor := staffActor(t, false)

	counters := new(MockCounterRepository)
	counters.On("Next", mock.Anything, sequence.OrderKind, mock.Anything).Return(12, nil).Once()
	counters.On("Next", mock.Anything, sequence.TagKind, mock.Anything).Return(30, nil).Once()

	var stored *order.Order
	orders := new(MockOrderRepository)
	orders.On("Add", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
		Return(nil).Once()

	uow := newMockUoW()
	uow.On("CounterRepository").Return(counters)
	uow.On("OrderRepository").Return(orders)
	uow.On("Commit", mock.Anything).Return(nil).Once()

	p := submitParams()
	p.ManualEntry = true
	p.Actor = &actor
	cmd, err := commands.NewSubmitOrderCommand(p)
	require.NoError(t, err)
	handler := newSubmitHandler(t, uow)

	// Act
	id, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.ID("M-20250704-012"), id)
	assert.True(t, id.IsManual())
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Customer().CompanionCount())
	assert.False(t, stored.PaymentMethod().IsSet())
	require.NotNil(t, stored.LastActor())
	assert.True(t, actor.StaffID().IsEqual(*stored.LastActor()))
}

func Test_SubmitOrderCommandHandler_Handle_CounterFailureRollsBack(t *testing.T) {
	// Arrange
	ctx := context.Background()
	boom := errors.New("connection reset")

	counters := new(MockCounterRepository)
	counters.On("Next", mock.Anything, sequence.OrderKind, mock.Anything).Return(0, boom).Once()

	uow := newMockUoW()
	uow.On("CounterRepository").Return(counters)

	cmd, err := commands.NewSubmitOrderCommand(submitParams())
	require.NoError(t, err)
	handler := newSubmitHandler(t, uow)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, boom)
	uow.AssertCalled(t, "Rollback", mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "OrderRepository")
}

func Test_SubmitOrderCommandHandler_Handle_PricingRejectedBeforeTransaction(t *testing.T) {
	// Arrange
	ctx := context.Background()
	uow := new(MockUoW)

	p := submitParams()
	// 23:00 is outside business hours.
	p.ExpectedPickupAt = time.Date(2025, 7, 6, 23, 0, 0, 0, jst)
	cmd, err := commands.NewSubmitOrderCommand(p)
	require.NoError(t, err)
	handler := newSubmitHandler(t, uow)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func Test_SubmitOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := newSubmitHandler(t, new(MockUoW))

	_, err := handler.Handle(context.Background(), commands.SubmitOrderCommand{})

	require.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
}

func Test_NewSubmitOrderCommand(t *testing.T) {
	actor := staffActor(t, false)

	tests := []struct {
		name    string
		mutate  func(p *commands.SubmitOrderParams)
		wantErr bool
		check   func(t *testing.T, cmd commands.SubmitOrderCommand)
	}{
		{
			name:   "customer form",
			mutate: func(*commands.SubmitOrderParams) {},
			check: func(t *testing.T, cmd commands.SubmitOrderCommand) {
				assert.Equal(t, 2, cmd.Customer().CompanionCount())
				assert.Equal(t, order.PayQR, cmd.DeclaredPaymentMethod())
				assert.Nil(t, cmd.Actor())
			},
		},
		{
			name:   "blank payment method is allowed",
			mutate: func(p *commands.SubmitOrderParams) { p.PaymentMethod = "  " },
			check: func(t *testing.T, cmd commands.SubmitOrderCommand) {
				assert.Equal(t, order.NoPaymentMethod, cmd.DeclaredPaymentMethod())
			},
		},
		{
			name: "manual entry forces one companion and no method",
			mutate: func(p *commands.SubmitOrderParams) {
				p.ManualEntry = true
				p.Actor = &actor
				p.CompanionCount = 5
			},
			check: func(t *testing.T, cmd commands.SubmitOrderCommand) {
				assert.Equal(t, 1, cmd.Customer().CompanionCount())
				assert.Equal(t, order.NoPaymentMethod, cmd.DeclaredPaymentMethod())
				assert.True(t, cmd.IsManualEntry())
			},
		},
		{
			name:    "manual entry needs an actor",
			mutate:  func(p *commands.SubmitOrderParams) { p.ManualEntry = true },
			wantErr: true,
		},
		{
			name:    "unknown payment method",
			mutate:  func(p *commands.SubmitOrderParams) { p.PaymentMethod = "BITCOIN" },
			wantErr: true,
		},
		{
			name:    "missing name",
			mutate:  func(p *commands.SubmitOrderParams) { p.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing pickup",
			mutate:  func(p *commands.SubmitOrderParams) { p.ExpectedPickupAt = time.Time{} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := submitParams()
			tt.mutate(&p)

			cmd, err := commands.NewSubmitOrderCommand(p)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errs.KindValidation, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			tt.check(t, cmd)
		})
	}
}
