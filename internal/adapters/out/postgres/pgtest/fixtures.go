package pgtest

import (
	"testing"
	"time"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

// Tokyo is the shop zone used by every fixture.
var Tokyo = time.FixedZone("JST", 9*60*60)

// Calendar opens 09:00-21:00 in Tokyo.
func Calendar(t *testing.T) kernel.ShopCalendar {
	t.Helper()
	cal, err := kernel.NewShopCalendar(Tokyo, 9, 21)
	require.NoError(t, err)
	return cal
}

// Lifecycle prices with the default rates on Calendar.
func Lifecycle(t *testing.T) *services.OrderLifecycle {
	t.Helper()
	engine, err := services.NewPricingEngine(Calendar(t))
	require.NoError(t, err)
	l, err := services.NewOrderLifecycle(engine)
	require.NoError(t, err)
	return l
}

// BookedOrder is a PAYMENT_PENDING order for two suitcases and a backpack,
// due back two days after createdAt.
func BookedOrder(t *testing.T, id string, tagNo string, createdAt time.Time) *order.Order {
	t.Helper()
	return booked(t, id, tagNo, createdAt, membership.None, order.NoPaymentMethod)
}

// MemberOrder is BookedOrder for a pass holder of tier.
func MemberOrder(t *testing.T, id string, createdAt time.Time, tier membership.Tier) *order.Order {
	t.Helper()
	return booked(t, id, "1", createdAt, tier, order.NoPaymentMethod)
}

// DeclaredOrder is BookedOrder where the customer named a payment method
// at the counter but no payment was recorded.
func DeclaredOrder(t *testing.T, id string, createdAt time.Time, declared order.PaymentMethod) *order.Order {
	t.Helper()
	return booked(t, id, "1", createdAt, membership.None, declared)
}

func booked(
	t *testing.T,
	id string,
	tagNo string,
	createdAt time.Time,
	tier membership.Tier,
	declared order.PaymentMethod,
) *order.Order {
	t.Helper()
	booking, err := Lifecycle(t).Book(services.BookingRequest{
		SuitcaseQty:      2,
		BackpackQty:      1,
		ExpectedPickupAt: createdAt.AddDate(0, 0, 2),
		Tier:             tier,
	}, createdAt)
	require.NoError(t, err)

	customer, err := order.NewCustomer("Kim", "090-1234-5678", 1)
	require.NoError(t, err)

	orderID, err := order.ParseID(id)
	require.NoError(t, err)

	o, err := order.NewOrder(orderID, tagNo, customer, booking, declared)
	require.NoError(t, err)
	return o
}

// PaidOrder is BookedOrder paid with method.
func PaidOrder(t *testing.T, id string, createdAt time.Time, method order.PaymentMethod) *order.Order {
	t.Helper()
	o := BookedOrder(t, id, "1", createdAt)
	require.NoError(t, o.MarkPaid(method))
	return o
}

// Staff is a non-admin actor with a fresh id.
func Staff(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewStaff(kernel.NewUUID())
	require.NoError(t, err)
	return a
}

// DraftClosing is a DRAFT closing counting 13,500 yen in the drawer.
func DraftClosing(
	t *testing.T,
	date kernel.BusinessDate,
	closingType cashclosing.ClosingType,
	actor kernel.Actor,
) (*cashclosing.CashClosing, cashclosing.AuditEntry) {
	t.Helper()
	counts, err := cashclosing.NewCounts(map[int64]int{10000: 1, 1000: 3, 500: 1})
	require.NoError(t, err)

	c, entry, err := cashclosing.NewCashClosing(
		kernel.NewUUID(),
		cashclosing.Entry{
			BusinessDate: date,
			ClosingType:  closingType,
			Counts:       counts,
			OwnerName:    "Lee",
		},
		cashclosing.LedgerSales{Cash: 13000, QR: 2000},
		actor,
		time.Date(date.Year(), date.Month(), date.Day(), 21, 30, 0, 0, Tokyo),
	)
	require.NoError(t, err)
	return c, entry
}
