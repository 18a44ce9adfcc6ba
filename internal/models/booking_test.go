package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking() *GroupBooking {
	return &GroupBooking{
		ID:        "bk-1",
		GroupSize: 3,
		Status:    BookingActive,
		Members: []GroupMember{
			{ID: 1, IsHost: true, SurchargePaymentStatus: PaymentNone},
			{ID: 2, SurchargePaymentStatus: PaymentNone},
			{ID: 3, SurchargePaymentStatus: PaymentNone},
		},
	}
}

func TestSummary(t *testing.T) {
	b := newBooking()
	assert.Equal(t, BookingSummary{Remaining: 3}, b.Summary())

	b.Members[0].CheckedIn = true
	b.Members[1].CheckedIn = true
	b.Members[1].Surcharge = 300
	b.Members[1].SurchargePaymentStatus = PaymentPending
	b.Members[2].CheckedIn = true
	b.Members[2].Surcharge = 200
	b.Members[2].SurchargePaymentStatus = PaymentPaid

	s := b.Summary()
	assert.Equal(t, 3, s.CheckedIn)
	assert.Equal(t, 0, s.Remaining)
	assert.Equal(t, int64(500), s.TotalSurcharge)
	assert.Equal(t, int64(300), s.OutstandingAmount)
	assert.True(t, s.Complete)
}

func TestMember(t *testing.T) {
	b := newBooking()

	m := b.Member(2)
	require.NotNil(t, m)
	m.Name = "Bob"
	assert.Equal(t, "Bob", b.Members[1].Name)

	assert.Nil(t, b.Member(0))
	assert.Nil(t, b.Member(4))
}

func TestClone_DoesNotAlias(t *testing.T) {
	b := newBooking()
	at := NewTimeOfDay(22, 0)
	paid := time.Now()
	b.Members[0].CheckInTime = &at
	b.Members[0].PaidAt = &paid

	c := b.Clone()
	c.Status = BookingClosed
	c.Members[1].CheckedIn = true
	*c.Members[0].CheckInTime = NewTimeOfDay(23, 0)
	*c.Members[0].PaidAt = paid.Add(time.Hour)

	assert.Equal(t, BookingActive, b.Status)
	assert.False(t, b.Members[1].CheckedIn)
	assert.Equal(t, NewTimeOfDay(22, 0), *b.Members[0].CheckInTime)
	assert.True(t, b.Members[0].PaidAt.Equal(paid))
}
