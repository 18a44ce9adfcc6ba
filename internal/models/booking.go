package models

import "time"

type BookingStatus string

const (
	BookingActive BookingStatus = "active"
	BookingClosed BookingStatus = "closed"
)

type PaymentStatus string

const (
	PaymentNone    PaymentStatus = "none"
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type GroupBooking struct {
	ID           string        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EventID      string        `gorm:"not null;index" json:"event_id"`
	HostName     string        `gorm:"not null" json:"host_name"`
	GroupSize    int           `gorm:"not null" json:"group_size"`
	BookingTime  TimeOfDay     `gorm:"not null" json:"booking_time"`
	OriginalTier PriceTier     `gorm:"embedded;embeddedPrefix:original_tier_" json:"original_tier"`
	QRCode       string        `gorm:"not null;uniqueIndex" json:"qr_code"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Members []GroupMember `gorm:"foreignKey:BookingID;references:ID" json:"members"`
}

// GroupMember is keyed by (BookingID, ID); ID 1 is always the host.
type GroupMember struct {
	BookingID              string        `gorm:"primaryKey;type:varchar(64)" json:"-"`
	ID                     int           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name                   string        `gorm:"not null" json:"name"`
	IsHost                 bool          `gorm:"not null" json:"is_host"`
	CheckedIn              bool          `gorm:"not null;default:false" json:"checked_in"`
	CheckInTime            *TimeOfDay    `json:"check_in_time,omitempty"`
	OriginalTier           PriceTier     `gorm:"embedded;embeddedPrefix:original_tier_" json:"original_tier"`
	Surcharge              int64         `gorm:"not null;default:0" json:"surcharge"`
	SurchargePaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'none'" json:"surcharge_payment_status"`
	PaymentReference       string        `json:"payment_reference,omitempty"`
	PaidAt                 *time.Time    `json:"paid_at,omitempty"`
}

// Member returns a pointer into b.Members, or nil.
func (b *GroupBooking) Member(id int) *GroupMember {
	for i := range b.Members {
		if b.Members[i].ID == id {
			return &b.Members[i]
		}
	}
	return nil
}

// Clone deep-copies the booking so callers can mutate it without aliasing.
func (b *GroupBooking) Clone() *GroupBooking {
	c := *b
	c.Members = make([]GroupMember, len(b.Members))
	for i, m := range b.Members {
		if m.CheckInTime != nil {
			t := *m.CheckInTime
			m.CheckInTime = &t
		}
		if m.PaidAt != nil {
			p := *m.PaidAt
			m.PaidAt = &p
		}
		c.Members[i] = m
	}
	return &c
}

type CreateGroupBookingInput struct {
	HostName    string
	GroupSize   int
	BookingTime TimeOfDay
	MemberNames []string
}

// CheckInResult is returned for each member actually admitted by a check-in batch.
type CheckInResult struct {
	MemberID        int       `json:"member_id"`
	CheckInTime     TimeOfDay `json:"check_in_time"`
	Surcharge       int64     `json:"surcharge"`
	RequiresPayment bool      `json:"requires_payment"`
}

type PaymentRequest struct {
	PaymentURL string `json:"payment_url"`
	Amount     int64  `json:"amount"`
}

type BookingSummary struct {
	CheckedIn         int   `json:"checked_in"`
	Remaining         int   `json:"remaining"`
	TotalSurcharge    int64 `json:"total_surcharge"`
	OutstandingAmount int64 `json:"outstanding_amount"`
	Complete          bool  `json:"complete"`
}

func (b *GroupBooking) Summary() BookingSummary {
	var s BookingSummary
	for _, m := range b.Members {
		if !m.CheckedIn {
			s.Remaining++
			continue
		}
		s.CheckedIn++
		s.TotalSurcharge += m.Surcharge
		if m.SurchargePaymentStatus == PaymentPending {
			s.OutstandingAmount += m.Surcharge
		}
	}
	s.Complete = s.Remaining == 0
	return s
}
