package dto

import (
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/service"
)

type EventResponse struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Date                string                 `json:"date,omitempty"`
	Tiers               []models.PriceTier     `json:"tiers"`
	CoverChargeType     models.CoverChargeType `json:"cover_charge_type"`
	RedeemableAmount    int64                  `json:"redeemable_amount"`
	FreeEntryBeforeTime *models.TimeOfDay      `json:"free_entry_before_time,omitempty"`
	GracePeriodMinutes  int                    `json:"grace_period_minutes"`
	GroupBookingEnabled bool                   `json:"group_booking_enabled"`
	MaxGroupSize        int                    `json:"max_group_size"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

type TierPreviewResponse struct {
	At   models.TimeOfDay `json:"at"`
	Tier models.PriceTier `json:"tier"`
}

type MemberResponse struct {
	ID                     int                  `json:"id"`
	Name                   string               `json:"name"`
	IsHost                 bool                 `json:"is_host"`
	CheckedIn              bool                 `json:"checked_in"`
	CheckInTime            *models.TimeOfDay    `json:"check_in_time,omitempty"`
	OriginalTier           models.PriceTier     `json:"original_tier"`
	Surcharge              int64                `json:"surcharge"`
	SurchargePaymentStatus models.PaymentStatus `json:"surcharge_payment_status"`
	PaymentReference       string               `json:"payment_reference,omitempty"`
}

type GroupBookingResponse struct {
	ID           string                `json:"id"`
	EventID      string                `json:"event_id"`
	HostName     string                `json:"host_name"`
	GroupSize    int                   `json:"group_size"`
	BookingTime  models.TimeOfDay      `json:"booking_time"`
	OriginalTier models.PriceTier      `json:"original_tier"`
	QRCode       string                `json:"qr_code"`
	Status       models.BookingStatus  `json:"status"`
	Members      []MemberResponse      `json:"members"`
	Summary      models.BookingSummary `json:"summary"`
	CreatedAt    time.Time             `json:"created_at"`
}

type CheckInResponse struct {
	Results           []models.CheckInResult `json:"results"`
	WithinGracePeriod bool                   `json:"within_grace_period"`
	Summary           models.BookingSummary  `json:"summary"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.EventConfig) EventResponse {
	resp := EventResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Tiers:               e.Tiers,
		CoverChargeType:     e.CoverChargeType,
		RedeemableAmount:    e.RedeemableAmount,
		FreeEntryBeforeTime: e.FreeEntryBeforeTime,
		GracePeriodMinutes:  e.GracePeriodMinutes,
		GroupBookingEnabled: e.GroupBookingEnabled,
		MaxGroupSize:        e.MaxGroupSize,
		UpdatedAt:           e.UpdatedAt,
	}
	if !e.Date.IsZero() {
		resp.Date = e.Date.Format(time.DateOnly)
	}
	if resp.Tiers == nil {
		resp.Tiers = []models.PriceTier{}
	}
	return resp
}

func ToMemberResponse(m *models.GroupMember) MemberResponse {
	return MemberResponse{
		ID:                     m.ID,
		Name:                   m.Name,
		IsHost:                 m.IsHost,
		CheckedIn:              m.CheckedIn,
		CheckInTime:            m.CheckInTime,
		OriginalTier:           m.OriginalTier,
		Surcharge:              m.Surcharge,
		SurchargePaymentStatus: m.SurchargePaymentStatus,
		PaymentReference:       m.PaymentReference,
	}
}

func ToGroupBookingResponse(b *models.GroupBooking) GroupBookingResponse {
	members := make([]MemberResponse, len(b.Members))
	for i := range b.Members {
		members[i] = ToMemberResponse(&b.Members[i])
	}
	return GroupBookingResponse{
		ID:           b.ID,
		EventID:      b.EventID,
		HostName:     b.HostName,
		GroupSize:    b.GroupSize,
		BookingTime:  b.BookingTime,
		OriginalTier: b.OriginalTier,
		QRCode:       b.QRCode,
		Status:       b.Status,
		Members:      members,
		Summary:      b.Summary(),
		CreatedAt:    b.CreatedAt,
	}
}

func ToCheckInResponse(o *service.CheckInOutcome) CheckInResponse {
	results := o.Results
	if results == nil {
		results = []models.CheckInResult{}
	}
	return CheckInResponse{
		Results:           results,
		WithinGracePeriod: o.WithinGracePeriod,
		Summary:           o.Booking.Summary(),
	}
}
