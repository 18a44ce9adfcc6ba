package dto

import "github.com/Eursukkul/booking-microservice/entry-service/internal/models"

type TierRequest struct {
	Name      string           `json:"name" validate:"required"`
	StartTime models.TimeOfDay `json:"start_time"`
	Price     int64            `json:"price" validate:"gte=0"`
}

type SetEventConfigRequest struct {
	Name                string            `json:"name" validate:"required"`
	Date                string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Tiers               []TierRequest     `json:"tiers" validate:"dive"`
	CoverChargeType     string            `json:"cover_charge_type" validate:"omitempty,oneof=fixed redeemable free_before"`
	RedeemableAmount    int64             `json:"redeemable_amount" validate:"gte=0"`
	FreeEntryBeforeTime *models.TimeOfDay `json:"free_entry_before_time"`
	GracePeriodMinutes  int               `json:"grace_period_minutes" validate:"gte=0"`
	GroupBookingEnabled bool              `json:"group_booking_enabled"`
	MaxGroupSize        int               `json:"max_group_size" validate:"required,gte=1"`
}

// CreateGroupBookingRequest names the non-host members in MemberNames, in order
// starting at member 2. BookingTime defaults to the venue's current time.
type CreateGroupBookingRequest struct {
	HostName    string            `json:"host_name" validate:"required"`
	GroupSize   int               `json:"group_size" validate:"required,gte=1"`
	BookingTime *models.TimeOfDay `json:"booking_time"`
	MemberNames []string          `json:"member_names"`
}

type CheckInRequest struct {
	MemberIDs   []int             `json:"member_ids" validate:"required,min=1"`
	CheckInTime *models.TimeOfDay `json:"check_in_time"`
}

type SurchargePaymentRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
}
