package models

import "time"

type CoverChargeType string

const (
	CoverChargeFixed      CoverChargeType = "fixed"
	CoverChargeRedeemable CoverChargeType = "redeemable"
	CoverChargeFreeBefore CoverChargeType = "free_before"
)

func (c CoverChargeType) Valid() bool {
	switch c {
	case CoverChargeFixed, CoverChargeRedeemable, CoverChargeFreeBefore:
		return true
	}
	return false
}

// PriceTier is a named price active from StartTime until superseded by a later tier.
// Price is in minor currency units.
type PriceTier struct {
	Name      string    `gorm:"not null" json:"name"`
	StartTime TimeOfDay `gorm:"not null" json:"start_time"`
	Price     int64     `gorm:"not null" json:"price"`
}

type EventConfig struct {
	ID                  string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name                string          `gorm:"not null" json:"name"`
	Date                time.Time       `gorm:"type:date" json:"date"`
	Tiers               []PriceTier     `gorm:"serializer:json;type:jsonb" json:"tiers"`
	CoverChargeType     CoverChargeType `gorm:"type:varchar(20);not null;default:'fixed'" json:"cover_charge_type"`
	RedeemableAmount    int64           `gorm:"not null;default:0" json:"redeemable_amount"`
	FreeEntryBeforeTime *TimeOfDay      `json:"free_entry_before_time,omitempty"`
	GracePeriodMinutes  int             `gorm:"not null;default:0" json:"grace_period_minutes"`
	GroupBookingEnabled bool            `gorm:"not null;default:false" json:"group_booking_enabled"`
	MaxGroupSize        int             `gorm:"not null;default:1" json:"max_group_size"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
