package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/pricing"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/repository"
	"github.com/Eursukkul/booking-microservice/entry-service/pkg/qrtoken"
	"github.com/google/uuid"
)

type GroupBookingService interface {
	CreateGroupBooking(ctx context.Context, eventID string, in models.CreateGroupBookingInput) (*models.GroupBooking, error)
	ProcessCheckIn(ctx context.Context, bookingID string, memberIDs []int, at models.TimeOfDay) (*CheckInOutcome, error)
	GeneratePaymentURL(ctx context.Context, bookingID string, memberID int) (*models.PaymentRequest, error)
	ProcessSurchargePayment(ctx context.Context, bookingID string, memberID int, reference string) (*models.GroupMember, error)
	GetBooking(ctx context.Context, id string) (*models.GroupBooking, error)
	GetBookingByQRCode(ctx context.Context, code string) (*models.GroupBooking, error)
	GetEventBookings(ctx context.Context, eventID string) ([]models.GroupBooking, error)
	CloseBooking(ctx context.Context, id string) (*models.GroupBooking, error)
}

// PaymentLinker turns an outstanding charge into a link the payment gateway serves.
type PaymentLinker interface {
	URL(bookingID string, memberID int, amount int64) string
}

// CheckInOutcome carries the per-member results of one arrival batch plus the
// booking state after it was applied.
type CheckInOutcome struct {
	Results           []models.CheckInResult
	WithinGracePeriod bool
	Booking           *models.GroupBooking
}

type groupBookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	issuer      qrtoken.Issuer
	links       PaymentLinker
	publisher   EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

func NewGroupBookingService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	issuer qrtoken.Issuer,
	links PaymentLinker,
	publisher EventPublisher,
	logger *slog.Logger,
) GroupBookingService {
	return &groupBookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		issuer:      issuer,
		links:       links,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *groupBookingService) CreateGroupBooking(ctx context.Context, eventID string, in models.CreateGroupBookingInput) (*models.GroupBooking, error) {
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if in.HostName == "" {
		return nil, fmt.Errorf("%w: host_name is required", ErrValidation)
	}
	if in.GroupSize < 1 {
		return nil, fmt.Errorf("%w: group_size must be at least 1", ErrValidation)
	}
	if !in.BookingTime.Valid() {
		return nil, fmt.Errorf("%w: booking_time out of range", ErrValidation)
	}
	if !event.GroupBookingEnabled {
		return nil, ErrFeatureDisabled
	}
	if in.GroupSize > event.MaxGroupSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrGroupSizeExceeded, in.GroupSize, event.MaxGroupSize)
	}

	tier, err := pricing.ResolveTier(event, in.BookingTime)
	if err != nil {
		return nil, fmt.Errorf("resolve booking tier: %w", err)
	}

	booking := &models.GroupBooking{
		ID:           uuid.NewString(),
		EventID:      event.ID,
		HostName:     in.HostName,
		GroupSize:    in.GroupSize,
		BookingTime:  in.BookingTime,
		OriginalTier: tier,
		Status:       models.BookingActive,
		Members:      newMembers(in, tier),
	}
	for i := range booking.Members {
		booking.Members[i].BookingID = booking.ID
	}

	booking.QRCode, err = s.issuer.Mint(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("mint qr token: %w", err)
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if revokeErr := s.issuer.Revoke(ctx, booking.QRCode); revokeErr != nil {
			s.logger.Warn("revoke qr token after failed create",
				slog.String("booking_id", booking.ID),
				slog.String("error", revokeErr.Error()),
			)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("group booking created",
		slog.String("booking_id", booking.ID),
		slog.String("event_id", event.ID),
		slog.Int("group_size", booking.GroupSize),
		slog.String("tier", tier.Name),
		slog.Int64("tier_price", tier.Price),
	)
	s.publish(TopicBookingCreated, booking)

	return booking, nil
}

func newMembers(in models.CreateGroupBookingInput, tier models.PriceTier) []models.GroupMember {
	members := make([]models.GroupMember, in.GroupSize)
	for i := range members {
		id := i + 1
		name := fmt.Sprintf("Guest %d", id)
		switch {
		case id == 1:
			name = in.HostName
		case i-1 < len(in.MemberNames) && in.MemberNames[i-1] != "":
			name = in.MemberNames[i-1]
		}
		members[i] = models.GroupMember{
			ID:                     id,
			Name:                   name,
			IsHost:                 id == 1,
			OriginalTier:           tier,
			SurchargePaymentStatus: models.PaymentNone,
		}
	}
	return members
}

// ProcessCheckIn admits the listed members at time at. Ids that are unknown or
// already checked in are skipped without error, so the result may be shorter than
// memberIDs. A member's surcharge is fixed at the moment they are admitted.
func (s *groupBookingService) ProcessCheckIn(ctx context.Context, bookingID string, memberIDs []int, at models.TimeOfDay) (*CheckInOutcome, error) {
	if !at.Valid() {
		return nil, fmt.Errorf("%w: check-in time out of range", ErrValidation)
	}

	var (
		results []models.CheckInResult
		event   *models.EventConfig
	)

	booking, err := s.bookingRepo.Update(ctx, bookingID, func(b *models.GroupBooking) error {
		results = nil
		if b.Status == models.BookingClosed {
			return ErrBookingClosed
		}

		var err error
		event, err = s.findEvent(ctx, b.EventID)
		if err != nil {
			return err
		}

		for _, id := range memberIDs {
			m := b.Member(id)
			if m == nil || m.CheckedIn {
				continue
			}

			surcharge, err := pricing.SurchargeBetween(m.OriginalTier, at, event)
			if err != nil {
				return fmt.Errorf("price member %d: %w", id, err)
			}

			checkInTime := at
			m.CheckedIn = true
			m.CheckInTime = &checkInTime
			m.Surcharge = surcharge
			m.SurchargePaymentStatus = models.PaymentNone
			if surcharge > 0 {
				m.SurchargePaymentStatus = models.PaymentPending
			}

			results = append(results, models.CheckInResult{
				MemberID:        id,
				CheckInTime:     at,
				Surcharge:       surcharge,
				RequiresPayment: surcharge > 0,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	outcome := &CheckInOutcome{
		Results:           results,
		WithinGracePeriod: pricing.WithinGracePeriod(booking.BookingTime, at, event),
		Booking:           booking,
	}

	summary := booking.Summary()
	s.logger.Info("check-in batch processed",
		slog.String("booking_id", booking.ID),
		slog.String("at", at.String()),
		slog.Int("requested", len(memberIDs)),
		slog.Int("admitted", len(results)),
		slog.Int("remaining", summary.Remaining),
		slog.Bool("within_grace_period", outcome.WithinGracePeriod),
	)

	if len(results) > 0 {
		s.publish(TopicCheckInProcessed, checkInMessage(booking, results))
		for _, r := range results {
			if r.RequiresPayment {
				s.publish(TopicSurchargePending, SurchargeMessage{
					BookingID: booking.ID,
					MemberID:  r.MemberID,
					Amount:    r.Surcharge,
				})
			}
		}
	}

	return outcome, nil
}

func (s *groupBookingService) GeneratePaymentURL(ctx context.Context, bookingID string, memberID int) (*models.PaymentRequest, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	m := booking.Member(memberID)
	if m == nil {
		return nil, ErrMemberNotFound
	}
	if m.Surcharge <= 0 || m.SurchargePaymentStatus != models.PaymentPending {
		return nil, ErrNoSurcharge
	}

	return &models.PaymentRequest{
		PaymentURL: s.links.URL(booking.ID, m.ID, m.Surcharge),
		Amount:     m.Surcharge,
	}, nil
}

// ProcessSurchargePayment marks a pending surcharge as paid. The reference is
// trusted as-is; verifying it with the gateway happens before this call.
func (s *groupBookingService) ProcessSurchargePayment(ctx context.Context, bookingID string, memberID int, reference string) (*models.GroupMember, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: payment_reference is required", ErrValidation)
	}

	var paid models.GroupMember
	_, err := s.bookingRepo.Update(ctx, bookingID, func(b *models.GroupBooking) error {
		m := b.Member(memberID)
		if m == nil {
			return ErrMemberNotFound
		}
		if m.SurchargePaymentStatus != models.PaymentPending {
			return ErrNoSurcharge
		}

		paidAt := s.now().UTC()
		m.SurchargePaymentStatus = models.PaymentPaid
		m.PaymentReference = reference
		m.PaidAt = &paidAt
		paid = *m
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.logger.Info("surcharge paid",
		slog.String("booking_id", bookingID),
		slog.Int("member_id", memberID),
		slog.Int64("amount", paid.Surcharge),
	)
	s.publish(TopicSurchargePaid, SurchargeMessage{
		BookingID:        bookingID,
		MemberID:         memberID,
		Amount:           paid.Surcharge,
		PaymentReference: reference,
	})

	return &paid, nil
}

func (s *groupBookingService) GetBooking(ctx context.Context, id string) (*models.GroupBooking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

func (s *groupBookingService) GetBookingByQRCode(ctx context.Context, code string) (*models.GroupBooking, error) {
	id, err := s.issuer.Resolve(ctx, code)
	if err == nil {
		return s.GetBooking(ctx, id)
	}
	if !errors.Is(err, qrtoken.ErrUnknownToken) {
		return nil, fmt.Errorf("resolve qr token: %w", err)
	}

	// The issuer may have expired or lost the token; the stored code is authoritative.
	booking, err := s.bookingRepo.FindByQRCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking by qr code: %w", err)
	}
	return booking, nil
}

// GetEventBookings lists the event's active bookings only.
func (s *groupBookingService) GetEventBookings(ctx context.Context, eventID string) ([]models.GroupBooking, error) {
	active := models.BookingActive
	return s.bookingRepo.FindByEventID(ctx, eventID, &active)
}

func (s *groupBookingService) CloseBooking(ctx context.Context, id string) (*models.GroupBooking, error) {
	var alreadyClosed bool
	booking, err := s.bookingRepo.Update(ctx, id, func(b *models.GroupBooking) error {
		alreadyClosed = b.Status == models.BookingClosed
		b.Status = models.BookingClosed
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !alreadyClosed {
		summary := booking.Summary()
		s.logger.Info("group booking closed",
			slog.String("booking_id", booking.ID),
			slog.Int("checked_in", summary.CheckedIn),
			slog.Int("remaining", summary.Remaining),
			slog.Int64("outstanding", summary.OutstandingAmount),
		)
		s.publish(TopicBookingClosed, booking)
	}

	return booking, nil
}

func (s *groupBookingService) findEvent(ctx context.Context, id string) (*models.EventConfig, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *groupBookingService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Warn("publish failed",
			slog.String("routing_key", routingKey),
			slog.String("error", err.Error()),
		)
	}
}

func checkInMessage(b *models.GroupBooking, results []models.CheckInResult) CheckInMessage {
	msg := CheckInMessage{BookingID: b.ID, EventID: b.EventID}
	for _, r := range results {
		msg.Results = append(msg.Results, CheckInResultMessage{
			MemberID:        r.MemberID,
			CheckInTime:     r.CheckInTime.String(),
			Surcharge:       r.Surcharge,
			RequiresPayment: r.RequiresPayment,
		})
	}
	return msg
}
