package repository

import (
	"context"
	"errors"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpdateFunc mutates a locked booking. Returning an error aborts the update and
// nothing is persisted.
type UpdateFunc func(b *models.GroupBooking) error

type BookingRepository interface {
	Create(ctx context.Context, booking *models.GroupBooking) error
	FindByID(ctx context.Context, id string) (*models.GroupBooking, error)
	FindByQRCode(ctx context.Context, code string) (*models.GroupBooking, error)
	FindByEventID(ctx context.Context, eventID string, status *models.BookingStatus) ([]models.GroupBooking, error)
	// Update serializes all writers of one booking: fn sees the latest state and
	// its changes are committed atomically.
	Update(ctx context.Context, id string, fn UpdateFunc) (*models.GroupBooking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.GroupBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.GroupBooking, error) {
	return r.findOne(r.db.WithContext(ctx), "id = ?", id)
}

func (r *bookingRepository) FindByQRCode(ctx context.Context, code string) (*models.GroupBooking, error) {
	return r.findOne(r.db.WithContext(ctx), "qr_code = ?", code)
}

func (r *bookingRepository) FindByEventID(ctx context.Context, eventID string, status *models.BookingStatus) ([]models.GroupBooking, error) {
	var bookings []models.GroupBooking
	q := r.db.WithContext(ctx).
		Preload("Members", orderMembers).
		Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*models.GroupBooking, error) {
	var result *models.GroupBooking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock on the booking serializes concurrent check-in batches.
		booking, err := r.findOne(tx.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
		if err != nil {
			return err
		}

		if err := fn(booking); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(booking).Error; err != nil {
			return err
		}
		for i := range booking.Members {
			if err := tx.Save(&booking.Members[i]).Error; err != nil {
				return err
			}
		}

		result = booking
		return nil
	})

	return result, err
}

func (r *bookingRepository) findOne(q *gorm.DB, query string, args ...any) (*models.GroupBooking, error) {
	var booking models.GroupBooking
	if err := q.Where(query, args...).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := q.Session(&gorm.Session{NewDB: true}).
		Where("booking_id = ?", booking.ID).
		Order("id ASC").
		Find(&booking.Members).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func orderMembers(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
