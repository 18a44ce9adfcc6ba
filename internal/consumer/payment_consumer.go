package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
	"github.com/Eursukkul/booking-microservice/entry-service/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const handleTimeout = 10 * time.Second

// PaymentConfirmedMessage is published by the payment gateway once a surcharge
// has been settled.
type PaymentConfirmedMessage struct {
	BookingID        string `json:"booking_id"`
	MemberID         int    `json:"member_id"`
	PaymentReference string `json:"payment_reference"`
}

func (m PaymentConfirmedMessage) valid() bool {
	return m.BookingID != "" && m.MemberID > 0 && m.PaymentReference != ""
}

type SurchargePayer interface {
	ProcessSurchargePayment(ctx context.Context, bookingID string, memberID int, reference string) (*models.GroupMember, error)
}

type PaymentConsumer struct {
	svc    SurchargePayer
	logger *slog.Logger
	done   chan struct{}
}

func NewPaymentConsumer(svc SurchargePayer, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{svc: svc, logger: logger, done: make(chan struct{})}
}

// Start drains msgs in a goroutine until the channel is closed. The returned
// channel is closed once the last message has been handled. Start must be
// called at most once.
func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	go func() {
		defer close(pc.done)
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		pc.logger.Info("payment consumer channel closed, stopping")
	}()
	return pc.done
}

// Wait blocks until the delivery channel has closed and the in-flight message,
// if any, has been settled, or until ctx is done.
func (pc *PaymentConsumer) Wait(ctx context.Context) error {
	select {
	case <-pc.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	var payload PaymentConfirmedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil || !payload.valid() {
		pc.logger.Warn("dropping malformed payment message", "error", err, "body", string(msg.Body))
		pc.settle(msg.Nack(false, false))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	log := pc.logger.With(
		"booking_id", payload.BookingID,
		"member_id", payload.MemberID,
		"payment_reference", payload.PaymentReference,
	)

	_, err := pc.svc.ProcessSurchargePayment(ctx, payload.BookingID, payload.MemberID, payload.PaymentReference)
	switch {
	case err == nil:
		log.Info("surcharge payment applied")
		pc.settle(msg.Ack(false))
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrNoSurcharge),
		errors.Is(err, service.ErrValidation):
		log.Warn("payment message rejected", "error", err)
		pc.settle(msg.Ack(false))
	default:
		log.Error("payment message failed, requeueing", "error", err)
		pc.settle(msg.Nack(false, true))
	}
}

func (pc *PaymentConsumer) settle(err error) {
	if err != nil {
		pc.logger.Error("acknowledge payment message", "error", err)
	}
}
