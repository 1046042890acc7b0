package service

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"clinic/config"
	"clinic/infras/kafka"
	"clinic/infras/otel"
	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/model/dto"
	"clinic/shared/constant"

	"github.com/rs/zerolog/log"
)

// Notifier tells downstream systems (confirmation messages, reminders) about new bookings.
type Notifier interface {
	BookingCreated(ctx context.Context, booking model.Booking) error
}

type kafkaNotifier struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewNotifier publishes to kafka when it is enabled and drops events otherwise.
func NewNotifier(cfg *config.Config, client kafka.Client, otel otel.Otel) Notifier {
	if !cfg.Kafka.Enable || client == nil {
		log.Info().Msg("kafka disabled, booking notifications are not published")

		return noopNotifier{}
	}

	return &kafkaNotifier{
		client: client,
		topic:  cfg.Kafka.Topics.BookingCreated,
		otel:   otel,
	}
}

func (n *kafkaNotifier) BookingCreated(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Created")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var event dto.BookingCreatedEvent
	event.FromModel(booking)

	scope.SetAttribute("kafka.topic", n.topic)

	if err = n.client.SendMessages(ctx, n.topic, kafka.Message{Key: booking.ID, Value: event}); err != nil {
		return fmt.Errorf("failed to publish booking created: %w", err)
	}

	return nil
}

type noopNotifier struct{}

func (noopNotifier) BookingCreated(context.Context, model.Booking) error {
	return nil
}
