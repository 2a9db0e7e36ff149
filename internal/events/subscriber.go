package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// AccountMirrorHandler reacts to account lifecycle events by
// maintaining the local mirror documents.
type AccountMirrorHandler interface {
	HandleAccountCreated(ctx context.Context, account AccountEvent) error
	HandleAccountDeleted(ctx context.Context, account AccountEvent) error
}

// NewKafkaSubscriber creates the Kafka subscriber used by the mirror
// router.
func NewKafkaSubscriber(brokers []string, consumerGroup string, logger *slog.Logger) (message.Subscriber, error) {
	saramaConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:               brokers,
			Unmarshaler:           kafka.DefaultMarshaler{},
			OverwriteSaramaConfig: saramaConfig,
			ConsumerGroup:         consumerGroup,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka subscriber: %w", err)
	}

	return subscriber, nil
}

// NewAccountMirrorRouter binds the account lifecycle topics to the
// mirror handler. The caller runs the router and closes it on
// shutdown.
func NewAccountMirrorRouter(subscriber message.Subscriber, handler AccountMirrorHandler, logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	router.AddNoPublisherHandler(
		"account_created_mirror",
		AccountCreatedEvent,
		subscriber,
		func(msg *message.Message) error {
			account, err := decodeAccountEvent(msg)
			if err != nil {
				logger.Error("dropping malformed account.created event",
					"message_id", msg.UUID, "error", err)
				return nil
			}
			return handler.HandleAccountCreated(msg.Context(), account)
		},
	)

	router.AddNoPublisherHandler(
		"account_deleted_mirror",
		AccountDeletedEvent,
		subscriber,
		func(msg *message.Message) error {
			account, err := decodeAccountEvent(msg)
			if err != nil {
				logger.Error("dropping malformed account.deleted event",
					"message_id", msg.UUID, "error", err)
				return nil
			}
			return handler.HandleAccountDeleted(msg.Context(), account)
		},
	)

	return router, nil
}

func decodeAccountEvent(msg *message.Message) (AccountEvent, error) {
	var envelope Event
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return AccountEvent{}, fmt.Errorf("failed to decode event envelope: %w", err)
	}

	var account AccountEvent
	if err := DecodeData(envelope, &account); err != nil {
		return AccountEvent{}, err
	}
	if account.UID == "" {
		return AccountEvent{}, fmt.Errorf("account event missing uid")
	}
	return account, nil
}
