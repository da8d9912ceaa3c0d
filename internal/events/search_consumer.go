package events

import (
	"context"
	"encoding/json"

	userDomain "github.com/farefinder/service-fares/internal/domain/user"
	"github.com/farefinder/service-fares/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SearchHistoryConsumer listens to fare events and records search history
// rows for signed-in users.
type SearchHistoryConsumer struct {
	consumer *kafka.Consumer
	repo     userDomain.AddressRepository
	logger   *zap.Logger
}

// NewSearchHistoryConsumer creates a new SearchHistoryConsumer.
func NewSearchHistoryConsumer(
	brokers []string,
	groupID string,
	repo userDomain.AddressRepository,
	logger *zap.Logger,
) *SearchHistoryConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicFareEvents, logger)
	return &SearchHistoryConsumer{
		consumer: consumer,
		repo:     repo,
		logger:   logger,
	}
}

// Start begins consuming fare events. This blocks until the context is cancelled.
func (c *SearchHistoryConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *SearchHistoryConsumer) Close() error {
	return c.consumer.Close()
}

func (c *SearchHistoryConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from fare topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case FareSearchCompleted:
		return c.handleSearchCompleted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled fare event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *SearchHistoryConsumer) handleSearchCompleted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt FareSearchCompletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse FareSearchCompletedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	if evt.UserID == nil {
		// Anonymous search, nothing to record.
		return nil
	}

	rec := userDomain.SearchRecord{
		ID:             evt.SearchID,
		UserID:         *evt.UserID,
		OriginLat:      evt.OriginLat,
		OriginLng:      evt.OriginLng,
		DestinationLat: evt.DestinationLat,
		DestinationLng: evt.DestinationLng,
		RadiusFeet:     evt.RadiusFeet,
		BestLocation:   evt.BestLocation,
		BestRideType:   evt.BestRideType,
		BestPriceCents: evt.BestPriceCents,
		OptionCount:    evt.OptionCount,
		SearchedAt:     evt.OccurredAt,
	}

	if err := c.repo.SaveSearchRecord(ctx, rec); err != nil {
		c.logger.Error("failed to record search history",
			zap.String("search_id", evt.SearchID.String()),
			zap.String("user_id", evt.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("search history recorded",
		zap.String("search_id", evt.SearchID.String()),
		zap.String("user_id", evt.UserID.String()),
	)
	return nil
}
