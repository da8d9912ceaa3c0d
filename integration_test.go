//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/farefinder/service-fares/internal/application"
	fareEvents "github.com/farefinder/service-fares/internal/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSearchCompleted_RecordsHistory verifies that when a FareSearchCompletedEvent
// is published to fare.events, the consumer picks it up and a search history
// row appears for the user.
func TestSearchCompleted_RecordsHistory(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupFaresStack(t, infra.DB, infra.KafkaBrokers)
	defer func() { _ = stack.Consumer.Close() }()

	// Register a user through the account service.
	session, err := stack.AccountService.Register(context.Background(), application.RegisterRequest{
		Email:    "rider@example.com",
		Password: "integration-pass",
	})
	require.NoError(t, err)
	userID := session.User.ID

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish FareSearchCompletedEvent.
	searchID := uuid.New()
	price := int64(850)
	evt := fareEvents.FareSearchCompletedEvent{
		SearchID:       searchID,
		UserID:         &userID,
		OriginLat:      40.0,
		OriginLng:      -73.0,
		DestinationLat: 40.01,
		DestinationLng: -73.01,
		RadiusFeet:     500,
		BestLocation:   "N 250ft",
		BestRideType:   "UberX",
		BestPriceCents: &price,
		OptionCount:    3,
		OccurredAt:     time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, fareEvents.TopicFareEvents,
		"service-fares", fareEvents.FareSearchCompleted, evt)

	// Assert: the history row appears.
	model := waitForSearchRecord(t, infra.DB, searchID, 15*time.Second)
	assert.Equal(t, userID, model.UserID)
	assert.Equal(t, "N 250ft", model.BestLocation)
	assert.Equal(t, "UberX", model.BestRideType)
	require.NotNil(t, model.BestPriceCents)
	assert.Equal(t, int64(850), *model.BestPriceCents)
	assert.Equal(t, 3, model.OptionCount)

	// Assert: the profile history endpoint surfaces it.
	history, err := stack.ProfileService.GetHistory(context.Background(), userID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, searchID, history[0].ID)
}

// TestAnonymousSearchEvent_NotRecorded verifies that events without a user ID
// leave no history rows behind.
func TestAnonymousSearchEvent_NotRecorded(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupFaresStack(t, infra.DB, infra.KafkaBrokers)
	defer func() { _ = stack.Consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second)

	evt := fareEvents.FareSearchCompletedEvent{
		SearchID:       uuid.New(),
		OriginLat:      40.0,
		OriginLng:      -73.0,
		DestinationLat: 40.01,
		DestinationLng: -73.01,
		RadiusFeet:     500,
		OptionCount:    0,
		OccurredAt:     time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, fareEvents.TopicFareEvents,
		"service-fares", fareEvents.FareSearchCompleted, evt)

	// Give the consumer time to process, then confirm no rows exist.
	time.Sleep(8 * time.Second)
	var count int64
	require.NoError(t, infra.DB.Table("search_records").Count(&count).Error)
	assert.Zero(t, count)
}
