package application

import (
	"context"
	"sort"
	"time"

	"github.com/farefinder/service-fares/internal/domain/fare"
	"github.com/farefinder/service-fares/internal/events"
	"github.com/farefinder/service-fares/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FareOptionDTO is the response representation of one fare option.
type FareOptionDTO struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Price     float64 `json:"price"`
	RideType  string  `json:"ride_type"`
	Provider  string  `json:"provider"`
}

// BestFareDTO is the response representation of the single cheapest option.
type BestFareDTO struct {
	BestLocation string  `json:"best_location"`
	BestPrice    float64 `json:"best_price"`
	BestRideType string  `json:"best_ride_type"`
	Provider     string  `json:"provider"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// FareService orchestrates fare searches: it fans out over candidate pickup
// points, validates each against the street validator, collects quotes from
// every provider, and reduces the pool to the cheapest options.
type FareService struct {
	validator       fare.StreetValidator
	providers       []fare.QuoteProvider
	producer        *kafka.Producer
	logger          *zap.Logger
	maxWorkers      int
	upstreamTimeout time.Duration
}

// NewFareService creates a new FareService. The producer may be nil when
// event publishing is disabled.
func NewFareService(
	validator fare.StreetValidator,
	providers []fare.QuoteProvider,
	producer *kafka.Producer,
	logger *zap.Logger,
	maxWorkers int,
	upstreamTimeout time.Duration,
) *FareService {
	if maxWorkers <= 0 {
		maxWorkers = 32
	}
	if upstreamTimeout <= 0 {
		upstreamTimeout = 10 * time.Second
	}
	return &FareService{
		validator:       validator,
		providers:       providers,
		producer:        producer,
		logger:          logger,
		maxWorkers:      maxWorkers,
		upstreamTimeout: upstreamTimeout,
	}
}

// FindBestFares runs a full fare search for the given parameters. The userID
// is nil for anonymous searches and only affects history recording.
func (s *FareService) FindBestFares(ctx context.Context, userID *uuid.UUID, params fare.SearchParams) (*fare.SearchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	candidates, err := fare.GenerateCandidates(params.Origin, params.RadiusFeet)
	if err != nil {
		return nil, err
	}

	// Each candidate writes only its own slot, so the flattened pool keeps
	// the canonical generation order regardless of worker scheduling.
	slots := make([][]fare.FareOption, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for i, candidate := range candidates {
		g.Go(func() error {
			slots[i] = s.collectCandidate(gctx, candidate, params.Destination)
			return nil
		})
	}

	// Workers never return errors; failures on individual candidates are
	// logged and leave the slot empty.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pool []fare.FareOption
	for _, slot := range slots {
		pool = append(pool, slot...)
	}

	sort.SliceStable(pool, func(a, b int) bool {
		return pool[a].PriceCents < pool[b].PriceCents
	})

	if params.Limit > 0 && len(pool) > params.Limit {
		pool = pool[:params.Limit]
	}

	result := &fare.SearchResult{Options: pool}

	s.publishSearchCompleted(ctx, userID, params, result)

	return result, nil
}

// collectCandidate validates one candidate pickup point and gathers quotes
// from every provider. Upstream failures are non-fatal: they are logged and
// the candidate contributes nothing to the pool.
func (s *FareService) collectCandidate(ctx context.Context, candidate fare.CandidatePoint, dropoff fare.Coordinate) []fare.FareOption {
	cctx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	defer cancel()

	valid, err := s.validator.IsValidStreet(cctx, candidate.Point)
	if err != nil {
		s.logger.Warn("street validation failed, skipping candidate",
			zap.String("location", candidate.Label),
			zap.Error(err),
		)
		return nil
	}
	if !valid {
		return nil
	}

	var options []fare.FareOption
	for _, provider := range s.providers {
		quotes, err := provider.Quotes(cctx, candidate.Point, dropoff)
		if err != nil {
			s.logger.Warn("provider quote failed",
				zap.String("provider", provider.Name()),
				zap.String("location", candidate.Label),
				zap.Error(err),
			)
			continue
		}
		for _, q := range quotes {
			options = append(options, fare.FareOption{
				Location:   candidate.Label,
				Pickup:     candidate.Point,
				PriceCents: q.LowEstimateCents,
				RideType:   q.DisplayName,
				Provider:   provider.Name(),
			})
		}
	}
	return options
}

// publishSearchCompleted emits the search-completed event. Publishing is
// fire-and-forget: a broker failure never fails the search.
func (s *FareService) publishSearchCompleted(ctx context.Context, userID *uuid.UUID, params fare.SearchParams, result *fare.SearchResult) {
	if s.producer == nil {
		return
	}

	evt := events.FareSearchCompletedEvent{
		SearchID:       uuid.New(),
		UserID:         userID,
		OriginLat:      params.Origin.Latitude,
		OriginLng:      params.Origin.Longitude,
		DestinationLat: params.Destination.Latitude,
		DestinationLng: params.Destination.Longitude,
		RadiusFeet:     params.RadiusFeet,
		OptionCount:    len(result.Options),
		OccurredAt:     time.Now().UTC(),
	}
	if best, ok := result.Best(); ok {
		evt.BestLocation = best.Location
		evt.BestRideType = best.RideType
		price := best.PriceCents
		evt.BestPriceCents = &price
	}

	cloudEvent, err := kafka.NewCloudEvent("service-fares", events.FareSearchCompleted, evt)
	if err != nil {
		s.logger.Error("failed to build search completed event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicFareEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish search completed event",
			zap.String("search_id", evt.SearchID.String()),
			zap.Error(err),
		)
	}
}

// toFareOptionDTO converts a domain FareOption to its response DTO.
func toFareOptionDTO(opt fare.FareOption) FareOptionDTO {
	return FareOptionDTO{
		Location:  opt.Location,
		Latitude:  opt.Pickup.Latitude,
		Longitude: opt.Pickup.Longitude,
		Price:     opt.Price(),
		RideType:  opt.RideType,
		Provider:  opt.Provider,
	}
}

// ToFareOptionDTOs converts a search result to its response DTOs.
func ToFareOptionDTOs(result *fare.SearchResult) []FareOptionDTO {
	dtos := make([]FareOptionDTO, 0, len(result.Options))
	for _, opt := range result.Options {
		dtos = append(dtos, toFareOptionDTO(opt))
	}
	return dtos
}

// ToBestFareDTO converts the cheapest option of a search result to its
// response DTO. The second return is false when the pool is empty.
func ToBestFareDTO(result *fare.SearchResult) (BestFareDTO, bool) {
	best, ok := result.Best()
	if !ok {
		return BestFareDTO{}, false
	}
	return BestFareDTO{
		BestLocation: best.Location,
		BestPrice:    best.Price(),
		BestRideType: best.RideType,
		Provider:     best.Provider,
		Latitude:     best.Pickup.Latitude,
		Longitude:    best.Pickup.Longitude,
	}, true
}
