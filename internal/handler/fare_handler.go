package handler

import (
	"net/http"
	"strconv"

	"github.com/farefinder/service-fares/internal/application"
	"github.com/farefinder/service-fares/internal/auth"
	"github.com/farefinder/service-fares/internal/domain"
	"github.com/farefinder/service-fares/internal/domain/fare"
	"github.com/farefinder/service-fares/internal/middleware"
	"github.com/farefinder/service-fares/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FareHandler handles HTTP requests for fare searches.
type FareHandler struct {
	service           *application.FareService
	defaultRadiusFeet int
	defaultLimit      int
}

// NewFareHandler creates a new FareHandler. Zero defaults fall back to the
// domain defaults.
func NewFareHandler(service *application.FareService, defaultRadiusFeet, defaultLimit int) *FareHandler {
	if defaultRadiusFeet <= 0 {
		defaultRadiusFeet = fare.DefaultRadiusFeet
	}
	if defaultLimit <= 0 {
		defaultLimit = fare.DefaultLimit
	}
	return &FareHandler{
		service:           service,
		defaultRadiusFeet: defaultRadiusFeet,
		defaultLimit:      defaultLimit,
	}
}

// RegisterRoutes registers all fare routes on the given router group. Fare
// searches work anonymously; a session only enables history recording.
func (h *FareHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	fares := r.Group("/api/v1/fares")
	fares.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		fares.GET("/best", h.GetBestFare)
		fares.GET("/options", h.GetFareOptions)
	}
}

// GetBestFare handles GET /api/v1/fares/best.
func (h *FareHandler) GetBestFare(c *gin.Context) {
	params, err := h.parseSearchParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Only the single cheapest option is needed.
	params.Limit = 1

	result, err := h.service.FindBestFares(c.Request.Context(), optionalUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	best, ok := application.ToBestFareDTO(result)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"data": nil, "message": "no fares available"})
		return
	}

	response.Success(c, best)
}

// GetFareOptions handles GET /api/v1/fares/options.
func (h *FareHandler) GetFareOptions(c *gin.Context) {
	params, err := h.parseSearchParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.FindBestFares(c.Request.Context(), optionalUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application.ToFareOptionDTOs(result))
}

// parseSearchParams reads search parameters from the query string and applies
// the configured defaults.
func (h *FareHandler) parseSearchParams(c *gin.Context) (fare.SearchParams, error) {
	startLat, err := requireFloat(c, "start_lat")
	if err != nil {
		return fare.SearchParams{}, err
	}
	startLon, err := requireFloat(c, "start_lon")
	if err != nil {
		return fare.SearchParams{}, err
	}
	endLat, err := requireFloat(c, "end_lat")
	if err != nil {
		return fare.SearchParams{}, err
	}
	endLon, err := requireFloat(c, "end_lon")
	if err != nil {
		return fare.SearchParams{}, err
	}

	radius := h.defaultRadiusFeet
	if raw := c.Query("search_range"); raw != "" {
		radius, err = strconv.Atoi(raw)
		if err != nil {
			return fare.SearchParams{}, domain.NewValidationError("search_range must be an integer")
		}
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return fare.SearchParams{}, domain.NewValidationError("limit must be an integer")
		}
	}

	return fare.SearchParams{
		Origin:      fare.Coordinate{Latitude: startLat, Longitude: startLon},
		Destination: fare.Coordinate{Latitude: endLat, Longitude: endLon},
		RadiusFeet:  radius,
		Limit:       limit,
	}, nil
}

func requireFloat(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, domain.NewValidationError(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.NewValidationError(name + " must be a number")
	}
	return v, nil
}

// optionalUserID returns the session user ID when the request carried a
// valid session, nil otherwise.
func optionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.GetUserID(c); ok {
		return &id
	}
	return nil
}
