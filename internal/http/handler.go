package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/suntimes-api/internal/adapter/store"
	"go.ngs.io/suntimes-api/internal/domain"
	"go.ngs.io/suntimes-api/internal/usecase"
)

// dateLayout is the calendar date format accepted in queries.
const dateLayout = "2006-01-02"

// Handler handles HTTP requests for solar times.
type Handler struct {
	sunTimesUC *usecase.SunTimesUseCase
	logger     *slog.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(sunTimesUC *usecase.SunTimesUseCase, logger *slog.Logger) *Handler {
	return &Handler{
		sunTimesUC: sunTimesUC,
		logger:     logger,
	}
}

// GetSunTimes handles GET /v1/sun/times.
func (h *Handler) GetSunTimes(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	placeID := c.Query("place_id")
	tzStr := c.Query("tz")
	daysStr := c.Query("days")

	req := usecase.SunTimesRequest{
		Event: c.Query("event"),
	}

	// Parse lat/lon.
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
			return
		}
		req.Lat = &lat
		req.Lon = &lon
	}

	if placeID != "" {
		req.PlaceID = &placeID
	}

	if tzStr != "" {
		tz, err := strconv.ParseFloat(tzStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid tz (expected hours east of UTC): %v", err)})
			return
		}
		req.TZOffsetHours = &tz
	}

	date, ok := parseDate(c)
	if !ok {
		return
	}
	req.Date = date

	if daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid days: %q", daysStr)})
			return
		}
		req.Days = days
	}

	response, err := h.sunTimesUC.Execute(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetDayLength handles GET /v1/sun/daylength.
func (h *Handler) GetDayLength(c *gin.Context) {
	latStr := c.Query("lat")
	if latStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat parameter is required"})
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
		return
	}

	req := usecase.DayLengthRequest{
		Lat:    lat,
		Source: c.Query("source"),
	}

	if lonStr := c.Query("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
			return
		}
		req.Lon = lon
	}

	date, ok := parseDate(c)
	if !ok {
		return
	}
	req.Date = date

	response, err := h.sunTimesUC.DayLength(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPlaces handles GET /v1/places.
func (h *Handler) GetPlaces(c *gin.Context) {
	places, err := h.sunTimesUC.ListPlaces()
	if err != nil {
		h.respondError(c, err)
		return
	}

	type PlaceInfo struct {
		ID            string  `json:"place_id"`
		Name          string  `json:"name"`
		Lat           float64 `json:"lat"`
		Lon           float64 `json:"lon"`
		TZOffsetHours float64 `json:"tz_offset_hours"`
	}

	response := make([]PlaceInfo, len(places))
	for i, p := range places {
		response[i] = PlaceInfo{
			ID:            p.ID,
			Name:          p.Name,
			Lat:           p.Location.Latitude,
			Lon:           p.Location.Longitude,
			TZOffsetHours: p.TZOffsetHours,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"places": response,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseDate reads the date query parameter, defaulting to today in UTC. It
// writes the error response itself and reports whether parsing succeeded.
func parseDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		y, m, d := time.Now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date (expected YYYY-MM-DD): %v", err)})
		return time.Time{}, false
	}
	return date, true
}

// respondError maps use case errors onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrInvalidDepression),
		errors.Is(err, usecase.ErrGridUnavailable):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrPlaceNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request error", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
