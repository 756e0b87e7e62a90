package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/makanlah-app/backend/internal/feed"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	assembler *feed.Assembler
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(assembler *feed.Assembler) *FeedHandler {
	return &FeedHandler{assembler: assembler}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetFeed serves every feed variant, selected by the strategy query param.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	strategy, err := feed.ParseStrategy(c.QueryParam("strategy"))
	if err != nil {
		return httpError(err)
	}

	page, limit := parsePagination(c)
	params := feed.Params{
		Page:     page,
		Limit:    limit,
		ViewerID: getUserIDFromContext(c),
		Category: c.QueryParam("category"),
		Cuisine:  c.QueryParam("cuisine"),
		Username: c.QueryParam("username"),
	}

	if raw := c.QueryParam("min_rating"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			params.MinRating = v
		}
	}

	// Both coordinates must parse as finite numbers before the nearby
	// strategy touches storage; assembly validates the range.
	if strategy == feed.StrategyNearby {
		lat, latErr := strconv.ParseFloat(c.QueryParam("latitude"), 64)
		lng, lngErr := strconv.ParseFloat(c.QueryParam("longitude"), 64)
		if latErr != nil || lngErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "latitude and longitude must be valid numbers")
		}
		params.Latitude = &lat
		params.Longitude = &lng
	}

	envelope, err := h.assembler.Fetch(c.Request().Context(), strategy, params)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"posts":      envelope.Posts,
		"total":      envelope.Total,
		"page":       envelope.Page,
		"pageSize":   envelope.PageSize,
		"totalPages": envelope.TotalPages,
	})
}

// GetUserPosts serves the author feed for a user resolved by ID.
func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := parsePagination(c)
	params := feed.Params{
		Page:     page,
		Limit:    limit,
		ViewerID: getUserIDFromContext(c),
		AuthorID: uint(targetID),
	}

	envelope, err := h.assembler.Fetch(c.Request().Context(), feed.StrategyAuthor, params)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"posts":      envelope.Posts,
		"total":      envelope.Total,
		"page":       envelope.Page,
		"pageSize":   envelope.PageSize,
		"totalPages": envelope.TotalPages,
	})
}
