package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/makanlah-app/backend/internal/services"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	interactions *services.InteractionService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(interactions *services.InteractionService) *SavedPostHandler {
	return &SavedPostHandler{interactions: interactions}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(api *echo.Group) {
	api.POST("/posts/:id/save", h.SavePost)
	api.DELETE("/posts/:id/save", h.UnsavePost)
	api.GET("/posts/saved", h.GetSavedPosts)
}

// SavePost saves/bookmarks a post
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	if _, err := h.interactions.SavePost(c.Request().Context(), currentUserID, postID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": true}})
}

// UnsavePost removes a post from saved
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	if err := h.interactions.UnsavePost(c.Request().Context(), currentUserID, postID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": false}})
}

// GetSavedPosts retrieves the authenticated user's saved posts
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	page, limit := parsePagination(c)

	entries, total, err := h.interactions.ListSavedPosts(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, listingEnvelope("posts", entries, total, page, limit))
}
