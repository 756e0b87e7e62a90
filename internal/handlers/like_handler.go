package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/makanlah-app/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interactions *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(read, api *echo.Group) {
	read.GET("/posts/:id/likes", h.GetPostLikers)
	api.POST("/posts/:id/like", h.LikePost)
	api.DELETE("/posts/:id/like", h.UnlikePost)
	api.GET("/posts/:id/like/status", h.GetLikeStatus)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	like, err := h.interactions.LikePost(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": like})
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	if err := h.interactions.UnlikePost(c.Request().Context(), currentUserID, postID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPostLikers retrieves a page of users who liked a post
func (h *LikeHandler) GetPostLikers(c echo.Context) error {
	postID := c.Param("id")
	page, limit := parsePagination(c)

	likers, total, err := h.interactions.ListPostLikers(c.Request().Context(), postID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, listingEnvelope("likers", likers, total, page, limit))
}

// GetLikeStatus checks if the authenticated user has liked a specific post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	liked, err := h.interactions.HasLiked(currentUserID, postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}
