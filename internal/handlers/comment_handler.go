package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/makanlah-app/backend/internal/models"
	"github.com/makanlah-app/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments. Comments are
// append-only, so only create and list routes exist.
type CommentHandler struct {
	interactions *services.InteractionService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactions *services.InteractionService) *CommentHandler {
	return &CommentHandler{interactions: interactions}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(read, api *echo.Group) {
	read.GET("/posts/:id/comments", h.GetCommentsByPostID)
	api.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.interactions.AddComment(c.Request().Context(), currentUserID, postID, req.Content)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": comment})
}

// GetCommentsByPostID retrieves a page of comments for a specific post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("id")
	page, limit := parsePagination(c)

	comments, total, err := h.interactions.ListComments(c.Request().Context(), postID, page, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, listingEnvelope("comments", comments, total, page, limit))
}
