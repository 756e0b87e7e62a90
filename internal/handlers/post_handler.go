package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/makanlah-app/backend/internal/apperr"
	"github.com/makanlah-app/backend/internal/models"
	"github.com/makanlah-app/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(read, api *echo.Group) {
	read.GET("/posts/:id", h.GetPost)
	api.POST("/posts", h.CreatePost)
	api.PUT("/posts/:id", h.UpdatePost)
	api.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost publishes a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "latitude and longitude must be supplied together")
	}

	post := &models.Post{
		AuthorID:       currentUserID,
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		FoodCategory:   models.FoodCategory(req.FoodCategory),
		CuisineType:    models.CuisineType(req.CuisineType),
		DietaryTags:    req.DietaryTags,
		FoodRating:     req.FoodRating,
		AspectRatings:  req.AspectRatings,
		RestaurantName: req.RestaurantName,
		MenuItemName:   req.MenuItemName,
		MenuItemPrice:  req.MenuItemPrice,
	}
	if req.Latitude != nil && req.Longitude != nil {
		post.RestaurantLocation = models.NewGeoPoint(*req.Latitude, *req.Longitude)
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// GetPost retrieves a single post with its author projection
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	var author models.UserCompact
	if user, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
		author = user.ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": post, "author": author}})
}

// UpdatePost updates an existing post; only the author may do so
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if post.AuthorID != currentUserID {
		return httpError(apperr.Forbidden("only the author can update this post"))
	}

	applyPostUpdate(post, &req)

	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": post})
}

// DeletePost deletes a post; only the author may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	if post.AuthorID != currentUserID {
		return httpError(apperr.Forbidden("only the author can delete this post"))
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func applyPostUpdate(post *models.Post, req *models.UpdatePostRequest) {
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Description != "" {
		post.Description = req.Description
	}
	if req.ImageURL != "" {
		post.ImageURL = req.ImageURL
	}
	if req.FoodCategory != "" {
		post.FoodCategory = models.FoodCategory(req.FoodCategory)
	}
	if req.CuisineType != "" {
		post.CuisineType = models.CuisineType(req.CuisineType)
	}
	if req.DietaryTags != nil {
		post.DietaryTags = req.DietaryTags
	}
	if req.FoodRating != 0 {
		post.FoodRating = req.FoodRating
	}
	if req.AspectRatings != nil {
		post.AspectRatings = req.AspectRatings
	}
	if req.RestaurantName != "" {
		post.RestaurantName = req.RestaurantName
	}
	if req.Latitude != nil && req.Longitude != nil {
		post.RestaurantLocation = models.NewGeoPoint(*req.Latitude, *req.Longitude)
	}
	if req.MenuItemName != "" {
		post.MenuItemName = req.MenuItemName
	}
	if req.MenuItemPrice != 0 {
		post.MenuItemPrice = req.MenuItemPrice
	}
}
