package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/makanlah-app/backend/internal/apperr"
	"github.com/makanlah-app/backend/internal/feed"
	"github.com/makanlah-app/backend/internal/models"
)

// getUserIDFromContext extracts the authenticated user's ID from the JWT
// claims stored by the auth middleware. Returns 0 for anonymous requests.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// parsePagination reads page/limit query params, coercing anything
// malformed or out of range to the defaults rather than rejecting it.
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > feed.MaxLimit {
		limit = feed.DefaultLimit
	}
	return page, limit
}

// httpError converts an application error into the echo HTTP error the
// client should see.
func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
}

// listingEnvelope is the uniform pagination wrapper for relation listings
// (likers, saved posts, followers, comments).
func listingEnvelope(key string, items interface{}, total int64, page, limit int) echo.Map {
	return echo.Map{
		"success":    true,
		key:          items,
		"total":      total,
		"page":       page,
		"pageSize":   limit,
		"totalPages": feed.TotalPages(total, limit),
	}
}
