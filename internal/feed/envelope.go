package feed

import "github.com/makanlah-app/backend/internal/models"

// Author is the shallow author projection carried on every feed item.
type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Restaurant is the optional restaurant summary on a feed item.
type Restaurant struct {
	Name     string           `json:"name,omitempty"`
	Location *models.GeoPoint `json:"location,omitempty"`
}

// Item is the public feed shape of a post.
type Item struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	ImageURL   string      `json:"imageUrl"`
	Author     Author      `json:"author"`
	LikesCount int         `json:"likesCount"`
	Liked      bool        `json:"liked"`
	Saved      bool        `json:"saved"`
	DistanceKm *float64    `json:"distanceKm,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

// Envelope is the uniform pagination wrapper returned by every
// feed-producing call.
type Envelope struct {
	Posts      []Item `json:"posts"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

// TotalPages computes ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func newEnvelope(items []Item, total int64, page, pageSize int) *Envelope {
	return &Envelope{
		Posts:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}
